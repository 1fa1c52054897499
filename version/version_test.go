package version

import "testing"

func TestCheckCompatibleAcceptsCurrent(t *testing.T) {
	if err := CheckCompatible(Wire); err != nil {
		t.Fatalf("CheckCompatible(%s): %v", Wire, err)
	}
}

func TestCheckCompatibleRejectsOlder(t *testing.T) {
	if err := CheckCompatible("0.1.0"); err == nil {
		t.Fatalf("expected an error for a version below MinSupported")
	}
}

func TestCheckCompatibleRejectsMalformed(t *testing.T) {
	if err := CheckCompatible("not-a-version"); err == nil {
		t.Fatalf("expected an error for a malformed version string")
	}
}

func TestCheckCompatibleAcceptsNewer(t *testing.T) {
	if err := CheckCompatible("9.9.9"); err != nil {
		t.Fatalf("CheckCompatible(9.9.9): %v", err)
	}
}
