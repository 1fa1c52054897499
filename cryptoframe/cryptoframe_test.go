package cryptoframe

import (
	"testing"

	"msgplus"
)

var testKey = []byte("0123456789abcdef")
var testIV = []byte("fedcba9876543210")

func TestSealOpenRoundTrip(t *testing.T) {
	v := msgplus.FromArray([]msgplus.Value{msgplus.FromInt(1), msgplus.FromStr("payload")})
	ciphertext, err := Seal(v, testKey, testIV)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if len(ciphertext)%16 != 0 {
		t.Fatalf("ciphertext length %d is not AES-block-aligned", len(ciphertext))
	}
	got, err := Open(ciphertext, testKey, testIV)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !msgplus.Equal(v, got) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, v)
	}
}

func TestOpenEmptyCiphertextFails(t *testing.T) {
	if _, err := Open(nil, testKey, testIV); err != ErrEmptyCiphertext {
		t.Fatalf("got %v, want ErrEmptyCiphertext", err)
	}
}

func TestOpenMisalignedCiphertextFails(t *testing.T) {
	if _, err := Open([]byte{1, 2, 3}, testKey, testIV); err == nil {
		t.Fatalf("expected an error for a non-block-aligned ciphertext")
	}
}

func TestOpenTamperedCiphertextFails(t *testing.T) {
	v := msgplus.FromStr("hello")
	ciphertext, err := Seal(v, testKey, testIV)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	ciphertext[0] ^= 0xff
	if _, err := Open(ciphertext, testKey, testIV); err == nil {
		t.Fatalf("expected tampering to be detected by a padding or decode failure")
	}
}
