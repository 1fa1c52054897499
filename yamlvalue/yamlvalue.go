// Package yamlvalue converts between msgplus Values and YAML, and loads
// adapter configuration structs the same way the rest of this module's
// ambient stack does.
package yamlvalue

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"msgplus"
)

// LoadConfig reads path as YAML into cfg, the same
// yaml.NewDecoder(f).Decode(&cfg) idiom every adapter package's
// configuration loader in this module follows.
func LoadConfig(path string, cfg interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("yamlvalue: open %s: %w", path, err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("yamlvalue: decode %s: %w", path, err)
	}
	return nil
}

// Marshal renders v as YAML.
func Marshal(v msgplus.Value) ([]byte, error) {
	native, err := toNative(v)
	if err != nil {
		return nil, fmt.Errorf("yamlvalue: marshal: %w", err)
	}
	return yaml.Marshal(native)
}

// Unmarshal parses YAML into a Value. YAML mapping nodes decode in
// document order via yaml.v3's own map[string]interface{} decoding, which
// (unlike encoding/json) preserves source order internally but still loses
// it once flattened into a native Go map; callers needing order-preserving
// YAML decode should decode into a yaml.Node tree instead and walk it.
func Unmarshal(data []byte) (msgplus.Value, error) {
	var native interface{}
	if err := yaml.Unmarshal(data, &native); err != nil {
		return msgplus.Value{}, fmt.Errorf("yamlvalue: unmarshal: %w", err)
	}
	return fromNative(native)
}

func toNative(v msgplus.Value) (interface{}, error) {
	switch v.Tag() {
	case msgplus.TagNil:
		return nil, nil
	case msgplus.TagBool:
		b, _ := v.AsBool()
		return b, nil
	case msgplus.TagInt:
		i, _ := v.AsInt()
		return i, nil
	case msgplus.TagUint:
		u, _ := v.AsUint()
		return u, nil
	case msgplus.TagFloat32:
		f, _ := v.AsFloat32()
		return float64(f), nil
	case msgplus.TagFloat64:
		f, _ := v.AsFloat64()
		return f, nil
	case msgplus.TagStr:
		s, _ := v.AsStr()
		return s, nil
	case msgplus.TagBin:
		b, _ := v.AsBin()
		return b, nil
	case msgplus.TagArray:
		arr, _ := v.AsArray()
		out := make([]interface{}, len(arr))
		for i, elem := range arr {
			n, err := toNative(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case msgplus.TagMap:
		m, _ := v.AsMap()
		out := make(map[string]interface{}, m.Len())
		for _, p := range m.Pairs() {
			key, err := p.Key.AsStr()
			if err != nil {
				return nil, fmt.Errorf("map key is not a str Value, has no YAML mapping-key equivalent: %w", err)
			}
			n, err := toNative(p.Value)
			if err != nil {
				return nil, fmt.Errorf("map value for key %q: %w", key, err)
			}
			out[key] = n
		}
		return out, nil
	case msgplus.TagExt:
		ext, _ := v.AsExt()
		return map[string]interface{}{"extType": ext.Type, "extData": ext.Data}, nil
	default:
		return nil, fmt.Errorf("yamlvalue: unreachable variant %v", v.Tag())
	}
}

func fromNative(x interface{}) (msgplus.Value, error) {
	switch t := x.(type) {
	case nil:
		return msgplus.Nil(), nil
	case bool:
		return msgplus.FromBool(t), nil
	case int:
		return msgplus.FromInt(int64(t)), nil
	case float64:
		return msgplus.FromFloat64(t), nil
	case string:
		return msgplus.FromStr(t), nil
	case []interface{}:
		elems := make([]msgplus.Value, len(t))
		for i, raw := range t {
			v, err := fromNative(raw)
			if err != nil {
				return msgplus.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = v
		}
		return msgplus.FromArray(elems), nil
	case map[string]interface{}:
		m := msgplus.NewMap()
		for key, raw := range t {
			val, err := fromNative(raw)
			if err != nil {
				return msgplus.Value{}, fmt.Errorf("field %q: %w", key, err)
			}
			if err := m.Append(msgplus.FromStr(key), val); err != nil {
				return msgplus.Value{}, fmt.Errorf("field %q: %w", key, err)
			}
		}
		return msgplus.FromMap(m), nil
	default:
		return msgplus.Value{}, fmt.Errorf("yamlvalue: unsupported YAML-decoded type %T", x)
	}
}
