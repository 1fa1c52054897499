// Package jsonvalue converts between msgplus Values and JSON, for debug
// dumps and fixture authoring where a human wants to read the tree.
package jsonvalue

import (
	"fmt"

	"github.com/bytedance/sonic"

	"msgplus"
)

// Marshal renders v as JSON. Bin and ext payloads are base64-encoded by
// Go's []byte JSON convention, carried through automatically; a map whose
// keys are not str Values cannot be rendered, since JSON object keys are
// always strings.
func Marshal(v msgplus.Value) ([]byte, error) {
	native, err := toNative(v)
	if err != nil {
		return nil, fmt.Errorf("jsonvalue: marshal: %w", err)
	}
	return sonic.Marshal(native)
}

// Unmarshal parses JSON into a Value, routing JSON's four scalar kinds
// plus array/object onto the matching MessagePack families: numbers
// become float64 Values, since JSON does not distinguish int from float.
func Unmarshal(data []byte) (msgplus.Value, error) {
	var native interface{}
	if err := sonic.Unmarshal(data, &native); err != nil {
		return msgplus.Value{}, fmt.Errorf("jsonvalue: unmarshal: %w", err)
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
				return nil, fmt.Errorf("map key is not a str Value, has no JSON object-key equivalent: %w", err)
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
		return nil, fmt.Errorf("jsonvalue: unreachable variant %v", v.Tag())
	}
}

func fromNative(x interface{}) (msgplus.Value, error) {
	switch t := x.(type) {
	case nil:
		return msgplus.Nil(), nil
	case bool:
		return msgplus.FromBool(t), nil
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
		return msgplus.Value{}, fmt.Errorf("jsonvalue: unsupported JSON-decoded type %T", x)
	}
}
