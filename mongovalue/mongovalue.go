// Package mongovalue converts between msgplus Values and BSON, and stores
// Values in a MongoDB collection keyed by an arbitrary document id.
//
// bson.D is itself an ordered sequence of named fields, the same shape as
// OrderedMap, so a Value map maps onto bson.D directly rather than onto the
// unordered bson.M.
package mongovalue

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"msgplus"
)

// Store wraps a single MongoDB collection holding msgplus Values under a
// "_id" field plus a "value" field carrying the encoded document.
type Store struct {
	collection *mongo.Collection
}

// NewStore connects to uri and opens db.collection.
func NewStore(ctx context.Context, uri, db, collection string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongovalue: connect: %w", err)
	}
	return &Store{collection: client.Database(db).Collection(collection)}, nil
}

// Put upserts v under id.
func (s *Store) Put(ctx context.Context, id string, v msgplus.Value) error {
	doc, err := ToBSON(v)
	if err != nil {
		return fmt.Errorf("mongovalue: put: %w", err)
	}
	_, err = s.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "value", Value: doc}}}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Get loads the Value stored under id.
func (s *Store) Get(ctx context.Context, id string) (msgplus.Value, bool, error) {
	var doc struct {
		Value bson.RawValue `bson:"value"`
	}
	err := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return msgplus.Value{}, false, nil
	}
	if err != nil {
		return msgplus.Value{}, false, err
	}
	var raw interface{}
	if err := doc.Value.Unmarshal(&raw); err != nil {
		return msgplus.Value{}, false, fmt.Errorf("mongovalue: get: %w", err)
	}
	v, err := FromBSON(raw)
	if err != nil {
		return msgplus.Value{}, false, fmt.Errorf("mongovalue: get: %w", err)
	}
	return v, true, nil
}

// ToBSON converts v into a BSON-marshalable tree: maps become bson.D,
// arrays become bson.A, ext becomes a two-field bson.D carrying the type
// code and the opaque payload.
func ToBSON(v msgplus.Value) (interface{}, error) {
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
		out := make(bson.A, len(arr))
		for i, elem := range arr {
			converted, err := ToBSON(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = converted
		}
		return out, nil
	case msgplus.TagMap:
		m, _ := v.AsMap()
		out := make(bson.D, 0, m.Len())
		for _, p := range m.Pairs() {
			key, err := p.Key.AsStr()
			if err != nil {
				return nil, fmt.Errorf("map key is not a str Value, has no BSON field-name equivalent: %w", err)
			}
			val, err := ToBSON(p.Value)
			if err != nil {
				return nil, fmt.Errorf("map value for key %q: %w", key, err)
			}
			out = append(out, bson.E{Key: key, Value: val})
		}
		return out, nil
	case msgplus.TagExt:
		ext, _ := v.AsExt()
		return bson.D{
			{Key: "extType", Value: int32(ext.Type)},
			{Key: "extData", Value: ext.Data},
		}, nil
	default:
		return nil, fmt.Errorf("mongovalue: unreachable variant %v", v.Tag())
	}
}

// asExtDoc recognizes the two-field {extType, extData} shape ToBSON emits
// for the ext family, so a round trip through Mongo reconstructs an ext
// Value rather than a plain map.
func asExtDoc(d bson.D) (msgplus.Value, bool) {
	if len(d) != 2 || d[0].Key != "extType" || d[1].Key != "extData" {
		return msgplus.Value{}, false
	}
	var typ int32
	switch t := d[0].Value.(type) {
	case int32:
		typ = t
	case int64:
		typ = int32(t)
	default:
		return msgplus.Value{}, false
	}
	data, ok := d[1].Value.(primitive.Binary)
	if ok {
		return msgplus.FromExt(int8(typ), data.Data), true
	}
	raw, ok := d[1].Value.([]byte)
	if !ok {
		return msgplus.Value{}, false
	}
	return msgplus.FromExt(int8(typ), raw), true
}

// FromBSON converts a tree produced by the Go BSON driver's native decoding
// (bson.D/bson.A/primitive scalars) back into a Value.
func FromBSON(x interface{}) (msgplus.Value, error) {
	switch t := x.(type) {
	case nil:
		return msgplus.Nil(), nil
	case bool:
		return msgplus.FromBool(t), nil
	case int32:
		return msgplus.FromInt(int64(t)), nil
	case int64:
		return msgplus.FromInt(t), nil
	case float64:
		return msgplus.FromFloat64(t), nil
	case string:
		return msgplus.FromStr(t), nil
	case []byte:
		return msgplus.FromBin(t), nil
	case primitive.Binary:
		return msgplus.FromBin(t.Data), nil
	case bson.A:
		elems := make([]msgplus.Value, len(t))
		for i, raw := range t {
			v, err := FromBSON(raw)
			if err != nil {
				return msgplus.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = v
		}
		return msgplus.FromArray(elems), nil
	case bson.D:
		if ext, ok := asExtDoc(t); ok {
			return ext, nil
		}
		m := msgplus.NewMap()
		for _, e := range t {
			val, err := FromBSON(e.Value)
			if err != nil {
				return msgplus.Value{}, fmt.Errorf("field %q: %w", e.Key, err)
			}
			if err := m.Append(msgplus.FromStr(e.Key), val); err != nil {
				return msgplus.Value{}, fmt.Errorf("field %q: %w", e.Key, err)
			}
		}
		return msgplus.FromMap(m), nil
	case primitive.M:
		return msgplus.Value{}, fmt.Errorf("mongovalue: unordered bson.M has no deterministic field order; re-decode with bson.D")
	default:
		return msgplus.Value{}, fmt.Errorf("mongovalue: unsupported BSON type %T", x)
	}
}
