package hyperliquid

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/vmihailenco/msgpack/v5"
)

// Action is an insertion-ordered set of string-keyed fields describing a
// venue operation. Key order is significant: it fixes the canonical encoding
// and therefore the action hash, so the same fields inserted in a different
// order produce a different signature. Actions handed to the signing
// functions are treated as immutable.
type Action struct {
	keys   []string
	values map[string]any
}

// NewAction returns an empty action.
func NewAction() *Action {
	return &Action{values: make(map[string]any)}
}

// Set stores a field, appending the key to the order on first insertion.
// Re-setting an existing key keeps its original position. Set returns the
// action to allow chained construction.
func (a *Action) Set(key string, value any) *Action {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
	return a
}

// Get returns the value stored under key.
func (a *Action) Get(key string) (any, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Len returns the number of fields.
func (a *Action) Len() int {
	return len(a.keys)
}

// Keys returns the field names in insertion order.
func (a *Action) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Clone returns a deep copy: nested actions and slices are copied, leaf
// values are shared.
func (a *Action) Clone() *Action {
	out := NewAction()
	for _, k := range a.keys {
		out.Set(k, cloneValue(a.values[k]))
	}
	return out
}

// Without returns a clone with the named field removed, preserving the order
// of the remaining fields. The multi-sig envelope hashes the inner action
// without its "type" discriminator.
func (a *Action) Without(key string) *Action {
	out := NewAction()
	for _, k := range a.keys {
		if k == key {
			continue
		}
		out.Set(k, cloneValue(a.values[k]))
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Action:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = cloneValue(val[i])
		}
		return out
	case []*Action:
		out := make([]*Action, len(val))
		for i := range val {
			out[i] = val[i].Clone()
		}
		return out
	default:
		return v
	}
}

var _ msgpack.CustomEncoder = (*Action)(nil)

// EncodeMsgpack writes the canonical MessagePack encoding: a length-prefixed
// map whose entries appear in insertion order. The encoder primitives are
// driven explicitly per value so integer widths and type tags follow the
// venue's canonical form rather than the library's reflection defaults.
func (a *Action) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(a.keys)); err != nil {
		return err
	}
	for _, k := range a.keys {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := encodeCanonical(enc, a.values[k]); err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
	}
	return nil
}

// encodeCanonical encodes a single action value. Non-negative integers go
// through the unsigned family and negative integers through the signed
// family, both at minimal width. Raw floats and unordered Go maps have no
// canonical form and are rejected.
func encodeCanonical(enc *msgpack.Encoder, v any) error {
	switch val := v.(type) {
	case nil:
		return enc.EncodeNil()
	case string:
		return enc.EncodeString(val)
	case bool:
		return enc.EncodeBool(val)
	case int:
		return encodeCanonicalInt(enc, int64(val))
	case int8:
		return encodeCanonicalInt(enc, int64(val))
	case int16:
		return encodeCanonicalInt(enc, int64(val))
	case int32:
		return encodeCanonicalInt(enc, int64(val))
	case int64:
		return encodeCanonicalInt(enc, val)
	case uint:
		return enc.EncodeUint(uint64(val))
	case uint8:
		return enc.EncodeUint(uint64(val))
	case uint16:
		return enc.EncodeUint(uint64(val))
	case uint32:
		return enc.EncodeUint(uint64(val))
	case uint64:
		return enc.EncodeUint(val)
	case []byte:
		return enc.EncodeBytes(val)
	case *Action:
		if val == nil {
			return enc.EncodeNil()
		}
		return val.EncodeMsgpack(enc)
	case []any:
		if err := enc.EncodeArrayLen(len(val)); err != nil {
			return err
		}
		for i := range val {
			if err := encodeCanonical(enc, val[i]); err != nil {
				return err
			}
		}
		return nil
	case []*Action:
		if err := enc.EncodeArrayLen(len(val)); err != nil {
			return err
		}
		for i := range val {
			if err := encodeCanonical(enc, val[i]); err != nil {
				return err
			}
		}
		return nil
	case []string:
		if err := enc.EncodeArrayLen(len(val)); err != nil {
			return err
		}
		for i := range val {
			if err := enc.EncodeString(val[i]); err != nil {
				return err
			}
		}
		return nil
	case float32, float64:
		return errFloatValueNotCanonical
	case map[string]any:
		return errUnorderedMapValue
	default:
		return fmt.Errorf("%w: unsupported field type %T", ErrEncoding, v)
	}
}

func encodeCanonicalInt(enc *msgpack.Encoder, n int64) error {
	if n >= 0 {
		return enc.EncodeUint(uint64(n))
	}
	return enc.EncodeInt(n)
}

// marshalCanonical encodes an action value to its canonical byte stream. The
// top-level value is normally an *Action; the protocol multi-sig path hashes
// a three-element tuple instead.
func marshalCanonical(action any) ([]byte, error) {
	if action == nil {
		return nil, errActionRequired
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encodeCanonical(enc, action); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON emits the fields in insertion order so the posted request body
// mirrors the ordering that was hashed.
func (a *Action) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := a.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *Action) writeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := sonic.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeJSONValue(buf, a.values[k]); err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case *Action:
		if val == nil {
			buf.WriteString("null")
			return nil
		}
		return val.writeJSON(buf)
	case []any:
		buf.WriteByte('[')
		for i := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, val[i]); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case []*Action:
		buf.WriteByte('[')
		for i := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, val[i]); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		raw, err := sonic.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(raw)
		return nil
	}
}
