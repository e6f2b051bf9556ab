package export

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

type entry[V any] struct {
	Key   string
	Value V
}

// ordered is a string-keyed map that keeps insertion order in every format.
type ordered[V any] []entry[V]

func (m ordered[V]) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m {
		var v yaml.Node
		if err := v.Encode(e.Value); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key}, &v)
	}
	return n, nil
}

func (m ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m ordered[V]) MarshalCBOR() ([]byte, error) {
	out := cborMapHeader(len(m))
	for _, e := range m {
		k, err := cborMode.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := cborMode.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, k...)
		out = append(out, v...)
	}
	return out, nil
}

// cborMapHeader is the definite-length map head for n pairs. Deterministic
// encoding forbids indefinite-length maps.
func cborMapHeader(n int) []byte {
	const major = 0xa0
	switch {
	case n < 24:
		return []byte{byte(major | n)}
	case n <= math.MaxUint8:
		return []byte{major | 24, byte(n)}
	case n <= math.MaxUint16:
		return binary.BigEndian.AppendUint16([]byte{major | 25}, uint16(n))
	default:
		return binary.BigEndian.AppendUint32([]byte{major | 26}, uint32(n))
	}
}

func (m ordered[V]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(m)); err != nil {
		return err
	}
	for _, e := range m {
		if err := enc.EncodeString(e.Key); err != nil {
			return err
		}
		if err := enc.Encode(e.Value); err != nil {
			return err
		}
	}
	return nil
}
