package repositories

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// record is a flat protobuf message made of string and varint fields.
// Values stored in Badger use the protobuf wire format so that any
// protobuf-aware tool can decode them from the field numbers below.
type record struct {
	buf []byte
}

func (r *record) string(num protowire.Number, value string) *record {
	r.buf = protowire.AppendTag(r.buf, num, protowire.BytesType)
	r.buf = protowire.AppendString(r.buf, value)
	return r
}

func (r *record) varint(num protowire.Number, value uint64) *record {
	r.buf = protowire.AppendTag(r.buf, num, protowire.VarintType)
	r.buf = protowire.AppendVarint(r.buf, value)
	return r
}

func (r *record) bytes() []byte {
	return r.buf
}

type fields struct {
	strings map[protowire.Number]string
	varints map[protowire.Number]uint64
}

// decodeRecord reads every field of a flat record.
// Unknown wire types are skipped, repeated strings keep the last value.
func decodeRecord(b []byte) (fields, error) {
	f := fields{
		strings: make(map[protowire.Number]string),
		varints: make(map[protowire.Number]uint64),
	}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fields{}, fmt.Errorf("decode tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return fields{}, fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
			}
			f.strings[num] = v
			b = b[n:]
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fields{}, fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
			}
			f.varints[num] = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fields{}, fmt.Errorf("skip field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return f, nil
}
