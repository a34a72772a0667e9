package bigint

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = (*Int)(nil)
	_ msgpack.CustomDecoder = (*Int)(nil)
)

// MarshalText encodes x in decimal.
func (x *Int) MarshalText() ([]byte, error) {
	if x == nil || len(x.limbs) == 0 {
		return nil, opErrDetail("marshal", ErrInvalidArgument, "uninitialized value")
	}
	s, err := x.Text(10)
	return []byte(s), err
}

// UnmarshalText decodes a decimal value into z. The capacity of z is kept
// when already set, otherwise DefaultCapacity is used.
func (z *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text), 10, WithCapacity(z.capacityOrDefault()))
	if err != nil {
		return err
	}
	*z = *v
	return nil
}

// EncodeMsgpack writes x as the array [capacity, negative, magnitude].
func (x *Int) EncodeMsgpack(enc *msgpack.Encoder) error {
	if len(x.limbs) == 0 {
		return opErrDetail("marshal", ErrInvalidArgument, "uninitialized value")
	}
	if err := enc.EncodeArrayLen(3); err != nil {
		return err
	}
	if err := enc.EncodeInt(int64(len(x.limbs))); err != nil {
		return err
	}
	if err := enc.EncodeBool(x.IsNegative()); err != nil {
		return err
	}
	return enc.EncodeBytes(x.Bytes())
}

// DecodeMsgpack reads a value written by EncodeMsgpack.
func (z *Int) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 3 {
		return opErrDetail("unmarshal", ErrInvalidArgument, fmt.Sprintf("array of %d elements", n))
	}
	c, err := dec.DecodeInt()
	if err != nil {
		return err
	}
	neg, err := dec.DecodeBool()
	if err != nil {
		return err
	}
	b, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	capacity, err := resolveCapacity("unmarshal", []Option{WithCapacity(c)})
	if err != nil {
		return err
	}
	v, ok := fromMag(bytesToMag(b), neg, capacity)
	if !ok {
		return rangeErr("unmarshal", neg)
	}
	*z = *v
	return nil
}

func (z *Int) capacityOrDefault() int {
	if len(z.limbs) == 0 {
		return DefaultCapacity
	}
	return len(z.limbs)
}
