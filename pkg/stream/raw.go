package stream

import (
	"math"

	"github.com/metercore/mcore/internal/format"
	"github.com/metercore/mcore/pkg/errs"
	"github.com/metercore/mcore/pkg/variant"
)

// Raw codec: every serializable Variant kind travels as a 4-byte
// little-endian type tag followed by a kind-specific body. Strings are
// written as their UTF-8 bytes with a leading count; collections recurse.

// maxRawCollectionCount bounds collection counts read from the wire.
const maxRawCollectionCount = 0xFFFFFF

// WriteRawInt writes a 4-byte little-endian integer.
func (s *Stream) WriteRawInt(value int32) error {
	var b [4]byte
	format.PutI32(b[:], 0, value)
	return s.WriteBytes(b[:])
}

// ReadRawInt reads a 4-byte little-endian integer.
func (s *Stream) ReadRawInt() (int32, error) {
	var b [4]byte
	if err := s.ReadBytes(b[:]); err != nil {
		return 0, err
	}
	return format.ReadI32(b[:], 0), nil
}

// WriteRawBool writes one byte, 0x01 for true.
func (s *Stream) WriteRawBool(value bool) error {
	if value {
		return s.WriteByte(1)
	}
	return s.WriteByte(0)
}

// ReadRawBool reads one byte; any nonzero value is true.
func (s *Stream) ReadRawBool() (bool, error) {
	var b [1]byte
	if err := s.ReadBytes(b[:]); err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// WriteRawDouble writes an 8-byte little-endian IEEE double.
func (s *Stream) WriteRawDouble(value float64) error {
	var b [8]byte
	format.PutU64(b[:], 0, math.Float64bits(value))
	return s.WriteBytes(b[:])
}

// ReadRawDouble reads an 8-byte little-endian IEEE double.
func (s *Stream) ReadRawDouble() (float64, error) {
	var b [8]byte
	if err := s.ReadBytes(b[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(format.ReadU64(b[:], 0)), nil
}

// WriteRawByteString writes a count-prefixed byte string.
func (s *Stream) WriteRawByteString(value []byte) error {
	if err := s.WriteRawInt(int32(len(value))); err != nil {
		return err
	}
	if len(value) == 0 {
		return nil
	}
	return s.WriteBytes(value)
}

// ReadRawByteString reads a count-prefixed byte string.
func (s *Stream) ReadRawByteString() ([]byte, error) {
	count, err := s.ReadRawInt()
	if err != nil {
		return nil, err
	}
	if count < 0 || count > maxRawCollectionCount {
		return nil, errs.NumberOutOfRange("byte string count %d out of range [0, %d]", count, maxRawCollectionCount)
	}
	if count == 0 {
		return nil, nil
	}
	return s.Read(int(count))
}

// WriteRawString writes a count-prefixed string as its UTF-8 bytes.
func (s *Stream) WriteRawString(value string) error {
	return s.WriteRawByteString([]byte(value))
}

// ReadRawString reads a count-prefixed string.
func (s *Stream) ReadRawString() (string, error) {
	b, err := s.ReadRawByteString()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteRawVariant serializes value with its leading type tag. Object,
// map, and meta kinds have no raw form and are refused.
func (s *Stream) WriteRawVariant(value variant.Variant) error {
	kind := value.Kind()
	switch kind {
	case variant.Object, variant.ObjectEmbedded, variant.Map, variant.VariantMeta:
		return errs.UnsupportedType("variant kind %s has no raw form", kind)
	}
	if err := s.WriteRawInt(int32(kind)); err != nil {
		return err
	}
	switch kind {
	case variant.Empty:
		return nil
	case variant.Bool:
		b, err := value.AsBool()
		if err != nil {
			return err
		}
		return s.WriteRawBool(b)
	case variant.Byte, variant.Char:
		b, err := value.AsByte()
		if err != nil {
			return err
		}
		return s.WriteByte(b)
	case variant.Int:
		n, err := value.AsInt()
		if err != nil {
			return err
		}
		return s.WriteRawInt(n)
	case variant.UInt:
		n, err := value.AsUInt()
		if err != nil {
			return err
		}
		return s.WriteRawInt(int32(n))
	case variant.Double:
		d, err := value.AsDouble()
		if err != nil {
			return err
		}
		return s.WriteRawDouble(d)
	case variant.ByteString:
		b, err := value.AsByteString()
		if err != nil {
			return err
		}
		return s.WriteRawByteString(b)
	case variant.String:
		str, err := value.AsString()
		if err != nil {
			return err
		}
		return s.WriteRawString(str)
	case variant.StringCollection, variant.VariantCollection:
		count, err := value.GetCount()
		if err != nil {
			return err
		}
		if err := s.WriteRawInt(int32(count)); err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			item, err := value.GetItem(variant.NewInt(int32(i)))
			if err != nil {
				return err
			}
			if kind == variant.StringCollection {
				str, err := item.AsString()
				if err != nil {
					return err
				}
				if err := s.WriteRawString(str); err != nil {
					return err
				}
			} else if err := s.WriteRawVariant(item); err != nil {
				return err
			}
		}
		return nil
	}
	return errs.UnsupportedType("variant kind %s has no raw form", kind)
}

// ReadRawVariant reads one tagged Variant written by WriteRawVariant.
func (s *Stream) ReadRawVariant() (variant.Variant, error) {
	tag, err := s.ReadRawInt()
	if err != nil {
		return variant.Variant{}, err
	}
	switch variant.Kind(tag) {
	case variant.Empty:
		return variant.NewEmpty(), nil
	case variant.Bool:
		b, err := s.ReadRawBool()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewBool(b), nil
	case variant.Byte:
		b, err := s.Read(1)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewByte(b[0]), nil
	case variant.Char:
		b, err := s.Read(1)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewChar(b[0]), nil
	case variant.Int:
		n, err := s.ReadRawInt()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewInt(n), nil
	case variant.UInt:
		n, err := s.ReadRawInt()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewUInt(uint32(n)), nil
	case variant.Double:
		d, err := s.ReadRawDouble()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewDouble(d), nil
	case variant.ByteString:
		b, err := s.ReadRawByteString()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewByteString(variant.AcceptByteString, b), nil
	case variant.String:
		str, err := s.ReadRawString()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewString(str), nil
	case variant.StringCollection:
		count, err := s.ReadRawInt()
		if err != nil {
			return variant.Variant{}, err
		}
		if count < 0 || count > maxRawCollectionCount {
			return variant.Variant{}, errs.NumberOutOfRange("string collection count %d out of range [0, %d]", count, maxRawCollectionCount)
		}
		items := make([]string, 0, count)
		for i := int32(0); i < count; i++ {
			str, err := s.ReadRawString()
			if err != nil {
				return variant.Variant{}, err
			}
			items = append(items, str)
		}
		return variant.NewStringCollection(items), nil
	case variant.VariantCollection:
		count, err := s.ReadRawInt()
		if err != nil {
			return variant.Variant{}, err
		}
		if count < 0 || count > maxRawCollectionCount {
			return variant.Variant{}, errs.NumberOutOfRange("variant collection count %d out of range [0, %d]", count, maxRawCollectionCount)
		}
		items := make([]variant.Variant, 0, count)
		for i := int32(0); i < count; i++ {
			item, err := s.ReadRawVariant()
			if err != nil {
				return variant.Variant{}, err
			}
			items = append(items, item)
		}
		return variant.NewVariantCollection(items), nil
	}
	return variant.Variant{}, errs.UnsupportedType("unknown raw variant type tag %d", tag)
}
