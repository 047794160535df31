package variant

import (
	"fmt"
	"strconv"
	"strings"
)

// ToMDLConstant renders v in the canonical MDL constant textual form:
// numbers bare, booleans as
// TRUE/FALSE, unsigned values suffixed "u" when strict is true, strings
// double-quoted with C-escapes, byte strings as x"...hex...", collections
// as {...}, and maps as {k:v,...}. pkg/codec/mdl.Parse is the paired
// reader that reconstructs a Variant from this textual form.
func (v Variant) ToMDLConstant(strict bool) string {
	switch v.kind {
	case Empty:
		return "EMPTY"
	case Bool:
		if v.scalar != 0 {
			return "TRUE"
		}
		return "FALSE"
	case Byte, Char, UInt:
		n := v.scalar
		if strict {
			return strconv.FormatUint(n, 10) + "u"
		}
		return strconv.FormatUint(n, 10)
	case Int:
		return strconv.FormatInt(int64(int32(v.scalar)), 10)
	case Double:
		d, _ := v.AsDouble()
		s := strconv.FormatFloat(d, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += "."
		}
		return s
	case String:
		return quoteMDLString(v.textBytes())
	case ByteString:
		return quoteMDLByteString(v.textBytes())
	case StringCollection, VariantCollection:
		items := v.items()
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = it.ToMDLConstant(strict)
		}
		return "{" + strings.Join(parts, ",") + "}"
	case Map:
		items := v.items()
		if len(items) == 0 {
			return "{:}"
		}
		parts := make([]string, 0, len(items)/2)
		for i := 0; i+1 < len(items); i += 2 {
			parts = append(parts, items[i].ToMDLConstant(strict)+":"+items[i+1].ToMDLConstant(strict))
		}
		return "{" + strings.Join(parts, ",") + "}"
	case Object, ObjectEmbedded:
		return fmt.Sprintf("<object:%s>", v.kind)
	default:
		return "EMPTY"
	}
}

func quoteMDLString(b []byte) string {
	var out strings.Builder
	out.WriteByte('"')
	for _, c := range b {
		switch c {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		case '\t':
			out.WriteString(`\t`)
		case '\r':
			out.WriteString(`\r`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&out, `\x%02x`, c)
			} else {
				out.WriteByte(c)
			}
		}
	}
	out.WriteByte('"')
	return out.String()
}

func quoteMDLByteString(b []byte) string {
	var out strings.Builder
	out.WriteString(`x"`)
	for i, by := range b {
		if i > 0 {
			out.WriteByte(' ')
		}
		fmt.Fprintf(&out, "%02X", by)
	}
	out.WriteByte('"')
	return out.String()
}
