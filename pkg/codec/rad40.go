package codec

import "github.com/metercore/mcore/pkg/errs"

// rad40Alphabet is the 40-symbol RAD40 character set; 40^3 = 64000 < 65536
// so three characters always pack into a 16-bit word.
const rad40Alphabet = " 0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ.$%"

var rad40Index [256]int8

func init() {
	for i := range rad40Index {
		rad40Index[i] = -1
	}
	for i := 0; i < len(rad40Alphabet); i++ {
		rad40Index[rad40Alphabet[i]] = int8(i)
	}
}

// EncodeRAD40 packs str into RAD40 bytes, three characters per two bytes.
// A final partial group of 1 or 2 characters is padded on the right with
// the alphabet's zero symbol (space).
func EncodeRAD40(str string) ([]byte, error) {
	out := make([]byte, 0, (len(str)/3+1)*2)
	for i := 0; i < len(str); i += 3 {
		var group [3]byte
		n := copy(group[:], str[i:min(i+3, len(str))])
		for j := n; j < 3; j++ {
			group[j] = ' '
		}
		word, err := rad40Encode3(group)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(word>>8), byte(word))
	}
	return out, nil
}

// DecodeRAD40 unpacks a RAD40 byte buffer to the string it represents. A
// trailing odd byte (one that does not complete a 2-byte group) is
// silently truncated.
func DecodeRAD40(data []byte) (string, error) {
	out := make([]byte, 0, (len(data)/2)*3)
	for i := 0; i+1 < len(data); i += 2 {
		word := uint16(data[i])<<8 | uint16(data[i+1])
		if int(word) >= len(rad40Alphabet)*len(rad40Alphabet)*len(rad40Alphabet) {
			return "", errs.BadConversion("RAD40 word %d out of range", word)
		}
		chars := rad40Decode3(word)
		out = append(out, chars[:]...)
	}
	return string(out), nil
}

func rad40Encode3(chars [3]byte) (uint16, error) {
	var v [3]int
	for i, c := range chars {
		idx := rad40Index[c]
		if idx < 0 {
			return 0, errs.BadConversion("character %s is not in the RAD40 alphabet", errs.Quote(string(c)))
		}
		v[i] = int(idx)
	}
	return uint16(v[0]*1600 + v[1]*40 + v[2]), nil
}

func rad40Decode3(word uint16) [3]byte {
	var out [3]byte
	out[0] = rad40Alphabet[word/1600]
	out[1] = rad40Alphabet[(word/40)%40]
	out[2] = rad40Alphabet[word%40]
	return out
}
