package catalogload

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding names the source character encoding of a catalogue file,
// mirroring the teacher's charset.Encoding enum.
type Encoding string

const (
	EncodingAuto      Encoding = ""
	EncodingUTF8      Encoding = "utf-8"
	EncodingWindows1250 Encoding = "windows-1250"
	EncodingISO88592  Encoding = "iso-8859-2"
)

// windows1250Chars maps the Windows-1250 byte values that diverge from
// Latin-1 for the Croatian/Central European diacritics this catalogue
// domain sees, mirroring the teacher's charset.decodeWindows1250 table
// (internal/parsers/charset/decoder.go).
var windows1250Chars = map[byte]rune{
	0x8A: 'Š', 0x9A: 'š',
	0xD0: 'Đ', 0xF0: 'đ',
	0xC8: 'Č', 0xE8: 'č',
	0x8E: 'Ž', 0x9E: 'ž',
	0xC6: 'Ć', 0xE6: 'ć',
}

// detectAndDecode mirrors the teacher's charset.DetectEncoding/Decode pair
// for the auto-detect path (no explicit --encoding given): content already
// valid UTF-8 is returned unchanged (a BOM is stripped either way);
// otherwise it is assumed to be Windows-1250, this market's common
// fallback when a feed isn't UTF-8.
func detectAndDecode(content []byte) []byte {
	content = stripBOM(content)
	if utf8.Valid(content) {
		return content
	}
	return decodeWindows1250(content)
}

// decode applies an explicitly-declared encoding, for catalogue sources that
// are known in advance not to be UTF-8 or Windows-1250 (e.g. ISO-8859-2,
// used by some older point-of-sale exports), following the teacher's
// charset.Decode.
func decode(content []byte, enc Encoding) ([]byte, error) {
	content = stripBOM(content)
	switch enc {
	case EncodingAuto, EncodingUTF8:
		return detectAndDecode(content), nil
	case EncodingWindows1250:
		if utf8.Valid(content) {
			return content, nil
		}
		return decodeWindows1250(content), nil
	case EncodingISO88592:
		return decodeISO88592(content)
	default:
		return content, nil
	}
}

func stripBOM(content []byte) []byte {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:]
	}
	return content
}

func decodeWindows1250(data []byte) []byte {
	out := make([]byte, 0, len(data)*2)
	var buf [utf8.UTFMax]byte
	for _, b := range data {
		if r, ok := windows1250Chars[b]; ok {
			n := utf8.EncodeRune(buf[:], r)
			out = append(out, buf[:n]...)
			continue
		}
		out = append(out, b)
	}
	return out
}

// decodeISO88592 decodes ISO-8859-2 bytes to UTF-8 via x/text, following the
// teacher's charset.decodeISO88592 verbatim.
func decodeISO88592(data []byte) ([]byte, error) {
	reader := transform.NewReader(strings.NewReader(string(data)), charmap.ISO8859_2.NewDecoder())
	return io.ReadAll(reader)
}
