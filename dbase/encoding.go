package dbase

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// EncodingConverter is the interface as passed to Open
type EncodingConverter interface {
	Decode(in []byte) ([]byte, error)
	Encode(in []byte) ([]byte, error)
	CodePage() byte
}

// Code page mark of German MS-DOS tables, needs the DOS remap in front of Windows-1252
const GermanDOS byte = 0x10

type DefaultConverter struct {
	encoding *charmap.Charmap
	remap    bool
}

func NewDefaultConverter(encoding *charmap.Charmap) DefaultConverter {
	return DefaultConverter{encoding: encoding}
}

// NewDOSConverter returns a Windows-1252 converter that first moves the German
// MS-DOS umlauts to their Windows-1252 positions.
func NewDOSConverter() DefaultConverter {
	return DefaultConverter{encoding: charmap.Windows1252, remap: true}
}

// Memo blobs are not part of the table buffer, the DOS remap only applies to the table
func memoConverter(c EncodingConverter) EncodingConverter {
	if dc, ok := c.(DefaultConverter); ok && dc.remap {
		return NewDefaultConverter(dc.encoding)
	}
	return c
}

// Decode decodes a specified encoding to byte slice to a UTF8 byte slice.
// Every byte has a mapping, bytes without character become U+FFFD.
func (c DefaultConverter) Decode(in []byte) ([]byte, error) {
	var t transform.Transformer = c.encoding.NewDecoder()
	if c.remap {
		t = transform.Chain(dosRemapper{}, t)
	}
	out, _, err := transform.Bytes(t, in)
	if err != nil {
		return nil, newError("dbase-encoding-decode-1", err)
	}
	return out, nil
}

// Encode encodes a UTF8 byte slice to the specified encoding, runes without
// representation are replaced.
func (c DefaultConverter) Encode(in []byte) ([]byte, error) {
	out, err := encoding.ReplaceUnsupported(c.encoding.NewEncoder()).Bytes(in)
	if err != nil {
		return nil, newError("dbase-encoding-encode-1", err)
	}
	return out, nil
}

// CodePageMark returns corresponding code page mark for the encoding
func (c DefaultConverter) CodePage() byte {
	if c.remap {
		return GermanDOS
	}
	switch c.encoding {
	case charmap.CodePage437: // U.S. MS-DOS
		return 0x01
	case charmap.CodePage850: // International MS-DOS
		return 0x02
	case charmap.CodePage852: // Eastern European MS-DOS
		return 0x64
	case charmap.CodePage865: // Nordic MS-DOS
		return 0x66
	case charmap.CodePage866: // Russian MS-DOS
		return 0x65
	case charmap.Windows874: // Thai Windows
		return 0x7C
	case charmap.Windows1250: // Central European Windows
		return 0xc8
	case charmap.Windows1251: // Russian Windows
		return 0xc9
	case charmap.Windows1252: // Windows ANSI
		return 0x03
	case charmap.Windows1253: // Greek Windows
		return 0xCB
	case charmap.Windows1254: // Turkish Windows
		return 0xCA
	case charmap.Windows1255: // Hebrew Windows
		return 0x7D
	case charmap.Windows1256: // Arabic Windows
		return 0x7E
	default:
		return 0x00
	}
}

// ConverterFromCodePage returns the converter for a code page mark.
// Only Western tables are known to exist in the converted archives: every mark
// decodes as Windows-1252, German MS-DOS tables additionally get the umlaut remap.
func ConverterFromCodePage(codePageMark byte) DefaultConverter {
	switch codePageMark {
	case GermanDOS:
		return NewDOSConverter()
	case 0x03: // Windows ANSI
		return NewDefaultConverter(charmap.Windows1252)
	default:
		return NewDefaultConverter(charmap.Windows1252)
	}
}

// InterpretCodePage returns the converter for every code page mark dBase defines,
// falling back to ConverterFromCodePage for unknown marks.
func InterpretCodePage(codePageMark byte) DefaultConverter {
	switch codePageMark {
	case 0x01: // U.S. MS-DOS
		return NewDefaultConverter(charmap.CodePage437)
	case 0x02: // International MS-DOS
		return NewDefaultConverter(charmap.CodePage850)
	case 0x64: // Eastern European MS-DOS
		return NewDefaultConverter(charmap.CodePage852)
	case 0x66: // Nordic MS-DOS
		return NewDefaultConverter(charmap.CodePage865)
	case 0x65: // Russian MS-DOS
		return NewDefaultConverter(charmap.CodePage866)
	case 0x7C: // Thai Windows
		return NewDefaultConverter(charmap.Windows874)
	case 0xC8: // Central European Windows
		return NewDefaultConverter(charmap.Windows1250)
	case 0xC9: // Russian Windows
		return NewDefaultConverter(charmap.Windows1251)
	case 0xCB: // Greek Windows
		return NewDefaultConverter(charmap.Windows1253)
	case 0xCA: // Turkish Windows
		return NewDefaultConverter(charmap.Windows1254)
	case 0x7D: // Hebrew Windows
		return NewDefaultConverter(charmap.Windows1255)
	case 0x7E: // Arabic Windows
		return NewDefaultConverter(charmap.Windows1256)
	default:
		return ConverterFromCodePage(codePageMark)
	}
}

// German MS-DOS umlauts and their Windows-1252 position
var dosRemap = func() [256]byte {
	var table [256]byte
	for i := range table {
		table[i] = byte(i)
	}
	table[0x8E] = 0xC4 // Ä
	table[0x84] = 0xE4 // ä
	table[0x99] = 0xD6 // Ö
	table[0x94] = 0xF6 // ö
	table[0x9A] = 0xDC // Ü
	table[0x81] = 0xFC // ü
	table[0xE1] = 0xDF // ß
	return table
}()

// dosRemapper substitutes single bytes, so it works on any chunking of the input.
type dosRemapper struct {
	transform.NopResetter
}

func (dosRemapper) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
		err = transform.ErrShortDst
	}
	for i := 0; i < n; i++ {
		dst[i] = dosRemap[src[i]]
	}
	return n, n, err
}
