package charset

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r in a reader that decodes its content to UTF-8.
// Bank statement exports arrive in whatever charset the bank's backend
// felt like that day, so detection goes:
//
//  1. BOM (UTF-8 BOM stripped; UTF-16 LE/BE decoded)
//  2. Content already valid UTF-8 is passed through
//  3. Heuristic detection via chardet
//  4. Fallback to Windows-1252
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		decoder := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	if cm := detect(buf); cm != nil {
		return transform.NewReader(br, cm.NewDecoder()), nil
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

// detect maps a chardet guess to a supported single-byte charmap.
// Returns nil when detection fails or names an unsupported charset.
func detect(buf []byte) *charmap.Charmap {
	detector := chardet.NewTextDetector()

	result, err := detector.DetectBest(buf)
	if err != nil {
		return nil
	}

	switch result.Charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-15":
		return charmap.ISO8859_15
	case "ISO-8859-9":
		return charmap.ISO8859_9
	}

	return nil
}
