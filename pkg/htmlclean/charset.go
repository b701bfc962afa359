package htmlclean

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
)

// DecodeToUTF8 converts raw HTML bytes to a UTF-8 string, honoring a
// charset= declaration in the content when present. EUC-KR and Latin-1
// declarations are decoded; anything else is assumed to already be UTF-8.
func DecodeToUTF8(data []byte) (string, error) {
	charset := sniffCharset(string(data))

	var dec *encoding.Decoder
	switch charset {
	case "", "utf-8", "utf8":
		return string(data), nil
	case "euc-kr", "ks_c_5601-1987", "ksc5601":
		dec = korean.EUCKR.NewDecoder()
	case "iso-8859-1", "latin1":
		dec = charmap.ISO8859_1.NewDecoder()
	default:
		return string(data), nil
	}

	decoded, err := dec.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", charset, err)
	}
	return string(decoded), nil
}

// sniffCharset pulls the first charset= token out of the content, the way a
// meta tag declares it.
func sniffCharset(content string) string {
	i := strings.Index(strings.ToLower(content), "charset=")
	if i < 0 {
		return ""
	}
	rest := content[i+len("charset="):]
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '"' || r == '\'' || r == ';' || r == '>' || r == ' ' || r == '\n' || r == '\r' || r == '\t'
	})
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
