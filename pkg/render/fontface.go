package render

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FontFaceCSS reads a font file and returns an @font-face rule with the data
// embedded as a base64 data URI under the given family name. The MIME type
// and format hint follow the file extension, defaulting to opentype. A
// missing file is an error here, before any browser is launched.
func FontFaceCSS(path, family string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read font file %s: %w", path, err)
	}

	var mime, format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf":
		mime, format = "font/ttf", "truetype"
	case ".otf":
		mime, format = "font/otf", "opentype"
	case ".woff":
		mime, format = "font/woff", "woff"
	case ".woff2":
		mime, format = "font/woff2", "woff2"
	default:
		mime, format = "font/otf", "opentype"
	}

	b64 := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf(`
    @font-face {
      font-family: "%s";
      src: url("data:%s;base64,%s") format("%s");
      font-weight: 400;
      font-style: normal;
    }
`, family, mime, b64, format), nil
}
