package render

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultKoreanFonts is the fallback font stack applied to every rendered
// document. It covers the common Korean system fonts on Windows, macOS and
// Linux before degrading to a generic sans-serif.
const DefaultKoreanFonts = "'Malgun Gothic', '맑은 고딕', " +
	"'Apple SD Gothic Neo', " +
	"'Noto Sans KR', " +
	"'NanumGothic', '나눔고딕', " +
	"'Dotum', '돋움', " +
	"'Gulim', '굴림', " +
	"sans-serif"

var fontFamilyPatterns = []*regexp.Regexp{
	// CSS block form: font-family: ...; or font-family: ...}
	regexp.MustCompile(`(?i)font-family\s*:\s*([^;}{]+)[;}]`),
	// Inline attribute form: font-family="..." or font-family='...'
	regexp.MustCompile(`(?i)font-family\s*=\s*['"]([^'"]+)['"]`),
}

// ExtractFontFamily pulls the first font-family declaration out of an HTML
// string, checking CSS-block syntax before the inline attribute form. Double
// quotes are normalized to single quotes. Returns "" when no declaration is
// present.
func ExtractFontFamily(markup string) string {
	for _, re := range fontFamilyPatterns {
		m := re.FindStringSubmatch(markup)
		if m == nil {
			continue
		}
		family := strings.TrimSpace(m[1])
		family = strings.TrimSpace(strings.ReplaceAll(family, `"`, "'"))
		if family != "" {
			return family
		}
	}
	return ""
}

// fontStack prepends an extracted family to the Korean fallback list, or
// returns the fallback list alone.
func fontStack(family string) string {
	if family == "" {
		return DefaultKoreanFonts
	}
	return family + ", " + DefaultKoreanFonts
}

// fontOverrideStyle builds the <style> block that forces the font stack onto
// every element, so glyph metrics are deterministic regardless of what the
// source markup declares.
func fontOverrideStyle(family string) string {
	css := "font-family: " + fontStack(family) + ";"
	return fmt.Sprintf(`<style>
    * { %s !important; }
    body { %s }
    table, th, td { %s }
  </style>`, css, css, css)
}

// WrapDocument embeds a table fragment in a minimal renderable document with
// a UTF-8 charset and the forced font stack. Markup that already is a full
// document (doctype or <html> prefix) is left intact except for the font
// style block, inserted before </head> when a head exists, otherwise inside
// a synthesized head before <body>.
func WrapDocument(markup, family string) string {
	override := fontOverrideStyle(family)

	if isFullDocument(markup) {
		return insertHeadStyle(markup, override)
	}

	return fmt.Sprintf(`<!doctype html>
<html lang="ko">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>table</title>
  %s
</head>
<body>
%s
</body>
</html>`, override, markup)
}

// WrapDocumentStyled is the row-split variant of WrapDocument: fragments get
// a basic table stylesheet (collapsed 1px borders, padded cells, shaded
// header) in addition to the font override, since split renders never go
// through the themed base-CSS path. Full documents are handled exactly as in
// WrapDocument.
func WrapDocumentStyled(markup, family string) string {
	override := fontOverrideStyle(family)

	if isFullDocument(markup) {
		return insertHeadStyle(markup, override)
	}

	fontCSS := "font-family: " + fontStack(family) + ";"
	return fmt.Sprintf(`<!doctype html>
<html lang="ko">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Table</title>
  <style>
    body {
      margin: 0;
      padding: 10px;
      background: white;
      %s
    }
    table {
      border-collapse: collapse;
      %s
      font-size: 12px;
    }
    th, td {
      border: 1px solid #333;
      padding: 6px 8px;
      vertical-align: middle;
    }
    th {
      background: #f5f5f5;
      font-weight: 600;
      text-align: center;
    }
  </style>
  %s
</head>
<body>
%s
</body>
</html>`, fontCSS, fontCSS, override, markup)
}

func isFullDocument(markup string) bool {
	stripped := strings.ToLower(strings.TrimSpace(markup))
	return strings.HasPrefix(stripped, "<!doctype") || strings.HasPrefix(stripped, "<html")
}

// insertHeadStyle places a style block before </head>, or wraps it in a
// synthesized head before <body> when the document has no head. Documents
// with neither are returned unchanged.
func insertHeadStyle(doc, style string) string {
	lower := strings.ToLower(doc)
	if i := strings.Index(lower, "</head>"); i >= 0 {
		return doc[:i] + style + doc[i:]
	}
	if i := strings.Index(lower, "<body"); i >= 0 {
		return doc[:i] + "<head>" + style + "</head>" + doc[i:]
	}
	return doc
}
