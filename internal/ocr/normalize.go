package ocr

import (
	"regexp"
	"strings"
)

var (
	reDollarSpaced = regexp.MustCompile(`\$ *([0-9]+\. *[0-9]{2})`)
	reHashSpaced   = regexp.MustCompile(`# *([0-9]+\. *[0-9]{2})`)
	reSpacedPoint  = regexp.MustCompile(`([0-9]+)\s*\.\s*([0-9]{2})`)
	reWhitespace   = regexp.MustCompile(`\s+`)
)

// Normalize turns raw recognizer output into a canonical upper-cased line
// sequence. Per line it fixes comma/period confusion, collapses stray spaces
// inside currency amounts and spaced decimal points, and squeezes whitespace.
// Idempotent: feeding the joined result back in is a no-op. Malformed or
// empty input yields an empty sequence, never an error.
func Normalize(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []string
	for _, line := range strings.Split(strings.ToUpper(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// decimal-separator OCR confusion
		line = strings.ReplaceAll(line, ",", ".")
		// spaced decimal points first so "$ 12 . 34" collapses in one pass
		line = reSpacedPoint.ReplaceAllString(line, "$1.$2")
		line = reDollarSpaced.ReplaceAllStringFunc(line, func(m string) string {
			g := reDollarSpaced.FindStringSubmatch(m)[1]
			return "$" + strings.ReplaceAll(g, " ", "")
		})
		line = reHashSpaced.ReplaceAllStringFunc(line, func(m string) string {
			g := reHashSpaced.FindStringSubmatch(m)[1]
			return strings.ReplaceAll(g, " ", "")
		})
		line = reWhitespace.ReplaceAllString(line, " ")
		out = append(out, strings.TrimSpace(line))
	}
	return out
}

// Join restores a single newline-separated document from normalized lines.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}
