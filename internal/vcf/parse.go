package vcf

import "strings"

// Parse reads an unfolded vCard into property → value. The key keeps the
// parameters, e.g. "TEL;TYPE=CELL". Later duplicates overwrite earlier ones.
func Parse(text string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(text, crlf) {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out[key] = value
	}
	return out
}
