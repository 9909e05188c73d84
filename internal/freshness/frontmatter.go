package freshness

import "strings"

// frontMatterDelimiter opens and closes the header block.
const frontMatterDelimiter = "---"

// ExtractFrontMatter parses the restricted key-value header block at the
// start of text. It returns false when the first line is not the `---`
// delimiter. Parsing stops at the first closing `---`; a missing closer is
// not an error, whatever was parsed up to the end of text is returned.
//
// Each line is split on every colon: element 0 becomes the key, element 1
// the value, and anything after a second colon is discarded. Lines that do
// not produce both a key and a value are silently skipped.
func ExtractFrontMatter(text string) (map[string]string, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != frontMatterDelimiter {
		return nil, false
	}

	fm := make(map[string]string)
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == frontMatterDelimiter {
			break
		}

		parts := strings.Split(line, ":")
		if len(parts) < 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}

		fm[key] = value
	}

	return fm, true
}
