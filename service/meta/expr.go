package meta

import (
	"os"
	"strings"
	"unicode"
)

// ExpandEnv replaces all occurrences of ${env.KEY} in the input with the
// value of the environment variable KEY (or "" if unset). Malformed
// expressions are kept literal.
func ExpandEnv(value string) string {
	const prefix = "${env."
	var b strings.Builder
	for {
		idx := strings.Index(value, prefix)
		if idx < 0 {
			b.WriteString(value)
			break
		}
		b.WriteString(value[:idx])
		rest := value[idx+len(prefix):]

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			// no closing brace, the remainder is literal
			b.WriteString(value[idx:])
			break
		}
		key := rest[:end]
		if !isEnvKey(key) {
			// keep the prefix literal and rescan what follows it
			b.WriteString(prefix)
			value = rest
			continue
		}
		b.WriteString(os.Getenv(key))
		value = rest[end+1:]
	}
	return b.String()
}

// isEnvKey accepts letters, digits and '_' (an empty key expands to "").
func isEnvKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
