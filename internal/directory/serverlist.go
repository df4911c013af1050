// Package directory resolves the set of known Pact backends and
// discovers the modules each one exposes.
package directory

import (
	"strings"
)

// ParseServerList parses a newline-separated server list in the form
// "name: uri". The first colon separates name from uri; whitespace
// around both sides is trimmed. Blank lines and #-comments are skipped,
// as are malformed lines.
//
// The returned order preserves first appearance; a repeated name keeps
// its position and takes the later uri.
func ParseServerList(text string) (map[string]string, []string) {
	backends := make(map[string]string)
	var order []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, uri, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		uri = strings.TrimSpace(uri)
		if name == "" || uri == "" {
			continue
		}
		if _, seen := backends[name]; !seen {
			order = append(order, name)
		}
		backends[name] = uri
	}
	return backends, order
}
