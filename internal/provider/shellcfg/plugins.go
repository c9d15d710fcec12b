package shellcfg

import (
	"fmt"
	"regexp"
	"strings"
)

// pluginsLineRe matches the plugins=(...) line in an oh-my-zsh rc file.
var pluginsLineRe = regexp.MustCompile(`(?m)^plugins=\(([^)]*)\)\s*$`)

// containsPlugin reports whether the plugins=(...) line lists the plugin.
func containsPlugin(content, plugin string) bool {
	matches := pluginsLineRe.FindStringSubmatch(content)
	if len(matches) < 2 {
		return false
	}

	for _, p := range strings.Fields(matches[1]) {
		if p == plugin {
			return true
		}
	}
	return false
}

// addPlugin adds a plugin to the plugins=(...) line, preserving the entries
// already there. If no plugins line exists, one is appended.
func addPlugin(content, plugin string) string {
	if containsPlugin(content, plugin) {
		return content
	}

	if pluginsLineRe.MatchString(content) {
		return pluginsLineRe.ReplaceAllStringFunc(content, func(match string) string {
			sub := pluginsLineRe.FindStringSubmatch(match)
			if len(sub) < 2 {
				return match
			}
			existing := strings.TrimSpace(sub[1])
			if existing == "" {
				return fmt.Sprintf("plugins=(%s)", plugin)
			}
			return fmt.Sprintf("plugins=(%s %s)", existing, plugin)
		})
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + fmt.Sprintf("plugins=(%s)\n", plugin)
}
