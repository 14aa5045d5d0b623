package slidefig

import (
	"strings"

	"github.com/tsawler/slidefig/engine"
)

// Warning is a non-fatal condition reported alongside an operation's result,
// for example a placement that landed more than 0.1 slide units away from
// where it was asked to go.
type Warning = engine.Warning

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "; ")
}
