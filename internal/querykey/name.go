package querykey

import (
	"regexp"
	"strings"
)

// nameOverrides corrects display names the catalog lists under another name
var nameOverrides = map[string]string{
	"Blade Wave": "Blade Wave 2020: Inverted",
}

var (
	// applied in order
	nameReplacers = []*strings.Replacer{
		strings.NewReplacer("!", ""),                                          // "WWE SmackDown Live!"
		strings.NewReplacer(" - ", "_"),                                       // "Lunchbox - Esper"
		strings.NewReplacer(".", "_", "-", "_", "'", "_", "&", "_", "!", "_"), // "Y.O.U", "Tri-2050", "School'd", "Nuts & Bolts"
		strings.NewReplacer(": ", "/"),                                        // "Octane: Krush"
		strings.NewReplacer(" ", "_"),
	}

	underscoreRun = regexp.MustCompile(`_{2,}`)
)

// NormalizeName converts a display name to the catalog's path form.
//
// Runs of two or three underscores collapse to one ("Golden Moon '23",
// "Nuts & Bolts"). Longer runs are kept as is.
func NormalizeName(name string) string {
	if override, ok := nameOverrides[name]; ok {
		name = override
	}

	out := strings.ToLower(name)
	for _, r := range nameReplacers {
		out = r.Replace(out)
	}

	out = underscoreRun.ReplaceAllStringFunc(out, func(run string) string {
		if len(run) <= 3 {
			return "_"
		}
		return run
	})

	return strings.TrimRight(out, "_")
}
