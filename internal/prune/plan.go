package prune

import (
	"fmt"
	"io"
	"slices"
)

// Plan is the computed outcome of applying keep specs to a full archive
// listing: which archives go, which stay.
type Plan struct {
	// Delete holds deletion candidates, newest-first within each group,
	// groups in base-name order.
	Delete []string
	// Remaining holds the names kept by at least one spec, sorted.
	Remaining []string

	deleteSet map[string]struct{}
}

// BuildPlan computes the deletion plan across all base-name groups. Each
// group is pruned independently against the same specs.
func BuildPlan(groups map[string][]Archive, specs []KeepSpec) Plan {
	plan := Plan{deleteSet: make(map[string]struct{})}

	for _, base := range sortedKeys(groups) {
		for _, name := range NamesToDelete(groups[base], specs) {
			plan.Delete = append(plan.Delete, name)
			plan.deleteSet[name] = struct{}{}
		}
	}

	for _, arcs := range groups {
		for _, arc := range arcs {
			if !plan.Marked(arc.Name) {
				plan.Remaining = append(plan.Remaining, arc.Name)
			}
		}
	}
	slices.Sort(plan.Remaining)

	return plan
}

// Marked reports whether name is scheduled for deletion.
func (p Plan) Marked(name string) bool {
	_, ok := p.deleteSet[name]
	return ok
}

// WriteReport writes the human-readable plan summary. dryRun switches the
// leading verb between "Would" and "Will".
func (p Plan) WriteReport(w io.Writer, dryRun bool) {
	verb := "Will"
	if dryRun {
		verb = "Would"
	}
	fmt.Fprintf(w, "%s delete the following %d archive%s:\n",
		verb, len(p.Delete), pluralS(len(p.Delete)))
	writeNames(w, p.Delete)
	fmt.Fprintf(w, "Leaving the following %d remaining archive%s:\n",
		len(p.Remaining), pluralS(len(p.Remaining)))
	writeNames(w, p.Remaining)
}

func writeNames(w io.Writer, names []string) {
	for _, name := range sortedNames(names) {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

func sortedNames(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return out
}

func sortedKeys(groups map[string][]Archive) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
