// Package prune implements the retention model: archives are grouped by
// base name, and within each group the newest N archives are kept per
// time granularity (one archive per second/minute/hour/day/week/month/year
// bucket). Everything not kept by any spec is a deletion candidate.
package prune

import (
	"fmt"
	"slices"
	"time"
)

// Archive is a single tarsnap archive as reported by `--list-archives -v`.
type Archive struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// Granularity identifies a time-bucket resolution for retention.
type Granularity string

const (
	BySecond Granularity = "s"
	ByMinute Granularity = "min"
	ByHour   Granularity = "h"
	ByDay    Granularity = "d"
	ByWeek   Granularity = "w"
	ByMonth  Granularity = "mon"
	ByYear   Granularity = "y"
)

// bucketLayouts maps each granularity to the time layout whose formatted
// value identifies its bucket. ByWeek is absent: ISO week numbering cannot
// be expressed as a format layout and is handled in BucketKey.
var bucketLayouts = map[Granularity]string{
	BySecond: "2006-01-02 15:04:05",
	ByMinute: "2006-01-02 15:04",
	ByHour:   "2006-01-02 15",
	ByDay:    "2006-01-02",
	ByMonth:  "2006-01",
	ByYear:   "2006",
}

// BucketKey returns the bucket identifier for t at granularity g.
// Two timestamps share a bucket iff their keys are equal.
func (g Granularity) BucketKey(t time.Time) string {
	if g == ByWeek {
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-%02d", year, week)
	}
	return t.Format(bucketLayouts[g])
}

// KeepSpec requests keeping the newest Count archives at Granularity
// resolution, at most one per bucket.
type KeepSpec struct {
	Granularity Granularity `json:"granularity"`
	Count       int         `json:"count"`
}

func (ks KeepSpec) String() string {
	return fmt.Sprintf("%d%s", ks.Count, ks.Granularity)
}

// NamesToKeep returns the names selected by spec: walking arcs newest-first,
// the first archive of each new bucket is kept until Count names are chosen.
//
// Precondition: arcs is sorted in descending timestamp order.
func NamesToKeep(arcs []Archive, spec KeepSpec) []string {
	var names []string
	var prevKey string
	first := true
	for _, arc := range arcs {
		if len(names) == spec.Count {
			break
		}
		key := spec.Granularity.BucketKey(arc.Timestamp)
		if first || key != prevKey {
			names = append(names, arc.Name)
			prevKey = key
			first = false
		}
	}
	return names
}

// NamesToDelete returns the names of arcs not kept by any spec, in
// descending timestamp order. With no specs, every name is returned.
func NamesToDelete(arcs []Archive, specs []KeepSpec) []string {
	sorted := slices.Clone(arcs)
	slices.SortStableFunc(sorted, func(a, b Archive) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	keep := make(map[string]struct{})
	for _, spec := range specs {
		for _, name := range NamesToKeep(sorted, spec) {
			keep[name] = struct{}{}
		}
	}

	var names []string
	for _, arc := range sorted {
		if _, ok := keep[arc.Name]; !ok {
			names = append(names, arc.Name)
		}
	}
	return names
}
