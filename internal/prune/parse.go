package prune

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/c4rlo/tarsnap-prune/pkg/errs"
)

// listingTimeLayout is the timestamp format of `tarsnap --list-archives -v`
// output (with TZ=UTC in the environment).
const listingTimeLayout = "2006-01-02 15:04:05"

var (
	keepSpecRE = regexp.MustCompile(`^(\d+)(s|min|h|d|w|mon|y)$`)

	// baseNameRE strips an optional trailing run of digits and dashes,
	// e.g. "home-2020-01-02-0304" → "home".
	baseNameRE = regexp.MustCompile(`^(.*?)(?:-[0-9-]*)?$`)
)

// ParseKeepSpecs parses a comma-separated retention spec such as
// "2d,5w,4mon". Every atom must be <count><granularity>; an empty string
// is not a valid spec.
func ParseKeepSpecs(spec string) ([]KeepSpec, error) {
	var specs []KeepSpec
	for _, atom := range strings.Split(spec, ",") {
		m := keepSpecRE.FindStringSubmatch(atom)
		if m == nil {
			return nil, errs.Newf(errs.ErrKeepSpec, "prune.parsekeepspecs",
				"invalid keep spec: %q", atom).
				WithResource(atom).
				WithAdvice("use <count><unit> atoms, e.g. 7d,4w,12mon (units: s min h d w mon y)")
		}
		count, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, errs.Wrap(err, errs.ErrKeepSpec, "prune.parsekeepspecs").WithResource(atom)
		}
		specs = append(specs, KeepSpec{Granularity: Granularity(m[2]), Count: count})
	}
	return specs, nil
}

// BaseName returns the archive group name: the archive name with any
// trailing numeric suffix ("-2020-01-02...") removed.
func BaseName(name string) string {
	return baseNameRE.FindStringSubmatch(name)[1]
}

// ParseListing parses the verbose archive listing (one "name<TAB>timestamp"
// line per archive) into archives grouped by base name. Any malformed line
// aborts the parse.
func ParseListing(listing string) (map[string][]Archive, error) {
	groups := make(map[string][]Archive)

	lines := strings.Split(listing, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for _, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, errs.Newf(errs.ErrListingParse, "prune.parselisting",
				"failed to parse line %q", line).WithResource(line)
		}
		name, tsStr := fields[0], fields[1]
		ts, err := time.Parse(listingTimeLayout, tsStr)
		if err != nil {
			return nil, errs.Wrap(err, errs.ErrListingParse, "prune.parselisting").
				WithResource(line)
		}
		base := BaseName(name)
		groups[base] = append(groups[base], Archive{Name: name, Timestamp: ts})
	}
	return groups, nil
}
