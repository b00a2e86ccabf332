package fileutil

import (
	"github.com/CSUNetSec/mrtrib/filter"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// filterFileDoc is the filter file's JSON shape: an object whose
// "filters" key holds an array of textual filter expressions, one per
// element, each parsed with filter.Parse. This replaces the teacher's
// structured FilterFile (separate MonitoredPrefixes/SourceASes/...
// fields mapped to constructor functions per category): that shape
// fit the teacher's category-specific Filter constructors
// (NewPrefixFilterFromSlice, NewASFilterFromSlice with a position
// enum); this module's Filter type is a single parseable expression
// language (C10) that already covers prefix/LPM/AS/community in one
// textual form, so a flat expression list is the natural on-disk
// shape for it.
type filterFileDoc struct {
	Filters []string `koanf:"filters"`
}

// NewFiltersFromFile loads a JSON filter file (e.g. {"filters":
// ["10.0.0.0/8", "65000"]}) via koanf's file provider and JSON parser,
// parsing each entry with filter.Parse.
func NewFiltersFromFile(path string) ([]filter.Filter, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, errors.Wrap(err, "load filter file")
	}

	var doc filterFileDoc
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshal filter file")
	}

	filters := make([]filter.Filter, 0, len(doc.Filters))
	for _, expr := range doc.Filters {
		f, err := filter.Parse(expr)
		if err != nil {
			return nil, errors.Wrapf(err, "filter file entry %q", expr)
		}
		filters = append(filters, f)
	}
	return filters, nil
}
