// Package load implements the C11 load pipeline: for each decoded
// Nlri, fold the active filters left-to-right with short-circuit
// conjunction, and insert the surviving entries into the routing
// table if the fold is permissive. Grounded on
// original_source/src/main.rs's load_nlri and the teacher's
// cmd/gobgpdump/gobgpdump.go dumpFile per-file loop shape.
package load

import (
	"go.uber.org/zap"

	"github.com/CSUNetSec/mrtrib/fileutil"
	"github.com/CSUNetSec/mrtrib/filter"
	"github.com/CSUNetSec/mrtrib/ribtable"
	"github.com/pkg/errors"
)

// Stats summarizes one file's load pass.
type Stats struct {
	RecordsSeen    int
	RecordsSkipped int
	NlriLoaded     int
	NlriFiltered   int

	// ErrorOffset is the byte offset within the file at which a fatal
	// (non-EOF) error occurred, valid only when File returns a non-nil
	// error (SPEC_FULL.md §4.7/§7).
	ErrorOffset int64
}

// File loads one MRT dump file (plain or .bz2) into rt, evaluating
// filters against every decoded Nlri. A non-EOF error aborts the
// remaining records of this file but is not fatal to the process —
// the caller decides whether to continue with other files, per
// SPEC_FULL.md §7's propagation policy.
func File(path string, rt *ribtable.RoutingTable, filters []filter.Filter, log *zap.SugaredLogger) (Stats, error) {
	r, err := fileutil.NewMrtFileReader(path)
	if err != nil {
		return Stats{}, err
	}
	defer r.Close()

	var stats Stats
	for r.Scan() {
		rec := r.Record()
		stats.RecordsSeen++

		if rec.Skipped {
			stats.RecordsSkipped++
			continue
		}
		if rec.Nlri == nil {
			// a PeerIndexTable record: nothing to load
			continue
		}

		if filter.EvalAll(filters, rec.Nlri) {
			rt.Add(rec.Nlri.Prefix, rec.Nlri.RibEntries)
			stats.NlriLoaded++
		} else {
			stats.NlriFiltered++
		}
	}

	if err := r.Err(); err != nil {
		stats.ErrorOffset = r.Offset()
		if log != nil {
			log.Warnw("load aborted", "file", path, "offset", stats.ErrorOffset, "error", err)
		}
		return stats, errors.Wrapf(err, "%s: at offset %d", path, stats.ErrorOffset)
	}
	return stats, nil
}
