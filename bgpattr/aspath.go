package bgpattr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CSUNetSec/mrtrib/wire"
	"github.com/pkg/errors"
)

// AS_PATH segment type codes (RFC 4271 §4.3).
const (
	segTypeAsSet      = 1
	segTypeAsSequence = 2
)

// BadAsPathSegmentError reports an AS_PATH segment whose type code is
// neither AS_SET nor AS_SEQUENCE.
type BadAsPathSegmentError struct {
	Type byte
}

func (e *BadAsPathSegmentError) Error() string {
	return fmt.Sprintf("bad AS_PATH segment type %d", e.Type)
}

// AsPathSegment is one contiguous run of ASNs sharing an ordering
// discipline. Ordered denotes AS_SEQUENCE (type 2); unordered denotes
// AS_SET (type 1).
type AsPathSegment struct {
	Ordered bool
	Asns    []uint32
}

// AsPath is the ordered sequence of segments that make up one AS_PATH
// attribute value.
type AsPath struct {
	Segments []AsPathSegment
}

// String renders segments space-separated; an unordered segment's ASN
// list is bracketed in {…}, preserving wire order (no canonicalizing
// sort — SPEC_FULL.md §9 "AS_SET display").
func (p AsPath) String() string {
	parts := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		asns := make([]string, len(seg.Asns))
		for i, a := range seg.Asns {
			asns[i] = strconv.FormatUint(uint64(a), 10)
		}
		joined := strings.Join(asns, " ")
		if !seg.Ordered {
			joined = "{" + joined + "}"
		}
		parts = append(parts, joined)
	}
	return strings.Join(parts, " ")
}

// Contains reports whether asn appears in any segment.
func (p AsPath) Contains(asn uint32) bool {
	for _, seg := range p.Segments {
		for _, a := range seg.Asns {
			if a == asn {
				return true
			}
		}
	}
	return false
}

// ParseAsPath decodes the AS_PATH attribute payload: a sequence of
// (segment_type u8, segment_length u8, segment_length x u32-be ASNs)
// triples, bounded by the reader's remaining length. 4-octet ASNs are
// assumed unconditionally (post-RFC 6793); see SPEC_FULL.md §9 for the
// AS2-vs-AS4 open question this leaves undecided.
func ParseAsPath(r *wire.Reader) (AsPath, error) {
	var path AsPath
	for r.Len() > 0 {
		segType, err := r.ReadU8()
		if err != nil {
			return AsPath{}, err
		}
		if segType != segTypeAsSet && segType != segTypeAsSequence {
			return AsPath{}, &BadAsPathSegmentError{Type: segType}
		}
		segLen, err := r.ReadU8()
		if err != nil {
			return AsPath{}, err
		}
		asns := make([]uint32, segLen)
		for i := range asns {
			asns[i], err = r.ReadU32()
			if err != nil {
				return AsPath{}, errors.Wrap(err, "AS_PATH segment ASN")
			}
		}
		path.Segments = append(path.Segments, AsPathSegment{
			Ordered: segType == segTypeAsSequence,
			Asns:    asns,
		})
	}
	return path, nil
}
