// Package filter implements the C10 textual filter mini-language and
// evaluator. Unlike the teacher's predicate-only filter packages
// (filter/mrtFilter.go, cmd/gobgpdump/filter.go, which close over an
// immutable *mrt.MrtBufferStack), a Filter here can mutate the Nlri it
// evaluates — As and Community filters retain only the matching
// per-peer entries, per original_source/src/filter.rs's eval.
package filter

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/CSUNetSec/mrtrib/addr"
	"github.com/CSUNetSec/mrtrib/bgpattr"
	"github.com/CSUNetSec/mrtrib/mrtfmt"
	"github.com/pkg/errors"
)

// ErrBadFilter is returned when a textual filter expression matches
// none of the four accepted shapes.
var ErrBadFilter = errors.New("bad filter")

// Filter evaluates against (and may mutate) an Nlri.
type Filter interface {
	Eval(n *mrtfmt.Nlri) bool
}

// PrefixFilter matches an Nlri whose prefix is equally or more
// specific than Prefix. Non-mutating.
type PrefixFilter struct {
	Prefix addr.Prefix
}

func (f PrefixFilter) Eval(n *mrtfmt.Nlri) bool {
	if n.Prefix.Len < f.Prefix.Len {
		return false
	}
	return addr.Mask(n.Prefix.Addr, f.Prefix.Len) == f.Prefix.Addr
}

// LpmFilter matches an Nlri whose prefix covers Addr; every covering
// prefix matches, not only the longest one. Non-mutating.
type LpmFilter struct {
	Addr netip.Addr
}

func (f LpmFilter) Eval(n *mrtfmt.Nlri) bool {
	return addr.Mask(f.Addr, n.Prefix.Len) == n.Prefix.Addr
}

// AsFilter retains only rib entries whose AS_PATH contains Asn,
// mutating n.RibEntries. Returns true iff at least one entry
// survives.
type AsFilter struct {
	Asn uint32
}

func (f AsFilter) Eval(n *mrtfmt.Nlri) bool {
	kept := n.RibEntries[:0]
	for _, e := range n.RibEntries {
		if e.AsPathContains(f.Asn) {
			kept = append(kept, e)
		}
	}
	n.RibEntries = kept
	return len(kept) > 0
}

// CommunityFilter retains only rib entries whose community list
// contains Community, mutating n.RibEntries.
type CommunityFilter struct {
	Community bgpattr.Community
}

func (f CommunityFilter) Eval(n *mrtfmt.Nlri) bool {
	kept := n.RibEntries[:0]
	for _, e := range n.RibEntries {
		if e.CommunityContains(f.Community) {
			kept = append(kept, e)
		}
	}
	n.RibEntries = kept
	return len(kept) > 0
}

// Parse tries, in order: A.B.C.D/len -> Prefix; bare IP literal ->
// Lpm; decimal u32 -> As; A:B (or A:B:C) -> Community. The first
// alternative that parses wins.
func Parse(s string) (Filter, error) {
	if strings.Contains(s, "/") {
		p, err := addr.ParsePrefix(s)
		if err == nil {
			return PrefixFilter{Prefix: p}, nil
		}
	}

	// A bare IP literal is address-family-agnostic: try it before ever
	// looking at colons, so IPv6 literals (which contain ':') are not
	// shunted into the community branch below.
	if a, err := addr.ParseAddr(s); err == nil {
		return LpmFilter{Addr: a}, nil
	}

	if !strings.Contains(s, ":") {
		if n, err := strconv.ParseUint(s, 10, 32); err == nil {
			return AsFilter{Asn: uint32(n)}, nil
		}
	} else {
		if c, err := bgpattr.ParseCommunity(s); err == nil {
			return CommunityFilter{Community: c}, nil
		}
	}

	return nil, errors.Wrapf(ErrBadFilter, "cannot parse %q", s)
}

// EvalAll folds filters left-to-right with short-circuit conjunction:
// once a filter returns false, later filters are not evaluated. This
// is load-bearing because As/Community filters mutate n as they go
// (SPEC_FULL.md §4.11).
func EvalAll(filters []Filter, n *mrtfmt.Nlri) bool {
	for _, f := range filters {
		if !f.Eval(n) {
			return false
		}
	}
	return true
}
