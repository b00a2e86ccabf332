package bgpattr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CommunityKind distinguishes the two community shapes in the data
// model. The wire decoder (C3) produces Standard from type code 8
// (COMMUNITY) and Large from type code 32 (LARGE_COMMUNITY), whose
// length rule (multiple of 12) is no harder to validate than
// COMMUNITY's (see SPEC_FULL.md §9).
type CommunityKind int

const (
	CommunityStandard CommunityKind = iota
	CommunityLarge
)

// Community is a tagged union over Standard(u16,u16) and
// Large(u32,u32,u32).
type Community struct {
	Kind     CommunityKind
	Standard [2]uint16
	Large    [3]uint32
}

func (c Community) String() string {
	if c.Kind == CommunityLarge {
		return fmt.Sprintf("%d:%d:%d", c.Large[0], c.Large[1], c.Large[2])
	}
	return fmt.Sprintf("%d:%d", c.Standard[0], c.Standard[1])
}

// Equal reports whether two communities denote the same value.
func (c Community) Equal(o Community) bool {
	if c.Kind != o.Kind {
		return false
	}
	if c.Kind == CommunityLarge {
		return c.Large == o.Large
	}
	return c.Standard == o.Standard
}

// ParseCommunity parses the textual filter syntax "A:B" (Standard) or
// "A:B:C" (Large), per C10's parse order.
func ParseCommunity(s string) (Community, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		a, err1 := strconv.ParseUint(parts[0], 10, 16)
		b, err2 := strconv.ParseUint(parts[1], 10, 16)
		if err1 != nil || err2 != nil {
			return Community{}, errors.Wrapf(ErrBadSyntax, "bad standard community %q", s)
		}
		return Community{Kind: CommunityStandard, Standard: [2]uint16{uint16(a), uint16(b)}}, nil
	case 3:
		a, err1 := strconv.ParseUint(parts[0], 10, 32)
		b, err2 := strconv.ParseUint(parts[1], 10, 32)
		c, err3 := strconv.ParseUint(parts[2], 10, 32)
		if err1 != nil || err2 != nil || err3 != nil {
			return Community{}, errors.Wrapf(ErrBadSyntax, "bad large community %q", s)
		}
		return Community{Kind: CommunityLarge, Large: [3]uint32{uint32(a), uint32(b), uint32(c)}}, nil
	default:
		return Community{}, errors.Wrapf(ErrBadSyntax, "bad community %q", s)
	}
}

// ErrBadSyntax mirrors addr.ErrBadSyntax for this package's own
// textual parsers, kept local to avoid an import cycle with addr.
var ErrBadSyntax = errors.New("bad syntax")
