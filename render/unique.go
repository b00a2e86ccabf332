package render

import (
	"fmt"
	"sort"

	"github.com/armon/go-radix"

	"github.com/CSUNetSec/mrtrib/addr"
)

// bitKey renders a prefix as a string of '0'/'1' characters, one per
// masked bit, MSB first. Adapted from the teacher's util.IpToRadixkey,
// which built the same kind of key from a net.IP/mask pair for
// insertion into an armon/go-radix tree.
func bitKey(p addr.Prefix) string {
	var buf []byte
	if p.Addr.Is4() {
		b := p.Addr.As4()
		buf = b[:]
	} else {
		b := p.Addr.As16()
		buf = b[:]
	}
	var out []byte
	for i := 0; i < len(buf) && i*8 < int(p.Len); i++ {
		out = append(out, []byte(fmt.Sprintf("%08b", buf[i]))...)
	}
	if len(out) < int(p.Len) {
		return ""
	}
	return string(out[:p.Len])
}

// UniqueTopLevel collapses prefixes down to the shortest prefixes that
// are not themselves contained by a shorter prefix already kept, i.e.
// the "-u" summary mode's unique top-level routes. Ties among
// equal-length prefixes are all kept. Grounded on the teacher's
// util.IpToRadixkey idiom for building an armon/go-radix lookup key
// out of an address and mask length.
func UniqueTopLevel(prefixes []addr.Prefix) []addr.Prefix {
	sorted := make([]addr.Prefix, len(prefixes))
	copy(sorted, prefixes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Len < sorted[j].Len })

	tree := radix.New()
	var out []addr.Prefix
	for _, p := range sorted {
		bits := bitKey(p)
		if len(bits) != int(p.Len) {
			continue
		}
		// Tag the key with the address family so a v4 prefix never
		// covers a v6 one that shares its leading bits.
		key := "4" + bits
		if !p.Addr.Is4() {
			key = "6" + bits
		}
		if _, _, ok := tree.LongestPrefix(key); ok {
			continue
		}
		tree.Insert(key, p)
		out = append(out, p)
	}
	return out
}
