// Package ribtable implements the routing-table facade (C9): a pair
// of independent binary radix tries, one for IPv4 one for IPv6,
// exposed behind a single address-agnostic API. Grounded on
// original_source/src/routing_table.rs's RoutingTable<T>.
package ribtable

import (
	"net/netip"

	"github.com/CSUNetSec/mrtrib/addr"
	"github.com/CSUNetSec/mrtrib/mrtfmt"
	"github.com/CSUNetSec/mrtrib/trie"
)

// RoutingTable unions a v4 and a v6 trie of mrtfmt.RibEntry values
// behind one query surface.
type RoutingTable struct {
	v4 *trie.Trie[mrtfmt.RibEntry]
	v6 *trie.Trie[mrtfmt.RibEntry]

	// inserted records every prefix ever passed to Add, in insertion
	// order, repeats included. It exists purely to feed the CLI's "-u" unique
	// top-level prefix summary (render.UniqueTopLevel); the trie
	// itself is not walked for that since it stores values, not a
	// prefix-enumerable index.
	inserted []addr.Prefix
}

// New creates an empty routing table.
func New() *RoutingTable {
	return &RoutingTable{
		v4: trie.New[mrtfmt.RibEntry](32),
		v6: trie.New[mrtfmt.RibEntry](128),
	}
}

// Add inserts entries at the given prefix. The facade does not itself
// enforce prefix.Addr == addr.Mask(prefix.Addr, prefix.Len) — C6
// always supplies canonical prefixes (SPEC_FULL.md §4.9).
func (rt *RoutingTable) Add(prefix addr.Prefix, entries []mrtfmt.RibEntry) {
	key := addr.NewTrieKey(prefix.Addr)
	if prefix.Addr.Is4() {
		rt.v4.Add(key, int(prefix.Len), entries)
	} else {
		rt.v6.Add(key, int(prefix.Len), entries)
	}
	rt.inserted = append(rt.inserted, prefix)
}

// Prefixes returns every prefix inserted so far, in insertion order.
func (rt *RoutingTable) Prefixes() []addr.Prefix {
	return rt.inserted
}

// LookupResult is the outcome of a successful Get.
type LookupResult struct {
	Prefix  addr.Prefix
	Entries []mrtfmt.RibEntry
}

// Get performs a longest-prefix-match lookup for ip, dispatching to
// the v4 or v6 trie by the variant of ip.
func (rt *RoutingTable) Get(ip netip.Addr) (LookupResult, bool) {
	key := addr.NewTrieKey(ip)
	t := rt.v4
	width := 32
	if !ip.Is4() {
		t = rt.v6
		width = 128
	}
	res, ok := t.Get(key, width)
	if !ok {
		return LookupResult{}, false
	}
	matched := addr.Mask(ip, uint8(res.Depth))
	return LookupResult{
		Prefix:  addr.Prefix{Addr: matched, Len: uint8(res.Depth)},
		Entries: res.Value,
	}, true
}
