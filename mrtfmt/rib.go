package mrtfmt

import (
	"time"

	"github.com/CSUNetSec/mrtrib/addr"
	"github.com/CSUNetSec/mrtrib/bgpattr"
	"github.com/CSUNetSec/mrtrib/wire"
	"github.com/pkg/errors"
)

// RibEntry is one per-peer path for an Nlri. Peer is a direct pointer
// into the PeerIndexTable active when the entry was decoded — it is
// copied at decode time (not looked up lazily by index) so the entry
// remains self-contained once that table is superseded by the next
// file's table (SPEC_FULL.md §3, resolving the open question in
// spec.md §9 "Peer references from RibEntry").
type RibEntry struct {
	Peer       *Peer
	OriginTime time.Time
	Attributes []bgpattr.PathAttribute
}

// AsPath returns the entry's AS_PATH attribute, if present.
func (e *RibEntry) AsPath() (bgpattr.AsPath, bool) {
	for _, a := range e.Attributes {
		if a.Kind == bgpattr.KindAsPath {
			return a.AsPath, true
		}
	}
	return bgpattr.AsPath{}, false
}

// Communities returns the communities of the entry's COMMUNITY and
// LARGE_COMMUNITY attributes combined, in attribute order, if either
// is present.
func (e *RibEntry) Communities() ([]bgpattr.Community, bool) {
	var out []bgpattr.Community
	found := false
	for _, a := range e.Attributes {
		if a.Kind == bgpattr.KindCommunity {
			out = append(out, a.Community...)
			found = true
		}
	}
	return out, found
}

// AsPathContains reports whether asn appears anywhere in the entry's
// AS_PATH.
func (e *RibEntry) AsPathContains(asn uint32) bool {
	path, ok := e.AsPath()
	return ok && path.Contains(asn)
}

// CommunityContains reports whether c appears in the entry's
// COMMUNITY list.
func (e *RibEntry) CommunityContains(c bgpattr.Community) bool {
	cs, ok := e.Communities()
	if !ok {
		return false
	}
	for _, x := range cs {
		if x.Equal(c) {
			return true
		}
	}
	return false
}

// Nlri is one prefix record: the decoded prefix plus the vector of
// per-peer paths attached to it.
type Nlri struct {
	Sequence   uint32
	Prefix     addr.Prefix
	RibEntries []RibEntry
}

// maxOriginTime is the latest instant representable by the wire's
// unsigned 32-bit seconds-since-epoch field. Go's time.Time has no
// practical range limit at this scale, so the "clamp at 2106+" rule
// from SPEC_FULL.md §4.6 can never actually fire for a value that
// fits in a uint32 — it is a property of the wire format, not
// something this decoder needs to special-case.
const maxOriginTime = uint32(0xFFFFFFFF)

func originTimeFromEpochSeconds(sec uint32) time.Time {
	// sec can never exceed maxOriginTime (it's the same uint32), so
	// this is always within time.Time's range; no clamp is needed.
	_ = sec <= maxOriginTime
	return time.Unix(int64(sec), 0).UTC()
}

// ParseRib decodes one RIB_IPV4_UNICAST or RIB_IPV6_UNICAST payload
// into an Nlri. v6 selects the 16-byte (vs 4-byte) prefix material
// width. peers resolves each entry's peer_index against the
// PeerIndexTable currently in scope (C7 supplies it).
func ParseRib(buf []byte, v6 bool, peers []*Peer) (*Nlri, error) {
	r := wire.NewReader(buf)

	sequence, err := r.ReadU32()
	if err != nil {
		return nil, errors.Wrap(err, "sequence")
	}

	plen, err := r.ReadU8()
	if err != nil {
		return nil, errors.Wrap(err, "prefix length")
	}

	width := 4
	if v6 {
		width = 16
	}
	nbytes := (int(plen) + 7) / 8
	if nbytes > width {
		return nil, errors.Errorf("prefix length %d exceeds address width", plen)
	}
	prefBytes, err := r.ReadExact(nbytes)
	if err != nil {
		return nil, errors.Wrap(err, "prefix material")
	}
	padded := make([]byte, width)
	copy(padded, prefBytes)
	if nbytes > 0 {
		maskTrailingBits(padded, int(plen))
	}
	prefixAddr := addr.FromBytesPadded(padded, v6)

	entryCount, err := r.ReadU16()
	if err != nil {
		return nil, errors.Wrap(err, "entry_count")
	}

	entries := make([]RibEntry, 0, entryCount)
	for i := 0; i < int(entryCount); i++ {
		e, err := parseRibEntryWithPeers(r, peers)
		if err != nil {
			return nil, errors.Wrapf(err, "rib entry %d", i)
		}
		entries = append(entries, e)
	}

	return &Nlri{
		Sequence:   sequence,
		Prefix:     addr.Prefix{Addr: prefixAddr, Len: plen},
		RibEntries: entries,
	}, nil
}

// maskTrailingBits clears the bits of buf past bit index plen within
// its last meaningful byte, so a non-byte-aligned prefix length
// (e.g. /20) doesn't leave garbage bits from a partially-filled last
// byte. Grounded on protocol/rib/rib.go's identical last-byte masking.
func maskTrailingBits(buf []byte, plen int) {
	lastByte := (plen - 1) / 8
	rem := plen % 8
	if rem == 0 {
		return
	}
	buf[lastByte] &= ^byte(0xFF >> rem)
}

// parseRibEntryWithPeers decodes one RIB entry: peer_index (u16),
// origin_time (u32 seconds), attr_len (u16), followed by exactly
// attr_len bytes of path attributes.
func parseRibEntryWithPeers(r *wire.Reader, peers []*Peer) (RibEntry, error) {
	peerIndex, err := r.ReadU16()
	if err != nil {
		return RibEntry{}, errors.Wrap(err, "peer_index")
	}
	originSec, err := r.ReadU32()
	if err != nil {
		return RibEntry{}, errors.Wrap(err, "origin_time")
	}
	attrLen, err := r.ReadU16()
	if err != nil {
		return RibEntry{}, errors.Wrap(err, "attr_len")
	}
	attrBuf, err := r.ReadExact(int(attrLen))
	if err != nil {
		return RibEntry{}, errors.Wrap(err, "attributes")
	}
	attrs, err := bgpattr.ParseAttributes(attrBuf)
	if err != nil {
		return RibEntry{}, err
	}

	if int(peerIndex) >= len(peers) {
		return RibEntry{}, errors.Errorf("peer_index %d out of range (table has %d peers)", peerIndex, len(peers))
	}

	return RibEntry{
		Peer:       peers[peerIndex],
		OriginTime: originTimeFromEpochSeconds(originSec),
		Attributes: attrs,
	}, nil
}
