// Package mrtfmt decodes the MRT TABLE_DUMP_V2 container: the Peer
// Index Table (C5), NLRI and RIB-entry records (C6), and the common
// framing loop that dispatches between them (C7). It also carries the
// data types those decoders produce (Peer, PeerIndexTable, RibEntry,
// Nlri), grounded on protocol/rib/rib.go and original_source/src/peer.rs
// and rib.rs.
package mrtfmt

import (
	"net/netip"
	"unicode/utf8"

	"github.com/CSUNetSec/mrtrib/wire"
	"github.com/pkg/errors"
)

// ErrBadString reports a Peer Index Table view name that is not valid
// UTF-8.
var ErrBadString = errors.New("bad string")

const (
	peerFlagIPv6   = 1 << 0
	peerFlagAs4    = 1 << 1
)

// Peer describes one entry of a PeerIndexTable.
type Peer struct {
	PeerID      netip.Addr // always IPv4 per RFC 6396
	PeerAddress netip.Addr
	PeerAS      uint32
	Is4ByteAsn  bool
	IsIPv6Addr  bool
}

// PeerIndexTable is the TABLE_DUMP_V2 preamble binding small per-file
// indices to peer descriptors.
type PeerIndexTable struct {
	CollectorID netip.Addr
	ViewName    string
	Peers       []*Peer
}

// ParsePeerIndexTable decodes one (13,1) PEER_INDEX_TABLE payload.
func ParsePeerIndexTable(buf []byte) (*PeerIndexTable, error) {
	r := wire.NewReader(buf)

	collectorBytes, err := r.ReadExact(4)
	if err != nil {
		return nil, errors.Wrap(err, "collector_id")
	}
	collector := addrFrom4(collectorBytes)

	viewNameLen, err := r.ReadU16()
	if err != nil {
		return nil, errors.Wrap(err, "view_name_len")
	}
	viewNameBytes, err := r.ReadExact(int(viewNameLen))
	if err != nil {
		return nil, errors.Wrap(err, "view_name")
	}
	if !utf8.Valid(viewNameBytes) {
		return nil, errors.Wrap(ErrBadString, "view_name is not valid UTF-8")
	}

	peerCount, err := r.ReadU16()
	if err != nil {
		return nil, errors.Wrap(err, "peer_count")
	}

	peers := make([]*Peer, 0, peerCount)
	for i := 0; i < int(peerCount); i++ {
		p, err := parsePeer(r)
		if err != nil {
			return nil, errors.Wrapf(err, "peer %d", i)
		}
		peers = append(peers, p)
	}

	return &PeerIndexTable{
		CollectorID: collector,
		ViewName:    string(viewNameBytes),
		Peers:       peers,
	}, nil
}

func parsePeer(r *wire.Reader) (*Peer, error) {
	flags, err := r.ReadU8()
	if err != nil {
		return nil, errors.Wrap(err, "peer_type")
	}
	is6 := flags&peerFlagIPv6 != 0
	isAs4 := flags&peerFlagAs4 != 0

	idBytes, err := r.ReadExact(4)
	if err != nil {
		return nil, errors.Wrap(err, "peer_id")
	}

	var peerAddr netip.Addr
	if is6 {
		b, err := r.ReadExact(16)
		if err != nil {
			return nil, errors.Wrap(err, "peer_address")
		}
		var a [16]byte
		copy(a[:], b)
		peerAddr = netip.AddrFrom16(a)
	} else {
		b, err := r.ReadExact(4)
		if err != nil {
			return nil, errors.Wrap(err, "peer_address")
		}
		peerAddr = addrFrom4(b)
	}

	var peerAs uint32
	if isAs4 {
		peerAs, err = r.ReadU32()
	} else {
		var v16 uint16
		v16, err = r.ReadU16()
		peerAs = uint32(v16)
	}
	if err != nil {
		return nil, errors.Wrap(err, "peer_as")
	}

	return &Peer{
		PeerID:      addrFrom4(idBytes),
		PeerAddress: peerAddr,
		PeerAS:      peerAs,
		Is4ByteAsn:  isAs4,
		IsIPv6Addr:  is6,
	}, nil
}

func addrFrom4(b []byte) netip.Addr {
	var a [4]byte
	copy(a[:], b)
	return netip.AddrFrom4(a)
}
