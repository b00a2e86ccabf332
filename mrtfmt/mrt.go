package mrtfmt

import (
	"encoding/binary"
	"fmt"

	"github.com/CSUNetSec/mrtrib/wire"
	"github.com/pkg/errors"
)

const (
	commonHeaderLen = 12

	mrtTypeTableDumpV2 = 13

	subtypePeerIndexTable   = 1
	subtypeRibIPv4Unicast   = 2
	subtypeRibIPv6Unicast   = 4
)

// SplitMrt is a bufio.Scanner split function that frames one MRT
// common-header-plus-payload record per token. Adapted from
// protocol/mrt/mrt.go's SplitMrt (same 12-byte-header / declared-
// length accounting), generalized from that file's BGP4MP-specific
// comment to TABLE_DUMP_V2 framing, which uses an identical common
// header.
func SplitMrt(data []byte, atEOF bool) (advance int, token []byte, err error) {
	dataLen := len(data)
	if atEOF && dataLen == 0 {
		return 0, nil, nil
	}
	if dataLen < commonHeaderLen {
		if atEOF {
			return 0, nil, errors.Wrap(wire.ErrTruncated, "MRT common header")
		}
		return 0, nil, nil
	}
	totalLen := int(binary.BigEndian.Uint32(data[8:12])) + commonHeaderLen
	if dataLen < totalLen {
		if atEOF {
			return 0, nil, errors.Wrap(wire.ErrTruncated, "MRT record payload")
		}
		return 0, nil, nil
	}
	return totalLen, data[:totalLen], nil
}

// Record is one decoded MRT TABLE_DUMP_V2 record: either a new
// PeerIndexTable or an Nlri belonging to the table most recently
// seen in this stream.
type Record struct {
	Timestamp uint32
	Type      uint16
	Subtype   uint16

	PeerIndexTable *PeerIndexTable // non-nil for (13,1)
	Nlri           *Nlri           // non-nil for (13,2)/(13,4)
	Skipped        bool            // true for any other (type, subtype)
}

// ParseRecord decodes one full MRT record (header already framed by
// SplitMrt) given the PeerIndexTable currently in scope — callers
// must track this across calls and update it whenever Record.PeerIndexTable
// is non-nil, per SPEC_FULL.md §5's per-file scoping rule.
func ParseRecord(data []byte, activePeers []*Peer) (*Record, error) {
	r := wire.NewReader(data)
	ts, err := r.ReadU32()
	if err != nil {
		return nil, errors.Wrap(err, "mrt timestamp")
	}
	typ, err := r.ReadU16()
	if err != nil {
		return nil, errors.Wrap(err, "mrt type")
	}
	subtype, err := r.ReadU16()
	if err != nil {
		return nil, errors.Wrap(err, "mrt subtype")
	}
	length, err := r.ReadU32()
	if err != nil {
		return nil, errors.Wrap(err, "mrt length")
	}
	payload, err := r.ReadExact(int(length))
	if err != nil {
		return nil, errors.Wrap(err, "mrt payload")
	}

	rec := &Record{Timestamp: ts, Type: typ, Subtype: subtype}

	if typ != mrtTypeTableDumpV2 {
		rec.Skipped = true
		return rec, nil
	}

	switch subtype {
	case subtypePeerIndexTable:
		pit, err := ParsePeerIndexTable(payload)
		if err != nil {
			return nil, errors.Wrap(err, "peer index table")
		}
		rec.PeerIndexTable = pit
	case subtypeRibIPv4Unicast:
		nlri, err := ParseRib(payload, false, activePeers)
		if err != nil {
			return nil, errors.Wrap(err, "rib ipv4 unicast")
		}
		rec.Nlri = nlri
	case subtypeRibIPv6Unicast:
		nlri, err := ParseRib(payload, true, activePeers)
		if err != nil {
			return nil, errors.Wrap(err, "rib ipv6 unicast")
		}
		rec.Nlri = nlri
	default:
		rec.Skipped = true
	}

	return rec, nil
}

func (r *Record) String() string {
	return fmt.Sprintf("type=%d subtype=%d ts=%d", r.Type, r.Subtype, r.Timestamp)
}
