package bgpattr

import (
	"fmt"
	"net/netip"

	"github.com/CSUNetSec/mrtrib/wire"
	"github.com/pkg/errors"
)

// Attribute type codes (RFC 4271 §4.3, plus RFC 8092 LARGE_COMMUNITY).
const (
	TypeOrigin          = 1
	TypeAsPath          = 2
	TypeNextHop         = 3
	TypeMultiExitDisc   = 4
	TypeLocalPref       = 5
	TypeAtomicAggregate = 6
	TypeCommunity       = 8
	TypeLargeCommunity  = 32
)

const extendedLengthBit = 0x10

// AttrKind tags the recognised PathAttribute variants.
type AttrKind int

const (
	KindOrigin AttrKind = iota
	KindAsPath
	KindNextHop
	KindMultiExitDisc
	KindLocalPref
	KindAtomicAggregate
	KindCommunity
)

// PathAttribute is a tagged union over the recognised attribute
// variants. Only the field matching Kind is meaningful.
type PathAttribute struct {
	Kind          AttrKind
	Origin        uint8
	AsPath        AsPath
	NextHop       netip.Addr
	MultiExitDisc uint32
	LocalPref     uint32
	Community     []Community
}

// BadAttributeError reports a fixed-length attribute whose payload
// length does not match the rule in SPEC_FULL.md §4.3's table.
type BadAttributeError struct {
	Code   byte
	GotLen int
}

func (e *BadAttributeError) Error() string {
	return fmt.Sprintf("bad attribute %d: length %d", e.Code, e.GotLen)
}

// ParseAttributes decodes a full path-attribute TLV stream of exactly
// len(buf) bytes into the recognised PathAttribute values, in
// encounter order. Unrecognised type codes are consumed (honouring
// their declared length) but dropped from the result, preserving
// forward compatibility.
func ParseAttributes(buf []byte) ([]PathAttribute, error) {
	r := wire.NewReader(buf)
	var out []PathAttribute
	for r.Len() > 0 {
		flags, err := r.ReadU8()
		if err != nil {
			return nil, errors.Wrap(err, "attribute flags")
		}
		code, err := r.ReadU8()
		if err != nil {
			return nil, errors.Wrap(err, "attribute type code")
		}
		var length int
		if flags&extendedLengthBit != 0 {
			l16, err := r.ReadU16()
			if err != nil {
				return nil, errors.Wrap(err, "extended attribute length")
			}
			length = int(l16)
		} else {
			l8, err := r.ReadU8()
			if err != nil {
				return nil, errors.Wrap(err, "attribute length")
			}
			length = int(l8)
		}

		payload, err := r.Peek(length)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %d payload", code)
		}

		attr, recognised, err := decodeOne(code, payload)
		if err != nil {
			return nil, err
		}
		if err := r.Consume(length); err != nil {
			return nil, err
		}
		if recognised {
			out = append(out, attr)
		}
	}
	return out, nil
}

func decodeOne(code byte, payload []byte) (PathAttribute, bool, error) {
	switch code {
	case TypeOrigin:
		if len(payload) != 1 {
			return PathAttribute{}, false, &BadAttributeError{Code: code, GotLen: len(payload)}
		}
		return PathAttribute{Kind: KindOrigin, Origin: payload[0]}, true, nil

	case TypeAsPath:
		path, err := ParseAsPath(wire.NewReader(payload))
		if err != nil {
			return PathAttribute{}, false, err
		}
		return PathAttribute{Kind: KindAsPath, AsPath: path}, true, nil

	case TypeNextHop:
		switch len(payload) {
		case 4:
			var b [4]byte
			copy(b[:], payload)
			return PathAttribute{Kind: KindNextHop, NextHop: netip.AddrFrom4(b)}, true, nil
		case 16:
			var b [16]byte
			copy(b[:], payload)
			return PathAttribute{Kind: KindNextHop, NextHop: netip.AddrFrom16(b)}, true, nil
		default:
			return PathAttribute{}, false, &BadAttributeError{Code: code, GotLen: len(payload)}
		}

	case TypeMultiExitDisc:
		if len(payload) != 4 {
			return PathAttribute{}, false, &BadAttributeError{Code: code, GotLen: len(payload)}
		}
		return PathAttribute{Kind: KindMultiExitDisc, MultiExitDisc: be32(payload)}, true, nil

	case TypeLocalPref:
		if len(payload) != 4 {
			return PathAttribute{}, false, &BadAttributeError{Code: code, GotLen: len(payload)}
		}
		return PathAttribute{Kind: KindLocalPref, LocalPref: be32(payload)}, true, nil

	case TypeAtomicAggregate:
		if len(payload) != 0 {
			return PathAttribute{}, false, &BadAttributeError{Code: code, GotLen: len(payload)}
		}
		return PathAttribute{Kind: KindAtomicAggregate}, true, nil

	case TypeCommunity:
		if len(payload)%4 != 0 {
			return PathAttribute{}, false, &BadAttributeError{Code: code, GotLen: len(payload)}
		}
		communities := make([]Community, 0, len(payload)/4)
		for i := 0; i < len(payload); i += 4 {
			communities = append(communities, Community{
				Kind:     CommunityStandard,
				Standard: [2]uint16{be16(payload[i : i+2]), be16(payload[i+2 : i+4])},
			})
		}
		return PathAttribute{Kind: KindCommunity, Community: communities}, true, nil

	case TypeLargeCommunity:
		if len(payload)%12 != 0 {
			return PathAttribute{}, false, &BadAttributeError{Code: code, GotLen: len(payload)}
		}
		communities := make([]Community, 0, len(payload)/12)
		for i := 0; i < len(payload); i += 12 {
			communities = append(communities, Community{
				Kind: CommunityLarge,
				Large: [3]uint32{
					be32(payload[i : i+4]),
					be32(payload[i+4 : i+8]),
					be32(payload[i+8 : i+12]),
				},
			})
		}
		return PathAttribute{Kind: KindCommunity, Community: communities}, true, nil

	default:
		return PathAttribute{}, false, nil
	}
}

func be16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
