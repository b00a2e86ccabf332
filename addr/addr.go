// Package addr implements address and prefix parsing and the bit
// masking operation shared by the trie, the filter evaluator, and the
// RIB decoder.
package addr

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrBadSyntax is returned when a prefix or address literal cannot be
// parsed.
var ErrBadSyntax = errors.New("bad syntax")

// Prefix pairs an address with a prefix length. The invariant
// len <= width(address) && address.Mask(len) == address is enforced by
// ParsePrefix and by every constructor in this package; callers that
// build a Prefix by hand (C6) are responsible for it themselves.
type Prefix struct {
	Addr netip.Addr
	Len  uint8
}

func (p Prefix) String() string {
	return fmt.Sprintf("%s/%d", p.Addr, p.Len)
}

// Width returns 32 for an IPv4 address and 128 for an IPv6 address.
func Width(a netip.Addr) int {
	if a.Is4() {
		return 32
	}
	return 128
}

// Mask clears every bit of a below bit index len counted from the
// most-significant bit. len==0 yields the zero address; len>=width
// yields a unchanged.
func Mask(a netip.Addr, length uint8) netip.Addr {
	w := Width(a)
	if int(length) >= w {
		return a
	}
	if a.Is4() {
		buf := a.As4()
		maskBytes(buf[:], length)
		return netip.AddrFrom4(buf)
	}
	buf := a.As16()
	maskBytes(buf[:], length)
	return netip.AddrFrom16(buf)
}

// maskBytes zero-clears every bit at or past bit index length within
// buf, counted from the most-significant bit of buf[0].
func maskBytes(buf []byte, length uint8) {
	fullBytes := int(length) / 8
	rem := int(length) % 8
	if rem != 0 {
		buf[fullBytes] &= ^byte(0xFF >> rem)
		fullBytes++
	}
	for i := fullBytes; i < len(buf); i++ {
		buf[i] = 0
	}
}

// ParsePrefix parses "A.B.C.D/len" or "v6addr/len". Address bits past
// len are cleared, so the returned Prefix is always canonical.
func ParsePrefix(s string) (Prefix, error) {
	slash := strings.LastIndexByte(s, '/')
	if slash < 0 {
		return Prefix{}, errors.Wrapf(ErrBadSyntax, "missing '/' in %q", s)
	}
	addrPart, lenPart := s[:slash], s[slash+1:]
	a, err := netip.ParseAddr(addrPart)
	if err != nil {
		return Prefix{}, errors.Wrapf(ErrBadSyntax, "bad address %q", addrPart)
	}
	n, err := strconv.ParseUint(lenPart, 10, 8)
	if err != nil || int(n) > Width(a) {
		return Prefix{}, errors.Wrapf(ErrBadSyntax, "bad prefix length %q", lenPart)
	}
	return Prefix{Addr: Mask(a, uint8(n)), Len: uint8(n)}, nil
}

// ParseAddr parses a bare IPv4 or IPv6 literal.
func ParseAddr(s string) (netip.Addr, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, errors.Wrapf(ErrBadSyntax, "bad address %q", s)
	}
	return a, nil
}

// FromBytesPadded interprets up to 16 zero-padded big-endian bytes as
// either a v4 or v6 address, mirroring the RIB decoder's
// ceil(plen/8)-byte, left-aligned, zero-padded prefix material.
func FromBytesPadded(b []byte, v6 bool) netip.Addr {
	if v6 {
		var buf [16]byte
		copy(buf[:], b)
		return netip.AddrFrom16(buf)
	}
	var buf [4]byte
	copy(buf[:], b)
	return netip.AddrFrom4(buf)
}
