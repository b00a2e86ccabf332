package addr

import "net/netip"

// TrieKey adapts a netip.Addr to trie.Key without this package
// depending on the trie package (trie depends on nothing; addr stays
// a leaf dependency for everyone else).
type TrieKey struct {
	bytes []byte
	width int
}

// NewTrieKey builds the big-endian bit source a Trie descends over.
func NewTrieKey(a netip.Addr) TrieKey {
	if a.Is4() {
		b := a.As4()
		return TrieKey{bytes: b[:], width: 32}
	}
	b := a.As16()
	return TrieKey{bytes: b[:], width: 128}
}

func (k TrieKey) Width() int { return k.width }

func (k TrieKey) Bit(i int) bool {
	byteIdx := i / 8
	bitIdx := 7 - uint(i%8)
	return k.bytes[byteIdx]&(1<<bitIdx) != 0
}
