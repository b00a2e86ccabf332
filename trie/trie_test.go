package trie_test

import (
	"net/netip"
	"testing"

	"github.com/CSUNetSec/mrtrib/addr"
	"github.com/CSUNetSec/mrtrib/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestS2LongestPrefixMatch covers scenario S2.
func TestS2LongestPrefixMatch(t *testing.T) {
	tr := trie.New[string](32)
	tr.Add(addr.NewTrieKey(netip.MustParseAddr("10.0.0.0")), 8, []string{"E1"})
	tr.Add(addr.NewTrieKey(netip.MustParseAddr("10.1.0.0")), 16, []string{"E2"})

	res, ok := tr.Get(addr.NewTrieKey(netip.MustParseAddr("10.1.2.3")), 32)
	require.True(t, ok)
	assert.Equal(t, 16, res.Depth)
	assert.Equal(t, []string{"E2"}, res.Value)

	res, ok = tr.Get(addr.NewTrieKey(netip.MustParseAddr("10.2.3.4")), 32)
	require.True(t, ok)
	assert.Equal(t, 8, res.Depth)
	assert.Equal(t, []string{"E1"}, res.Value)

	_, ok = tr.Get(addr.NewTrieKey(netip.MustParseAddr("11.0.0.0")), 32)
	assert.False(t, ok)
}

// TestS3AppendSemantics covers scenario S3.
func TestS3AppendSemantics(t *testing.T) {
	tr := trie.New[string](32)
	key := addr.NewTrieKey(netip.MustParseAddr("10.0.0.0"))
	tr.Add(key, 8, []string{"E1"})
	tr.Add(key, 8, []string{"E2", "E3"})

	res, ok := tr.Get(addr.NewTrieKey(netip.MustParseAddr("10.0.0.1")), 32)
	require.True(t, ok)
	assert.Equal(t, []string{"E1", "E2", "E3"}, res.Value)
}

func TestNoMatch(t *testing.T) {
	tr := trie.New[string](32)
	_, ok := tr.Get(addr.NewTrieKey(netip.MustParseAddr("192.168.0.1")), 32)
	assert.False(t, ok)
}

func TestV6(t *testing.T) {
	tr := trie.New[string](128)
	tr.Add(addr.NewTrieKey(netip.MustParseAddr("2001:db8::")), 32, []string{"v6"})
	res, ok := tr.Get(addr.NewTrieKey(netip.MustParseAddr("2001:db8::1")), 128)
	require.True(t, ok)
	assert.Equal(t, 32, res.Depth)
	assert.Equal(t, []string{"v6"}, res.Value)
}
