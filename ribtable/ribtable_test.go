package ribtable_test

import (
	"net/netip"
	"testing"

	"github.com/CSUNetSec/mrtrib/addr"
	"github.com/CSUNetSec/mrtrib/mrtfmt"
	"github.com/CSUNetSec/mrtrib/ribtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLpmAcrossFamilies(t *testing.T) {
	rt := ribtable.New()
	e1 := mrtfmt.RibEntry{Peer: &mrtfmt.Peer{}}
	rt.Add(addr.Prefix{Addr: netip.MustParseAddr("10.0.0.0"), Len: 8}, []mrtfmt.RibEntry{e1})

	res, ok := rt.Get(netip.MustParseAddr("10.2.3.4"))
	require.True(t, ok)
	assert.Equal(t, uint8(8), res.Prefix.Len)
	assert.Equal(t, netip.MustParseAddr("10.0.0.0"), res.Prefix.Addr)

	_, ok = rt.Get(netip.MustParseAddr("11.0.0.0"))
	assert.False(t, ok)

	_, ok = rt.Get(netip.MustParseAddr("2001:db8::1"))
	assert.False(t, ok)
}
