package addr

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskIdempotence(t *testing.T) {
	a := netip.MustParseAddr("10.1.2.3")
	for _, n := range []uint8{0, 1, 8, 16, 24, 31, 32} {
		m1 := Mask(a, n)
		m2 := Mask(m1, n)
		assert.Equal(t, m1, m2, "mask not idempotent at length %d", n)
	}
}

func TestMaskKnownValues(t *testing.T) {
	a := netip.MustParseAddr("10.1.2.3")
	assert.Equal(t, netip.MustParseAddr("10.0.0.0"), Mask(a, 8))
	assert.Equal(t, netip.MustParseAddr("10.1.0.0"), Mask(a, 16))
	assert.Equal(t, netip.MustParseAddr("0.0.0.0"), Mask(a, 0))
	assert.Equal(t, a, Mask(a, 32))
}

func TestMaskV6(t *testing.T) {
	a := netip.MustParseAddr("2001:db8::1")
	assert.Equal(t, netip.MustParseAddr("2001:db8::"), Mask(a, 32))
}

func TestParsePrefix(t *testing.T) {
	p, err := ParsePrefix("10.0.0.0/8")
	require.NoError(t, err)
	assert.Equal(t, uint8(8), p.Len)
	assert.Equal(t, netip.MustParseAddr("10.0.0.0"), p.Addr)

	_, err = ParsePrefix("not-an-ip/8")
	assert.Error(t, err)

	_, err = ParsePrefix("10.0.0.0")
	assert.Error(t, err)

	_, err = ParsePrefix("10.0.0.0/99")
	assert.Error(t, err)
}

func TestFromBytesPadded(t *testing.T) {
	a := FromBytesPadded([]byte{10, 1}, false)
	assert.Equal(t, netip.MustParseAddr("10.1.0.0"), a)
}
