package bgpattr

import (
	"testing"

	"github.com/CSUNetSec/mrtrib/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestS4AttributeStream covers scenario S4 of the specification.
func TestS4AttributeStream(t *testing.T) {
	buf := []byte{
		0x40, 0x01, 0x01, 0x00, // ORIGIN len=1 value=0
		0x40, 0x02, 0x00, // AS_PATH len=0
	}
	attrs, err := ParseAttributes(buf)
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, KindOrigin, attrs[0].Kind)
	assert.Equal(t, uint8(0), attrs[0].Origin)
	assert.Equal(t, KindAsPath, attrs[1].Kind)
	assert.Empty(t, attrs[1].AsPath.Segments)
}

func TestS4BadAttributeLength(t *testing.T) {
	buf := []byte{
		0x40, 0x01, 0x02, 0x00, 0x00, // ORIGIN claims len=2
	}
	_, err := ParseAttributes(buf)
	require.Error(t, err)
	var bad *BadAttributeError
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, byte(1), bad.Code)
	assert.Equal(t, 2, bad.GotLen)
}

// TestS5AsPathSegment covers scenario S5.
func TestS5AsPathSegment(t *testing.T) {
	buf := []byte{
		0x02, 0x03,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x03,
	}
	path, err := ParseAsPath(wire.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, "1 2 3", path.String())

	buf[0] = 0x01
	path, err = ParseAsPath(wire.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, "{1 2 3}", path.String())
}

func TestBadAsPathSegmentType(t *testing.T) {
	buf := []byte{0x03, 0x00}
	_, err := ParseAsPath(wire.NewReader(buf))
	require.Error(t, err)
	var bad *BadAsPathSegmentError
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, byte(3), bad.Type)
}

func TestForwardCompatibility(t *testing.T) {
	buf := []byte{
		0x40, 0x01, 0x01, 0x00, // ORIGIN
		0xC0, 0x63, 0x03, 0xAA, 0xBB, 0xCC, // unknown code 99, len 3
		0x40, 0x05, 0x04, 0x00, 0x00, 0x00, 0x64, // LOCAL_PREF = 100
	}
	attrs, err := ParseAttributes(buf)
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, KindOrigin, attrs[0].Kind)
	assert.Equal(t, KindLocalPref, attrs[1].Kind)
	assert.Equal(t, uint32(100), attrs[1].LocalPref)
}

func TestTruncatedMidAttribute(t *testing.T) {
	buf := []byte{0x40, 0x01, 0x01}
	_, err := ParseAttributes(buf)
	require.Error(t, err)
}

func TestCommunityParsing(t *testing.T) {
	buf := []byte{
		0x40, 0x08, 0x04,
		0x00, 0x01, 0x00, 0x02,
	}
	attrs, err := ParseAttributes(buf)
	require.NoError(t, err)
	require.Len(t, attrs, 1)
	require.Len(t, attrs[0].Community, 1)
	assert.Equal(t, "1:2", attrs[0].Community[0].String())
}
