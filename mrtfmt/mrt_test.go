package mrtfmt_test

import (
	"encoding/binary"
	"testing"

	"github.com/CSUNetSec/mrtrib/mrtfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mrtHeader(ts uint32, typ, subtype uint16, payload []byte) []byte {
	buf := make([]byte, 12+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], ts)
	binary.BigEndian.PutUint16(buf[4:6], typ)
	binary.BigEndian.PutUint16(buf[6:8], subtype)
	binary.BigEndian.PutUint32(buf[8:12], uint32(len(payload)))
	copy(buf[12:], payload)
	return buf
}

// TestS1EmptyPeerIndexTable covers scenario S1.
func TestS1EmptyPeerIndexTable(t *testing.T) {
	payload := []byte{
		0, 0, 0, 0, // collector 0.0.0.0
		0, 0, // view_name_len = 0
		0, 0, // peer_count = 0
	}
	data := mrtHeader(0x5E000000, 13, 1, payload)

	rec, err := mrtfmt.ParseRecord(data, nil)
	require.NoError(t, err)
	require.NotNil(t, rec.PeerIndexTable)
	assert.Empty(t, rec.PeerIndexTable.Peers)
	assert.Equal(t, "", rec.PeerIndexTable.ViewName)
}

func TestSplitMrtCleanEOF(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	data := mrtHeader(0, 13, 1, payload)

	adv, tok, err := mrtfmt.SplitMrt(data, false)
	require.NoError(t, err)
	assert.Equal(t, len(data), adv)
	assert.Equal(t, data, tok)

	adv, tok, err = mrtfmt.SplitMrt(nil, true)
	require.NoError(t, err)
	assert.Equal(t, 0, adv)
	assert.Nil(t, tok)
}

func TestSplitMrtNeedsMoreData(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	data := mrtHeader(0, 13, 1, payload)
	truncated := data[:len(data)-1]

	adv, tok, err := mrtfmt.SplitMrt(truncated, false)
	require.NoError(t, err)
	assert.Equal(t, 0, adv)
	assert.Nil(t, tok)

	_, _, err = mrtfmt.SplitMrt(truncated, true)
	assert.Error(t, err)
}

func TestUnknownTypeSkipped(t *testing.T) {
	data := mrtHeader(0, 99, 1, []byte{1, 2, 3})
	rec, err := mrtfmt.ParseRecord(data, nil)
	require.NoError(t, err)
	assert.True(t, rec.Skipped)
}

func TestUnknownSubtypeSkipped(t *testing.T) {
	data := mrtHeader(0, 13, 77, []byte{1, 2, 3})
	rec, err := mrtfmt.ParseRecord(data, nil)
	require.NoError(t, err)
	assert.True(t, rec.Skipped)
}
