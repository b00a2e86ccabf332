package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderFixedWidth(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x00, 0x05, 0x06})

	b, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)

	u16, err := r.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0203), u16)

	u32, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04000506), u32)
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.ReadU16()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestReaderPeekConsume(t *testing.T) {
	r := NewReader([]byte{0xAA, 0xBB, 0xCC})
	peeked, err := r.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, peeked)
	assert.Equal(t, 3, r.Len())

	require.NoError(t, r.Consume(2))
	assert.Equal(t, 1, r.Len())

	b, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, byte(0xCC), b)
}

func TestReaderU128(t *testing.T) {
	buf := make([]byte, 16)
	buf[15] = 0x01
	r := NewReader(buf)
	hi, lo, err := r.ReadU128()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), hi)
	assert.Equal(t, uint64(1), lo)
}
