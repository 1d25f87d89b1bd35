package bridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEscapesSpecialBytes(t *testing.T) {
	in := Telegram{Op: telEnd, Seq: telStart, Data: []byte{specialCharFirstReplacement, 1, telEnd, 2}}
	raw, err := Encode(in)
	require.NoError(t, err)
	assert.Equal(t, byte(telStart), raw[0])
	assert.Equal(t, byte(telEnd), raw[len(raw)-1])
	inner := raw[1 : len(raw)-1]
	assert.Equal(t, -1, bytes.IndexByte(inner, telStart))
	assert.Equal(t, -1, bytes.IndexByte(inner, telEnd))

	out, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeSkipsLeadingGarbage(t *testing.T) {
	raw, err := Encode(Telegram{Op: opFreq, Seq: 7})
	require.NoError(t, err)
	out, err := Decode(append([]byte{0xFF, 0x01}, raw...))
	require.NoError(t, err)
	assert.Equal(t, opFreq, out.Op)
	assert.Equal(t, byte(7), out.Seq)
	assert.Empty(t, out.Data)
}

func TestDecodeCRCMismatch(t *testing.T) {
	raw, err := Encode(Telegram{Op: opRead32, Seq: 1, Data: []byte{0x11, 0x22}})
	require.NoError(t, err)
	// [SOT] [op] [seq] [len] [data...]
	require.Equal(t, byte(0x11), raw[4])
	raw[4] = 0x12
	_, err = Decode(raw)
	assert.ErrorIs(t, err, ErrCRC)
}

func TestDecodeMalformed(t *testing.T) {
	for name, raw := range map[string][]byte{
		"no start": {0x01, 0x02, telEnd},
		"no end":   {telStart, 0x01, 0x02},
		"short":    {telStart, 0x01, telEnd},
		"escape":   {telStart, 0x01, 0x02, 0x03, 0x04, specialCharFirstReplacement, telEnd},
	} {
		_, err := Decode(raw)
		assert.ErrorIs(t, err, ErrFrame, name)
	}
}

func TestEncodePayloadTooLarge(t *testing.T) {
	_, err := Encode(Telegram{Op: opSPI, Data: make([]byte, MaxPayload+1)})
	assert.ErrorIs(t, err, ErrPayload)
}

func TestDecoderStopsAtShortRead(t *testing.T) {
	var e enc
	e.u16(0xBEEF)
	d := &dec{b: e}
	assert.Equal(t, uint16(0xBEEF), d.u16())
	assert.Equal(t, uint64(0), d.u64())
	assert.ErrorIs(t, d.err, ErrFrame)
	assert.Equal(t, 0, d.u8())
}
