package bridge

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/snksoft/crc"
)

// telegrams are encoded as [SOT][BODY][CRC][EOT] where the body is
// [OP] [SEQ] [LEN] [0..MaxPayload data bytes]
// and body and CRC are escaped so SOT and EOT never appear inside.

const (
	// telStart is the start of telegram byte
	telStart = 0x0D

	// telEnd is the end of telegram byte
	telEnd = 0x0A

	// specialCharFirstReplacement is the first byte used to replace a special character
	specialCharFirstReplacement = 0x5E

	// specialCharShift is the amount to special characters up.
	// special characters max out at 0x5E, so we will never overflow
	specialCharShift = 0x40

	// MaxPayload is the largest payload of one telegram
	MaxPayload = 240
)

var (
	// ErrCRC is generated when a telegram fails its CRC check
	ErrCRC = errors.New("telegram CRC mismatch")

	// ErrFrame is generated for malformed telegrams
	ErrFrame = errors.New("malformed telegram")

	// ErrPayload is generated when a payload does not fit a telegram
	ErrPayload = errors.New("payload too large")

	// specialChars is a byte slice of values that must be filtered out of messages
	specialChars = []byte{telEnd, telStart, specialCharFirstReplacement}

	crcTable = crc.NewTable(crc.XMODEM)
)

// Telegram is one request or response
type Telegram struct {
	Op   byte
	Seq  byte
	Data []byte
}

// crcHelper computes the two-byte CRC value in a concurrent safe way and one line
func crcHelper(buf []byte) []byte {
	crcUint := crcTable.InitCrc()
	crcUint = crcTable.UpdateCrc(crcUint, buf)
	crcBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(crcBytes, crcTable.CRC16(crcUint))
	return crcBytes
}

func sanitize(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, b := range data {
		if bytes.IndexByte(specialChars, b) >= 0 {
			out = append(out, specialCharFirstReplacement, b+specialCharShift)
		} else {
			out = append(out, b)
		}
	}
	return out
}

func reverseSanitize(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	subNext := false
	for _, b := range data {
		if subNext {
			out = append(out, b-specialCharShift)
			subNext = false
			continue
		}
		if b == specialCharFirstReplacement {
			subNext = true
			continue
		}
		out = append(out, b)
	}
	if subNext {
		return nil, fmt.Errorf("%w: dangling escape", ErrFrame)
	}
	return out, nil
}

// Encode produces the wire form of a telegram
func Encode(t Telegram) ([]byte, error) {
	if len(t.Data) > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrPayload, len(t.Data), MaxPayload)
	}
	body := append([]byte{t.Op, t.Seq, byte(len(t.Data))}, t.Data...)
	body = append(body, crcHelper(body)...)
	out := append([]byte{telStart}, sanitize(body)...)
	return append(out, telEnd), nil
}

// Decode renders a raw telegram into its parts.  Bytes before SOT are
// ignored.
func Decode(raw []byte) (Telegram, error) {
	iStart := bytes.IndexByte(raw, telStart)
	if iStart < 0 {
		return Telegram{}, fmt.Errorf("%w: start byte %X not found", ErrFrame, telStart)
	}
	iEnd := bytes.IndexByte(raw[iStart:], telEnd)
	if iEnd < 0 {
		return Telegram{}, fmt.Errorf("%w: end byte %X not found", ErrFrame, telEnd)
	}
	body, err := reverseSanitize(raw[iStart+1 : iStart+iEnd])
	if err != nil {
		return Telegram{}, err
	}
	if len(body) < 5 {
		return Telegram{}, fmt.Errorf("%w: %d byte body", ErrFrame, len(body))
	}
	fidx := len(body) - 2
	if !bytes.Equal(body[fidx:], crcHelper(body[:fidx])) {
		return Telegram{}, ErrCRC
	}
	body = body[:fidx]
	if int(body[2]) != len(body)-3 {
		return Telegram{}, fmt.Errorf("%w: length field %d, %d data bytes", ErrFrame, body[2], len(body)-3)
	}
	return Telegram{Op: body[0], Seq: body[1], Data: append([]byte(nil), body[3:]...)}, nil
}

// readTelegram reads up to and including the next EOT
func readTelegram(r *bufio.Reader) ([]byte, error) {
	return r.ReadBytes(telEnd)
}
