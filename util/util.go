// Package util contains misc internal utilities.
package util

import (
	"strconv"
	"strings"
)

// IntSliceToCSV convets a slice of ints to CSV formatted data.
// e.g., []int{1,2,3,4,5} => "1,2,3,4,5"
func IntSliceToCSV(is []int) string {
	s := make([]string, len(is))
	for i, v := range is {
		s[i] = strconv.Itoa(v)
	}

	return strings.Join(s, ",")
}

// GetBit returns the value of a given bit in a byte
func GetBit(b byte, bitIndex uint) bool {
	return b&(1<<bitIndex) != 0
}

// SetBit sets or clears a given bit in a byte and returns the result
func SetBit(b byte, bitIndex uint, on bool) byte {
	if on {
		return b | (1 << bitIndex)
	}
	return b &^ (1 << bitIndex)
}

// Bit returns a byte with only bitIndex set, BIT(n) in the vendor headers
func Bit(bitIndex uint) byte {
	return 1 << bitIndex
}

// Mask builds a bitmask from a list of bit indices.
// indices outside of [0,7] are ignored
func Mask(indices ...int) byte {
	var out byte
	for _, i := range indices {
		if i < 0 || i > 7 {
			continue
		}
		out = SetBit(out, uint(i), true)
	}
	return out
}

// Indices is the inverse of Mask and returns the set bits of b in ascending order
func Indices(b byte) []int {
	out := []int{}
	for i := uint(0); i < 8; i++ {
		if GetBit(b, i) {
			out = append(out, int(i))
		}
	}
	return out
}
