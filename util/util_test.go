package util_test

import (
	"fmt"
	"testing"

	"github.com/nasa-jpl/mxfe/util"
)

func ExampleSetBit_msb() {
	out := util.SetBit(0, 7, true)
	fmt.Printf("%08b\n", out)
	// Output: 10000000
}

func ExampleSetBit_lsb() {
	out := util.SetBit(255, 0, false)
	fmt.Printf("%08b\n", out)
	// Output: 11111110
}

func ExampleMask() {
	fmt.Printf("%08b\n", util.Mask(0, 2, 7))
	// Output: 10000101
}

func ExampleIntSliceToCSV() {
	fmt.Println(util.IntSliceToCSV([]int{1, 2, 3}))
	// Output: 1,2,3
}

func TestGetBitMatchesSetBit(t *testing.T) {
	for i := uint(0); i < 8; i++ {
		b := util.SetBit(0, i, true)
		if !util.GetBit(b, i) {
			t.Errorf("bit %d set but GetBit returned false", i)
		}
		for j := uint(0); j < 8; j++ {
			if j != i && util.GetBit(b, j) {
				t.Errorf("bit %d unexpectedly set when only %d was", j, i)
			}
		}
	}
}

func TestIndicesInvertsMask(t *testing.T) {
	in := []int{1, 3, 4}
	out := util.Indices(util.Mask(in...))
	if len(out) != len(in) {
		t.Fatalf("expected %v got %v", in, out)
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("expected %d at position %d, got %d", in[i], i, out[i])
		}
	}
}

func TestMaskIgnoresOutOfRange(t *testing.T) {
	if m := util.Mask(-1, 8, 9); m != 0 {
		t.Errorf("expected empty mask, got %08b", m)
	}
}
