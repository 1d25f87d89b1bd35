/*Package jesd builds validated JESD204 link parameter sets.

A link is described once per role (the transmit link and up to two receive
links per device) and never mutated afterwards; a change of framing requires a
full bring-up.  Build is pure: it performs no I/O and may be called before any
hardware is touched.

The frame geometry must close, that is

	F * 8 * L == M * S * NP

and when the caller supplies a converter sample rate and a lane rate, the lane
bit budget after line coding must carry M converters of NP bits at that rate.
*/
package jesd

import (
	"errors"
	"fmt"

	"github.com/nasa-jpl/mxfe/mathx"
)

// Role is the direction of a link as seen from the converter
type Role int

const (
	// Tx is a transmit (DAC) link
	Tx Role = iota
	// Rx is a receive (ADC) link
	Rx
)

func (r Role) String() string {
	switch r {
	case Tx:
		return "tx"
	case Rx:
		return "rx"
	default:
		return "unknown"
	}
}

// Version is the JESD204 revision spoken on a link
type Version int

const (
	// JESD204B uses 8b/10b line coding
	JESD204B Version = iota
	// JESD204C uses 64b/66b line coding
	JESD204C
)

func (v Version) String() string {
	switch v {
	case JESD204B:
		return "204B"
	case JESD204C:
		return "204C"
	default:
		return "unknown"
	}
}

// encoding returns the payload fraction of the line code as num/den
func (v Version) encoding() (uint64, uint64) {
	if v == JESD204C {
		return 64, 66
	}
	return 8, 10
}

const (
	// MaxLanes is the number of SERDES lanes per direction on the device
	MaxLanes = 8

	// MaxConverters is the largest M the device supports on one link
	MaxConverters = 16

	// MaxConverterSelect is the size of the receive converter selection table
	MaxConverterSelect = 16
)

var (
	// ErrInvalidGeometry is generated when a geometry does not describe a legal link
	ErrInvalidGeometry = errors.New("invalid link geometry")

	// ErrBandwidth is generated when the lanes cannot carry the sample stream
	ErrBandwidth = errors.New("lane bandwidth insufficient")

	validNP = map[int]bool{8: true, 12: true, 16: true, 24: true, 32: true}
)

// Geometry is the closed set of inputs a link is built from.
// Field names follow the JESD204 standard letters.
type Geometry struct {
	F           int  `koanf:"f" yaml:"f"`
	K           int  `koanf:"k" yaml:"k"`
	S           int  `koanf:"s" yaml:"s"`
	N           int  `koanf:"n" yaml:"n"`
	NP          int  `koanf:"np" yaml:"np"`
	M           int  `koanf:"m" yaml:"m"`
	CS          int  `koanf:"cs" yaml:"cs"`
	L           int  `koanf:"l" yaml:"l"`
	HighDensity bool `koanf:"hd" yaml:"hd"`
	Subclass    int  `koanf:"subclass" yaml:"subclass"`

	// Mode is the device-specific JESD mode number
	Mode int `koanf:"mode" yaml:"mode"`

	// Version is 0 for 204B and 1 for 204C
	Version Version `koanf:"version" yaml:"version"`

	DualLink bool `koanf:"duallink" yaml:"duallink"`

	// LaneMap maps logical lanes to physical lanes
	LaneMap []int `koanf:"lanemap" yaml:"lanemap"`

	// ConverterSelect maps link converters to channelizer outputs, receive only
	ConverterSelect []int `koanf:"converterselect" yaml:"converterselect"`

	// TPLPhaseAdjust is the transport layer phase adjustment, transmit only
	TPLPhaseAdjust int `koanf:"tplphaseadjust" yaml:"tplphaseadjust"`

	// SampleRate is the per-converter sample rate on the link in Hz, optional
	SampleRate uint64 `koanf:"samplerate" yaml:"samplerate"`

	// LaneRate is the serial lane rate in bits/s, optional
	LaneRate uint64 `koanf:"lanerate" yaml:"lanerate"`
}

// LinkParameters is a validated, immutable link description
type LinkParameters struct {
	Role     Role
	DeviceID int
	Geometry
}

// Build validates a geometry for the given role and returns the parameters
func Build(role Role, g Geometry) (LinkParameters, error) {
	lp := LinkParameters{Role: role, Geometry: g.clone()}
	if err := lp.validate(); err != nil {
		return LinkParameters{}, err
	}
	return lp, nil
}

// Absent returns true for a receive link declared as not present (no
// converters and an empty selection table).  An absent link is valid.
func (lp LinkParameters) Absent() bool {
	return lp.Role == Rx && lp.M == 0 && len(lp.ConverterSelect) == 0
}

// WithDeviceID returns a copy of the parameters carrying a different device id
func (lp LinkParameters) WithDeviceID(id int) LinkParameters {
	out := lp
	out.Geometry = lp.Geometry.clone()
	out.DeviceID = id
	return out
}

// RequiredLaneRate is the lane rate in bits/s needed to carry sampleRate on
// this link, rounded up
func (lp LinkParameters) RequiredLaneRate(sampleRate uint64) uint64 {
	if lp.L == 0 {
		return 0
	}
	num, den := lp.Version.encoding()
	payload := uint64(lp.M) * uint64(lp.NP) * sampleRate * den
	return mathx.CeilDiv(payload, uint64(lp.L)*num)
}

func (lp LinkParameters) String() string {
	if lp.Absent() {
		return fmt.Sprintf("%s link absent", lp.Role)
	}
	return fmt.Sprintf("%s link dev %d mode %d %s L=%d M=%d F=%d S=%d K=%d N=%d NP=%d",
		lp.Role, lp.DeviceID, lp.Mode, lp.Version, lp.L, lp.M, lp.F, lp.S, lp.K, lp.N, lp.NP)
}

func (g Geometry) clone() Geometry {
	out := g
	if g.LaneMap != nil {
		out.LaneMap = append([]int(nil), g.LaneMap...)
	}
	if g.ConverterSelect != nil {
		out.ConverterSelect = append([]int(nil), g.ConverterSelect...)
	}
	return out
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidGeometry, fmt.Sprintf(format, args...))
}

func (lp LinkParameters) validate() error {
	if lp.Role != Tx && lp.Role != Rx {
		return invalid("unknown role %d", lp.Role)
	}
	if lp.Role == Tx && len(lp.ConverterSelect) != 0 {
		return invalid("converter selection is only valid on receive links")
	}
	if lp.Absent() {
		return nil
	}
	if lp.M == 0 {
		if lp.Role == Tx {
			return invalid("transmit link has no converters")
		}
		return invalid("receive link has no converters but a selection table of %d entries", len(lp.ConverterSelect))
	}
	if lp.Subclass != 0 && lp.Subclass != 1 {
		return invalid("subclass %d not in {0,1}", lp.Subclass)
	}
	if lp.Version != JESD204B && lp.Version != JESD204C {
		return invalid("unknown version %d", lp.Version)
	}
	if lp.M < 0 || lp.M > MaxConverters {
		return invalid("M=%d out of range [1,%d]", lp.M, MaxConverters)
	}
	if lp.L < 1 || lp.L > MaxLanes {
		return invalid("L=%d out of range [1,%d]", lp.L, MaxLanes)
	}
	if lp.F < 1 || lp.F > 256 {
		return invalid("F=%d out of range [1,256]", lp.F)
	}
	if lp.K < 1 || lp.K > 256 {
		return invalid("K=%d out of range [1,256]", lp.K)
	}
	if lp.S < 1 || lp.S > 32 {
		return invalid("S=%d out of range [1,32]", lp.S)
	}
	if !validNP[lp.NP] {
		return invalid("NP=%d not one of 8, 12, 16, 24, 32", lp.NP)
	}
	if lp.N < 1 || lp.N > lp.NP {
		return invalid("N=%d must be in [1,NP=%d]", lp.N, lp.NP)
	}
	if lp.CS < 0 || lp.CS > 3 || lp.N+lp.CS > lp.NP {
		return invalid("CS=%d does not fit N=%d in NP=%d", lp.CS, lp.N, lp.NP)
	}
	if lp.F*8*lp.L != lp.M*lp.S*lp.NP {
		return invalid("frame does not close: F*8*L=%d, M*S*NP=%d", lp.F*8*lp.L, lp.M*lp.S*lp.NP)
	}
	if octets := lp.F * lp.K; lp.Version == JESD204B && (octets < 17 || octets > 1024) {
		return invalid("multiframe of %d octets outside [17,1024]", octets)
	}
	if len(lp.LaneMap) > MaxLanes {
		return invalid("lane map has %d entries, max %d", len(lp.LaneMap), MaxLanes)
	}
	if len(lp.LaneMap) != 0 {
		if len(lp.LaneMap) < lp.L {
			return invalid("lane map has %d entries for %d lanes", len(lp.LaneMap), lp.L)
		}
		seen := map[int]bool{}
		for _, phys := range lp.LaneMap[:lp.L] {
			if phys < 0 || phys >= MaxLanes {
				return invalid("physical lane %d out of range", phys)
			}
			if seen[phys] {
				return invalid("physical lane %d mapped twice", phys)
			}
			seen[phys] = true
		}
	}
	if lp.Role == Rx {
		if len(lp.ConverterSelect) < lp.M || len(lp.ConverterSelect) > MaxConverterSelect {
			return invalid("converter selection has %d entries for M=%d", len(lp.ConverterSelect), lp.M)
		}
	}
	if lp.SampleRate != 0 && lp.LaneRate != 0 {
		if need := lp.RequiredLaneRate(lp.SampleRate); need > lp.LaneRate {
			return fmt.Errorf("%w: %s needs %d b/s per lane, have %d", ErrBandwidth, lp.Role, need, lp.LaneRate)
		}
	}
	return nil
}
