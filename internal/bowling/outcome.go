package bowling

import (
	"encoding/json"
	"math"
	"strconv"
)

const (
	StrikeMarker = "X"
	SpareMarker  = "/"

	// AllPins is the pin count of a full rack.
	AllPins = 10
)

type outcomeKind uint8

const (
	kindPins outcomeKind = iota
	kindStrike
	kindSpare
)

// Outcome is what a single ball did: a strike, a spare, or 0-9 pins.
// The zero value is Pins(0).
type Outcome struct {
	kind outcomeKind
	pins int
}

var (
	Strike = Outcome{kind: kindStrike}
	Spare  = Outcome{kind: kindSpare}
)

// Pins returns a plain outcome. ok is false outside 0-9; ten pins on one
// ball is always a Strike or a Spare.
func Pins(n int) (Outcome, bool) {
	if n < 0 || n >= AllPins {
		return Outcome{}, false
	}
	return Outcome{kind: kindPins, pins: n}, true
}

func (o Outcome) IsStrike() bool { return o.kind == kindStrike }
func (o Outcome) IsSpare() bool  { return o.kind == kindSpare }

// PinCount is the number of pins for a plain outcome and 0 for markers.
func (o Outcome) PinCount() int {
	if o.kind != kindPins {
		return 0
	}
	return o.pins
}

func (o Outcome) String() string {
	switch o.kind {
	case kindStrike:
		return StrikeMarker
	case kindSpare:
		return SpareMarker
	default:
		return strconv.Itoa(o.pins)
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.kind == kindPins {
		return json.Marshal(o.pins)
	}
	return json.Marshal(o.String())
}

// classify maps one raw token onto an Outcome. Integers of any Go kind are
// accepted, as are integral floats and json.Number so that decoded JSON
// arrays can be passed straight through.
func classify(token any) (Outcome, bool) {
	switch v := token.(type) {
	case Outcome:
		return v, true
	case string:
		switch v {
		case StrikeMarker:
			return Strike, true
		case SpareMarker:
			return Spare, true
		}
		return Outcome{}, false
	case int:
		return pinsFromInt64(int64(v))
	case int8:
		return pinsFromInt64(int64(v))
	case int16:
		return pinsFromInt64(int64(v))
	case int32:
		return pinsFromInt64(int64(v))
	case int64:
		return pinsFromInt64(v)
	case uint:
		return pinsFromUint64(uint64(v))
	case uint8:
		return pinsFromUint64(uint64(v))
	case uint16:
		return pinsFromUint64(uint64(v))
	case uint32:
		return pinsFromUint64(uint64(v))
	case uint64:
		return pinsFromUint64(v)
	case float32:
		return pinsFromFloat64(float64(v))
	case float64:
		return pinsFromFloat64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return Outcome{}, false
		}
		return pinsFromInt64(n)
	default:
		return Outcome{}, false
	}
}

func pinsFromInt64(n int64) (Outcome, bool) {
	if n < 0 || n >= AllPins {
		return Outcome{}, false
	}
	return Pins(int(n))
}

func pinsFromUint64(n uint64) (Outcome, bool) {
	if n >= AllPins {
		return Outcome{}, false
	}
	return Pins(int(n))
}

func pinsFromFloat64(f float64) (Outcome, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return Outcome{}, false
	}
	if f < 0 || f >= AllPins {
		return Outcome{}, false
	}
	return Pins(int(f))
}
