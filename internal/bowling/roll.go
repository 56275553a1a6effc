package bowling

// Roll is one ball thrown and the points it is worth on its own.
type Roll struct {
	Outcome Outcome `json:"outcome"`
	Points  int     `json:"points"`
}

// calculate resolves Points. prev is the first ball of the same frame and is
// only read for a spare; frame construction guarantees it is set then.
func (r *Roll) calculate(prev *Roll) {
	switch {
	case r.Outcome.IsStrike():
		r.Points = AllPins
	case r.Outcome.IsSpare():
		r.Points = AllPins - prev.Points
	default:
		r.Points = r.Outcome.PinCount()
	}
}

func (r *Roll) String() string {
	if r == nil {
		return "-"
	}
	return r.Outcome.String()
}
