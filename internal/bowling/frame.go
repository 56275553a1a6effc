package bowling

import "fmt"

type FrameKind string

const (
	FrameStrike     FrameKind = "strike"
	FrameSpare      FrameKind = "spare"
	FrameOpen       FrameKind = "open"
	FrameUnfinished FrameKind = "unfinished"
)

// Frame is one or two rolls. Second is nil for a strike and for an
// unfinished trailing frame.
type Frame struct {
	Index  int
	First  Roll
	Second *Roll
	Total  FrameScore
}

func newFrame(index int, first Outcome, second *Outcome) *Frame {
	f := &Frame{
		Index: index,
		First: Roll{Outcome: first},
	}
	f.First.calculate(nil)
	if second != nil {
		r := Roll{Outcome: *second}
		r.calculate(&f.First)
		f.Second = &r
	}
	return f
}

func (f *Frame) Kind() FrameKind {
	switch {
	case f.First.Outcome.IsStrike():
		return FrameStrike
	case f.Second == nil:
		return FrameUnfinished
	case f.Second.Outcome.IsSpare():
		return FrameSpare
	default:
		return FrameOpen
	}
}

// calculate resolves Total from this frame and the frames after it. Strikes
// read the next two rolls and spares the next one; when those rolls have not
// been thrown yet the total stays undetermined. Sibling frames are only read.
func (f *Frame) calculate(frames []*Frame) {
	f.Total = Undetermined()
	next := frameAt(frames, f.Index+1)

	switch f.Kind() {
	case FrameStrike:
		if next == nil {
			return
		}
		bonus := next.First.Points
		if next.Second != nil {
			bonus += next.Second.Points
		} else {
			after := frameAt(frames, f.Index+2)
			if after == nil {
				return
			}
			bonus += after.First.Points
		}
		f.Total = Determined(AllPins + bonus)
	case FrameSpare:
		if next == nil {
			return
		}
		f.Total = Determined(AllPins + next.First.Points)
	case FrameUnfinished:
		return
	default:
		f.Total = Determined(f.First.Points + f.Second.Points)
	}
}

func frameAt(frames []*Frame, index int) *Frame {
	if index < 0 || index >= len(frames) {
		return nil
	}
	return frames[index]
}

func (f *Frame) clone() Frame {
	out := *f
	if f.Second != nil {
		second := *f.Second
		out.Second = &second
	}
	return out
}

func (f *Frame) String() string {
	return fmt.Sprintf("Frame:%d: First Roll:%s Second Roll:%s Points:%s",
		f.Index+1, f.First.String(), f.Second.String(), f.Total)
}
