package bowling

import (
	"fmt"
	"strings"
)

// ScoreCard groups a flat sequence of roll tokens into frames and scores
// them.
type ScoreCard struct {
	frames []*Frame
	score  int
}

// NewScoreCard builds the frames for tokens. Valid tokens are the integers
// 0-9, StrikeMarker and SpareMarker. The first invalid token aborts
// construction with an *InvalidRollError matching ErrInvalidRoll.
//
// A strike is only accepted as the first ball of a frame and a spare only as
// the second. A first ball left unpaired by the last token becomes an
// unfinished final frame.
func NewScoreCard(tokens []any) (*ScoreCard, error) {
	sc := &ScoreCard{
		frames: make([]*Frame, 0, len(tokens)/2+1),
	}

	var carry *Outcome
	for i, token := range tokens {
		o, ok := classify(token)
		if !ok {
			return nil, &InvalidRollError{Index: i, Token: token}
		}

		switch {
		case o.IsStrike():
			if carry != nil {
				return nil, &InvalidRollError{Index: i, Token: token, Reason: "strike after an unpaired first ball"}
			}
			sc.push(o, nil)
		case o.IsSpare():
			if carry == nil {
				return nil, &InvalidRollError{Index: i, Token: token, Reason: "spare without a first ball"}
			}
			sc.push(*carry, &o)
			carry = nil
		case carry != nil:
			sc.push(*carry, &o)
			carry = nil
		default:
			first := o
			carry = &first
		}
	}

	if carry != nil {
		sc.push(*carry, nil)
	}
	return sc, nil
}

func (sc *ScoreCard) push(first Outcome, second *Outcome) {
	sc.frames = append(sc.frames, newFrame(len(sc.frames), first, second))
}

// Calculate scores every frame in order and returns the aggregate. The
// aggregate is reset first, so repeated calls give the same result.
func (sc *ScoreCard) Calculate() int {
	sc.score = 0
	for _, frame := range sc.frames {
		frame.calculate(sc.frames)
		if points, ok := frame.Total.Value(); ok {
			sc.score += points
		}
	}
	return sc.score
}

// Score is the aggregate from the last Calculate call.
func (sc *ScoreCard) Score() int {
	return sc.score
}

// FrameScores lists each frame's total in frame order. Before Calculate
// every entry is undetermined.
func (sc *ScoreCard) FrameScores() []FrameScore {
	out := make([]FrameScore, len(sc.frames))
	for i, frame := range sc.frames {
		out[i] = frame.Total
	}
	return out
}

// Pending counts frames whose total is still undetermined.
func (sc *ScoreCard) Pending() int {
	n := 0
	for _, frame := range sc.frames {
		if !frame.Total.IsDetermined() {
			n++
		}
	}
	return n
}

// Frames returns copies of the frames.
func (sc *ScoreCard) Frames() []Frame {
	out := make([]Frame, len(sc.frames))
	for i, frame := range sc.frames {
		out[i] = frame.clone()
	}
	return out
}

func (sc *ScoreCard) Len() int {
	return len(sc.frames)
}

func (sc *ScoreCard) String() string {
	var b strings.Builder
	for _, frame := range sc.frames {
		b.WriteString(frame.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Bowling Score:%d", sc.score)
	return b.String()
}
