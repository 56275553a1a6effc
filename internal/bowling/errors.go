package bowling

import (
	"errors"
	"fmt"
)

var ErrInvalidRoll = errors.New("bowling: invalid roll")

// InvalidRollError reports the token that stopped score-card construction.
type InvalidRollError struct {
	Index  int
	Token  any
	Reason string
}

func (e *InvalidRollError) Error() string {
	msg := fmt.Sprintf("bowling: invalid roll at index %d: expected 0-9, / or X, found %s",
		e.Index, describeToken(e.Token))
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *InvalidRollError) Unwrap() error {
	return ErrInvalidRoll
}

func describeToken(token any) string {
	switch v := token.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
