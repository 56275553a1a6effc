package bowling

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FrameScore is a frame total that may not be known yet. The zero value is
// undetermined, which is distinct from a determined score of 0.
type FrameScore struct {
	points     int
	determined bool
}

func Determined(points int) FrameScore {
	return FrameScore{points: points, determined: true}
}

func Undetermined() FrameScore {
	return FrameScore{}
}

func (s FrameScore) Value() (int, bool) {
	return s.points, s.determined
}

func (s FrameScore) IsDetermined() bool {
	return s.determined
}

func (s FrameScore) String() string {
	if !s.determined {
		return "-"
	}
	return strconv.Itoa(s.points)
}

func (s FrameScore) MarshalJSON() ([]byte, error) {
	if !s.determined {
		return []byte("null"), nil
	}
	return json.Marshal(s.points)
}

func (s *FrameScore) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Undetermined()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = Determined(n)
	return nil
}
