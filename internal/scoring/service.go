package scoring

import (
	"errors"
	"fmt"

	"github.com/danmuck/scorectl/internal/bowling"
	"github.com/danmuck/scorectl/internal/observability"
	"github.com/rs/zerolog"
)

var ErrTooManyRolls = errors.New("scoring: too many rolls")

// FrameView is the external shape of one scored frame.
type FrameView struct {
	Number int                `json:"frame"`
	Kind   bowling.FrameKind  `json:"kind"`
	Rolls  []bowling.Outcome  `json:"rolls"`
	Points []int              `json:"points"`
	Total  bowling.FrameScore `json:"total"`
}

// Result is a scored card. FrameScores carries null for undetermined frames
// and Pending counts them.
type Result struct {
	Frames      []FrameView          `json:"frames"`
	FrameScores []bowling.FrameScore `json:"frame_scores"`
	Score       int                  `json:"score"`
	Pending     int                  `json:"pending"`
	Card        string               `json:"card"`
}

// Service scores raw token sequences and records the outcome in logs and
// metrics. It holds no per-card state and is safe for concurrent use.
type Service struct {
	maxRolls int
	logger   zerolog.Logger
}

// NewService returns a scorer that rejects inputs longer than maxRolls.
// maxRolls <= 0 disables the limit.
func NewService(maxRolls int, logger zerolog.Logger) *Service {
	return &Service{
		maxRolls: maxRolls,
		logger:   logger,
	}
}

func (s *Service) MaxRolls() int {
	return s.maxRolls
}

func (s *Service) Score(tokens []any) (Result, error) {
	if s.maxRolls > 0 && len(tokens) > s.maxRolls {
		observability.RecordInvalidScoreCard()
		return Result{}, fmt.Errorf("%w: got %d, max %d", ErrTooManyRolls, len(tokens), s.maxRolls)
	}

	card, err := bowling.NewScoreCard(tokens)
	if err != nil {
		observability.RecordInvalidScoreCard()
		s.logger.Warn().Err(err).Int("rolls", len(tokens)).Msg("score card rejected")
		return Result{}, err
	}

	score := card.Calculate()
	result := Result{
		FrameScores: card.FrameScores(),
		Score:       score,
		Pending:     card.Pending(),
		Card:        card.String(),
	}

	frames := card.Frames()
	kinds := make([]string, 0, len(frames))
	result.Frames = make([]FrameView, 0, len(frames))
	for _, frame := range frames {
		result.Frames = append(result.Frames, viewFrame(frame))
		kinds = append(kinds, string(frame.Kind()))
	}
	observability.RecordScoreCard(score, kinds)

	s.logger.Debug().
		Int("rolls", len(tokens)).
		Int("frames", len(frames)).
		Int("pending", result.Pending).
		Int("score", score).
		Msg("score card scored")
	return result, nil
}

// ScoreText scores whitespace or comma separated tokens such as "X 7 / 9 0".
func (s *Service) ScoreText(text string) (Result, error) {
	return s.Score(bowling.SplitTokens(text))
}

func viewFrame(frame bowling.Frame) FrameView {
	view := FrameView{
		Number: frame.Index + 1,
		Kind:   frame.Kind(),
		Rolls:  []bowling.Outcome{frame.First.Outcome},
		Points: []int{frame.First.Points},
		Total:  frame.Total,
	}
	if frame.Second != nil {
		view.Rolls = append(view.Rolls, frame.Second.Outcome)
		view.Points = append(view.Points, frame.Second.Points)
	}
	return view
}
