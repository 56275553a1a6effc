// Package bowling owns ten-pin score-card construction and scoring.
//
// Ownership boundary:
// - roll token classification (0-9, / and X)
// - frame grouping and strike/spare bonus look-ahead
// - aggregate and per-frame scores
// - diagnostic rendering of a score card
package bowling
