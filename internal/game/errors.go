package game

import "errors"

var (
	// ErrInvalidOperand is returned when an operation receives an entity of
	// the wrong kind, e.g. a distance measured from a ball that is not rolling.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrCapacityExceeded is returned when adding to a full table.
	ErrCapacityExceeded = errors.New("table capacity exceeded")

	ErrInvalidConstants = errors.New("invalid constants")

	// ErrNoCueBall is returned by Shoot when ball 0 is not on the table.
	ErrNoCueBall = errors.New("cue ball is not on the table")

	// ErrSegmentLimit is returned by Shoot when the table is still moving
	// after the configured number of segments.
	ErrSegmentLimit = errors.New("segment limit reached before table came to rest")
)
