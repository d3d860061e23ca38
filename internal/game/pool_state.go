package game

import "fmt"

// BallState is the serialisable view of a ball.
type BallState struct {
	Number  uint8   `json:"number" yaml:"number"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	VX      float64 `json:"vx,omitempty" yaml:"vx,omitempty"`
	VY      float64 `json:"vy,omitempty" yaml:"vy,omitempty"`
	AX      float64 `json:"ax,omitempty" yaml:"ax,omitempty"`
	AY      float64 `json:"ay,omitempty" yaml:"ay,omitempty"`
	Rolling bool    `json:"rolling" yaml:"rolling,omitempty"`
}

// TableState is the serialisable view of a table. Fixtures are implied by the
// engine constants and are not part of it.
type TableState struct {
	Time  float64     `json:"time" yaml:"time"`
	Balls []BallState `json:"balls" yaml:"balls"`
}

// State returns the serialisable view of t.
func (t *Table) State() TableState {
	s := TableState{Balls: []BallState{}}
	if t == nil {
		return s
	}
	s.Time = t.Time
	for _, b := range t.balls {
		switch b := b.(type) {
		case *StillBall:
			s.Balls = append(s.Balls, BallState{Number: b.Number, X: b.Pos.X, Y: b.Pos.Y})
		case *RollingBall:
			s.Balls = append(s.Balls, BallState{
				Number: b.Number,
				X:      b.Pos.X, Y: b.Pos.Y,
				VX: b.Vel.X, VY: b.Vel.Y,
				AX: b.Acc.X, AY: b.Acc.Y,
				Rolling: true,
			})
		}
	}
	return s
}

// TableFromState builds a standard table and adds the balls of s in order.
// A ball is rolling when it is flagged so or has a velocity; in the latter
// case drag is derived from the velocity.
func (e *Engine) TableFromState(s TableState) (*Table, error) {
	t := e.NewTable()
	t.Time = s.Time

	seen := make(map[uint8]bool, len(s.Balls))
	for _, b := range s.Balls {
		if seen[b.Number] {
			return nil, fmt.Errorf("%w: duplicate ball number %d", ErrInvalidOperand, b.Number)
		}
		seen[b.Number] = true

		pos := Coordinate{b.X, b.Y}
		vel := Coordinate{b.VX, b.VY}
		var ent Entity
		switch {
		case b.Rolling:
			ent = NewRollingBall(b.Number, pos, vel, Coordinate{b.AX, b.AY})
		case !vel.IsZero():
			ent = NewRollingBall(b.Number, pos, vel, e.DragFor(vel))
		default:
			ent = NewStillBall(b.Number, pos)
		}
		if err := t.Add(ent); err != nil {
			return nil, fmt.Errorf("ball %d: %w", b.Number, err)
		}
	}
	return t, nil
}
