package game

import (
	"fmt"
	"math"
)

// Engine advances tables under a fixed set of physical constants. An Engine
// is immutable and safe for concurrent use; every call works on its own
// table copies.
type Engine struct {
	c Constants
}

// NewEngine validates c and returns an engine bound to it.
func NewEngine(c Constants) (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Engine{c: c}, nil
}

// Constants returns the parameters the engine was built with.
func (e *Engine) Constants() Constants {
	return e.c
}

// EventKind describes how a segment ended.
type EventKind string

const (
	EventNone      EventKind = "none"      // nothing was rolling
	EventTimeout   EventKind = "timeout"   // horizon exhausted without an event
	EventStop      EventKind = "stop"      // a ball came to rest
	EventCollision EventKind = "collision" // a rolling ball touched another object
)

// Event records the outcome of one segment.
type Event struct {
	Kind       EventKind `json:"kind"`
	Time       float64   `json:"time"`    // table time when the event fired
	Elapsed    float64   `json:"elapsed"` // seconds since segment start
	Ball       uint8     `json:"ball"`
	Target     string    `json:"target,omitempty"`
	TargetBall *uint8    `json:"target_ball,omitempty"`
}

// Distance returns the signed gap between the rolling ball and other.
// Negative values mean the two are in contact.
func (e *Engine) Distance(ball, other Entity) (float64, error) {
	a, ok := ball.(*RollingBall)
	if !ok || a == nil {
		return 0, fmt.Errorf("%w: distance needs a rolling ball, got %s", ErrInvalidOperand, kindName(ball))
	}

	switch o := other.(type) {
	case *RollingBall:
		return a.Pos.Sub(o.Pos).Length() - e.c.BallDiameter, nil
	case *StillBall:
		return a.Pos.Sub(o.Pos).Length() - e.c.BallDiameter, nil
	case *Pocket:
		return a.Pos.Sub(o.Pos).Length() - e.c.PocketRadius, nil
	case *HorizontalCushion:
		return math.Abs(a.Pos.Y-o.Y) - e.c.BallRadius, nil
	case *VerticalCushion:
		return math.Abs(a.Pos.X-o.X) - e.c.BallRadius, nil
	}
	return 0, fmt.Errorf("%w: no distance to %s", ErrInvalidOperand, kindName(other))
}

// Roll sets out to the state base reaches after elapsed seconds of constant
// acceleration. An axis whose velocity would change sign is clamped to zero
// velocity and zero acceleration instead.
func Roll(out, base *RollingBall, elapsed float64) {
	if out == nil || base == nil {
		return
	}
	t := elapsed
	p, v, a := base.Pos, base.Vel, base.Acc

	out.Pos.X = p.X + v.X*t + 0.5*a.X*t*t
	out.Pos.Y = p.Y + v.Y*t + 0.5*a.Y*t*t
	out.Vel.X = v.X + a.X*t
	out.Vel.Y = v.Y + a.Y*t
	out.Acc = a

	if v.X*out.Vel.X < 0 {
		out.Vel.X = 0
		out.Acc.X = 0
	}
	if v.Y*out.Vel.Y < 0 {
		out.Vel.Y = 0
		out.Acc.Y = 0
	}
}

// Stopped reports whether b has slowed below the rest threshold and, if so,
// returns the still ball that replaces it.
func (e *Engine) Stopped(b *RollingBall) (*StillBall, bool) {
	if b == nil || b.Vel.Length() >= e.c.VelEpsilon {
		return nil, false
	}
	return NewStillBall(b.Number, b.Pos), true
}

// Bounce resolves a contact between the rolling ball at view position i and
// the object at position j of t.
func (e *Engine) Bounce(t *Table, i, j int) error {
	a, ok := t.Object(i).(*RollingBall)
	if !ok {
		return fmt.Errorf("%w: object %d is %s, not a rolling ball", ErrInvalidOperand, i, kindName(t.Object(i)))
	}
	if i == j {
		return fmt.Errorf("%w: ball %d cannot bounce off itself", ErrInvalidOperand, a.Number)
	}

	switch b := t.Object(j).(type) {
	case *HorizontalCushion:
		a.Vel.Y = -a.Vel.Y
		a.Acc.Y = -a.Acc.Y
	case *VerticalCushion:
		a.Vel.X = -a.Vel.X
		a.Acc.X = -a.Acc.X
	case *Pocket:
		t.remove(i)
	case *StillBall:
		woke := NewRollingBall(b.Number, b.Pos, Coordinate{}, Coordinate{})
		t.replace(j, woke)
		e.collide(a, woke)
	case *RollingBall:
		e.collide(a, b)
	default:
		return fmt.Errorf("%w: no object at %d", ErrInvalidOperand, j)
	}
	return nil
}

// collide exchanges the normal component of the relative velocity between
// two equal-mass balls, then points each moving ball's drag against its new
// direction of travel.
func (e *Engine) collide(a, b *RollingBall) {
	rab := a.Pos.Sub(b.Pos)
	if rab.IsZero() {
		// Coincident centres define no contact normal.
		return
	}
	n := rab.Unit()
	vRelN := a.Vel.Sub(b.Vel).Dot(n)

	a.Vel = a.Vel.Sub(n.Scale(vRelN))
	b.Vel = b.Vel.Add(n.Scale(vRelN))

	e.applyDrag(a)
	e.applyDrag(b)
}

func (e *Engine) applyDrag(b *RollingBall) {
	speed := b.Vel.Length()
	if speed > e.c.VelEpsilon {
		b.Acc = b.Vel.Scale(-e.c.Drag / speed)
	}
}

// DragFor returns the deceleration a ball launched with vel receives.
func (e *Engine) DragFor(vel Coordinate) Coordinate {
	speed := vel.Length()
	if speed <= e.c.VelEpsilon {
		return Coordinate{}
	}
	return vel.Scale(-e.c.Drag / speed)
}

// Segment advances t to its next event: the first ball coming to rest or the
// first contact, whichever happens first. t itself is never modified. A nil
// table is returned when nothing is rolling (EventNone) or when the horizon
// passes without an event (EventTimeout).
//
// A contact only counts while the rolling ball is closing on the other
// object; an overlap with a ball or cushion it is already moving away from
// is ignored. Pockets capture regardless of direction.
func (e *Engine) Segment(t *Table) (*Table, Event) {
	if t.RollingCount() == 0 {
		return nil, Event{Kind: EventNone}
	}

	result := t.Copy()
	steps := int(math.Floor(e.c.MaxTime/e.c.SimRate + 1e-9))
	for n := 1; n <= steps; n++ {
		elapsed := float64(n) * e.c.SimRate

		e.rollBalls(result, t, elapsed)

		if ev, ok := e.settleFirst(result); ok {
			ev.Time, ev.Elapsed = result.Time, elapsed
			return result, ev
		}
		if ev, ok := e.collideFirst(result); ok {
			ev.Time, ev.Elapsed = result.Time, elapsed
			return result, ev
		}

		result.Time = t.Time + elapsed
	}

	result.Free()
	return nil, Event{Kind: EventTimeout}
}

// rollBalls integrates every rolling ball of result from the ball at the same
// position in base.
func (e *Engine) rollBalls(result, base *Table, elapsed float64) {
	for k, b := range result.balls {
		r, ok := b.(*RollingBall)
		if !ok || k >= len(base.balls) {
			continue
		}
		origin, ok := base.balls[k].(*RollingBall)
		if !ok {
			continue
		}
		// A ball that starts the segment below the rest threshold is left
		// where it is so the rest check settles it instead of letting a stale
		// acceleration set it moving again.
		if origin.Vel.Length() < e.c.VelEpsilon {
			*r = *origin
			continue
		}
		Roll(r, origin, elapsed)
	}
}

// settleFirst converts the first rolling ball below the rest threshold.
func (e *Engine) settleFirst(t *Table) (Event, bool) {
	for k, b := range t.balls {
		r, ok := b.(*RollingBall)
		if !ok {
			continue
		}
		if still, stopped := e.Stopped(r); stopped {
			t.balls[k] = still
			return Event{Kind: EventStop, Ball: still.Number}, true
		}
	}
	return Event{}, false
}

// collideFirst bounces the first rolling ball found in contact with, and
// closing on, another object, scanning in table order.
func (e *Engine) collideFirst(t *Table) (Event, bool) {
	n := t.Len()
	for i := len(t.fixtures); i < n; i++ {
		a, ok := t.Object(i).(*RollingBall)
		if !ok {
			continue
		}
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			other := t.Object(j)
			d, err := e.Distance(a, other)
			if err != nil || d >= 0 || !approaching(a, other) {
				continue
			}

			ev := Event{Kind: EventCollision, Ball: a.Number, Target: other.Kind().String()}
			if num, ok := ballNumber(other); ok {
				ev.TargetBall = &num
			}
			if err := e.Bounce(t, i, j); err != nil {
				continue
			}
			return ev, true
		}
	}
	return Event{}, false
}

func kindName(e Entity) string {
	if e == nil {
		return "nothing"
	}
	return e.Kind().String()
}
