package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEngine returns an engine with the standard table and a short horizon.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	c := DefaultConstants()
	c.MaxTime = 5
	e, err := NewEngine(c)
	require.NoError(t, err)
	return e
}

// setupTable builds a standard table holding the given balls.
func setupTable(t *testing.T, e *Engine, balls ...Entity) *Table {
	t.Helper()
	tbl := e.NewTable()
	for _, b := range balls {
		require.NoError(t, tbl.Add(b))
	}
	return tbl
}

func TestRollZeroAcceleration(t *testing.T) {
	base := NewRollingBall(1, Coordinate{100, 200}, Coordinate{30, -40}, Coordinate{})
	out := NewRollingBall(1, Coordinate{}, Coordinate{}, Coordinate{})

	Roll(out, base, 2.5)

	assert.InDelta(t, 175.0, out.Pos.X, 1e-9)
	assert.InDelta(t, 100.0, out.Pos.Y, 1e-9)
	assert.Equal(t, base.Vel, out.Vel)
	assert.Equal(t, Coordinate{}, out.Acc)
}

func TestRollConstantDeceleration(t *testing.T) {
	base := NewRollingBall(2, Coordinate{0, 0}, Coordinate{100, 0}, Coordinate{-50, 0})
	out := NewRollingBall(2, Coordinate{}, Coordinate{}, Coordinate{})

	Roll(out, base, 1)

	assert.InDelta(t, 75.0, out.Pos.X, 1e-9)
	assert.InDelta(t, 50.0, out.Vel.X, 1e-9)
	assert.Equal(t, -50.0, out.Acc.X)
}

func TestRollClampsSignReversal(t *testing.T) {
	base := NewRollingBall(3, Coordinate{500, 500}, Coordinate{10, -6}, Coordinate{-20, 4})
	out := NewRollingBall(3, Coordinate{}, Coordinate{}, Coordinate{})

	// x reverses after 0.5s, y after 1.5s.
	Roll(out, base, 1)

	assert.Equal(t, 0.0, out.Vel.X, "x velocity must clamp to exactly zero")
	assert.Equal(t, 0.0, out.Acc.X, "x acceleration must clamp to exactly zero")
	assert.InDelta(t, -2.0, out.Vel.Y, 1e-9)
	assert.Equal(t, 4.0, out.Acc.Y)

	Roll(out, base, 2)
	assert.Equal(t, 0.0, out.Vel.Y)
	assert.Equal(t, 0.0, out.Acc.Y)
}

func TestRollUsesBaseNotPreviousStep(t *testing.T) {
	base := NewRollingBall(4, Coordinate{0, 0}, Coordinate{200, 0}, Coordinate{-150, 0})
	out := NewRollingBall(4, Coordinate{}, Coordinate{}, Coordinate{})

	Roll(out, base, 0.5)
	Roll(out, base, 1.0)

	assert.InDelta(t, 125.0, out.Pos.X, 1e-9)
	assert.InDelta(t, 50.0, out.Vel.X, 1e-9)
}

func TestRollIgnoresNil(t *testing.T) {
	base := NewRollingBall(4, Coordinate{1, 1}, Coordinate{1, 1}, Coordinate{})
	assert.NotPanics(t, func() {
		Roll(nil, base, 1)
		Roll(base, nil, 1)
	})
	assert.Equal(t, Coordinate{1, 1}, base.Pos)
}

func TestStopped(t *testing.T) {
	e := newTestEngine(t)

	slow := NewRollingBall(7, Coordinate{321.5, 654.25}, Coordinate{0.005, 0}, Coordinate{-150, 0})
	still, ok := e.Stopped(slow)
	require.True(t, ok)
	assert.Equal(t, uint8(7), still.Number)
	assert.Equal(t, slow.Pos, still.Pos)

	atThreshold := NewRollingBall(7, Coordinate{1, 1}, Coordinate{0.01, 0}, Coordinate{})
	_, ok = e.Stopped(atThreshold)
	assert.False(t, ok, "speed equal to epsilon is still rolling")

	fast := NewRollingBall(7, Coordinate{1, 1}, Coordinate{3, 4}, Coordinate{})
	_, ok = e.Stopped(fast)
	assert.False(t, ok)
	assert.Equal(t, Coordinate{3, 4}, fast.Vel, "no mutation when rolling")
}

func TestDistance(t *testing.T) {
	e := newTestEngine(t)
	ball := NewRollingBall(0, Coordinate{400, 1000}, Coordinate{1, 0}, Coordinate{})

	tests := []struct {
		name  string
		other Entity
		want  float64
	}{
		{"same centre", NewStillBall(1, Coordinate{400, 1000}), -57},
		{"touching", NewStillBall(1, Coordinate{457, 1000}), 0},
		{"rolling ball", NewRollingBall(2, Coordinate{400, 1100}, Coordinate{}, Coordinate{}), 43},
		{"pocket", NewPocket(Coordinate{400, 1200}), 86},
		{"horizontal cushion", NewHorizontalCushion(900), 71.5},
		{"vertical cushion", NewVerticalCushion(420), -8.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Distance(ball, tt.other)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDistanceRequiresRollingBall(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Distance(NewStillBall(1, Coordinate{}), NewPocket(Coordinate{}))
	assert.ErrorIs(t, err, ErrInvalidOperand)

	_, err = e.Distance(nil, NewPocket(Coordinate{}))
	assert.ErrorIs(t, err, ErrInvalidOperand)

	_, err = e.Distance(NewRollingBall(1, Coordinate{}, Coordinate{}, Coordinate{}), nil)
	assert.ErrorIs(t, err, ErrInvalidOperand)
}

func TestCollideConservesNormalMomentum(t *testing.T) {
	e := newTestEngine(t)
	a := NewRollingBall(1, Coordinate{0, 0}, Coordinate{3, 1}, Coordinate{})
	b := NewRollingBall(2, Coordinate{40, 30}, Coordinate{-1, 2}, Coordinate{})

	n := a.Pos.Sub(b.Pos).Unit()
	before := a.Vel.Sub(b.Vel).Dot(n)
	sumBefore := a.Vel.Add(b.Vel)

	e.collide(a, b)

	after := a.Vel.Sub(b.Vel).Dot(n)
	assert.InDelta(t, -before, after, 1e-9)

	sumAfter := a.Vel.Add(b.Vel)
	assert.InDelta(t, sumBefore.X, sumAfter.X, 1e-9)
	assert.InDelta(t, sumBefore.Y, sumAfter.Y, 1e-9)

	// Drag opposes the new direction of travel with the configured magnitude.
	for _, ball := range []*RollingBall{a, b} {
		assert.InDelta(t, e.Constants().Drag, ball.Acc.Length(), 1e-9)
		assert.Less(t, ball.Acc.Dot(ball.Vel), 0.0)
	}
}

func TestCollideKeepsAccelerationBelowEpsilon(t *testing.T) {
	e := newTestEngine(t)
	a := NewRollingBall(1, Coordinate{0, 0}, Coordinate{500, 0}, Coordinate{-150, 0})
	b := NewRollingBall(2, Coordinate{57, 0}, Coordinate{}, Coordinate{})

	e.collide(a, b)

	assert.InDelta(t, 0.0, a.Vel.Length(), 1e-9)
	assert.Equal(t, Coordinate{-150, 0}, a.Acc, "slow ball keeps its previous acceleration")
	assert.InDelta(t, 500.0, b.Vel.X, 1e-9)
	assert.InDelta(t, -150.0, b.Acc.X, 1e-9)
}

func TestBounceCushions(t *testing.T) {
	e := newTestEngine(t)
	ball := NewRollingBall(0, Coordinate{20, 20}, Coordinate{-30, -40}, Coordinate{90, 120})
	tbl := setupTable(t, e, ball)
	i := tbl.Len() - 1

	require.NoError(t, e.Bounce(tbl, i, 0)) // horizontal cushion at y=0
	assert.Equal(t, Coordinate{-30, 40}, ball.Vel)
	assert.Equal(t, Coordinate{90, -120}, ball.Acc)

	require.NoError(t, e.Bounce(tbl, i, 2)) // vertical cushion at x=0
	assert.Equal(t, Coordinate{30, 40}, ball.Vel)
	assert.Equal(t, Coordinate{-90, -120}, ball.Acc)
}

func TestBouncePocketRemovesBall(t *testing.T) {
	e := newTestEngine(t)
	tbl := setupTable(t, e,
		NewStillBall(1, Coordinate{600, 600}),
		NewRollingBall(2, Coordinate{10, 10}, Coordinate{-1, -1}, Coordinate{}),
		NewStillBall(3, Coordinate{700, 700}),
	)

	require.NoError(t, e.Bounce(tbl, 11, 4))

	balls := tbl.Balls()
	require.Len(t, balls, 2)
	n1, _ := ballNumber(balls[0])
	n3, _ := ballNumber(balls[1])
	assert.Equal(t, uint8(1), n1)
	assert.Equal(t, uint8(3), n3, "insertion order is preserved after capture")
}

func TestBounceWakesStillBall(t *testing.T) {
	e := newTestEngine(t)
	tbl := setupTable(t, e,
		NewRollingBall(0, Coordinate{543, 1000}, Coordinate{1000, 0}, Coordinate{}),
		NewStillBall(5, Coordinate{600, 1000}),
	)

	require.NoError(t, e.Bounce(tbl, 10, 11))

	woke, ok := tbl.Object(11).(*RollingBall)
	require.True(t, ok, "still ball becomes rolling")
	assert.Equal(t, uint8(5), woke.Number)
	assert.Equal(t, Coordinate{600, 1000}, woke.Pos)
	assert.InDelta(t, 1000.0, woke.Vel.X, 1e-9)

	cue := tbl.Object(10).(*RollingBall)
	assert.InDelta(t, 0.0, cue.Vel.Length(), 1e-9)
}

func TestBounceRejectsInvalidOperands(t *testing.T) {
	e := newTestEngine(t)
	tbl := setupTable(t, e,
		NewStillBall(1, Coordinate{600, 600}),
		NewRollingBall(2, Coordinate{700, 700}, Coordinate{1, 0}, Coordinate{}),
	)

	assert.ErrorIs(t, e.Bounce(tbl, 10, 11), ErrInvalidOperand, "first operand is still")
	assert.ErrorIs(t, e.Bounce(tbl, 0, 11), ErrInvalidOperand, "first operand is a cushion")
	assert.ErrorIs(t, e.Bounce(tbl, 11, 11), ErrInvalidOperand, "self bounce")
	assert.ErrorIs(t, e.Bounce(tbl, 11, 42), ErrInvalidOperand, "missing target")
}

func TestSegmentHeadOnCollision(t *testing.T) {
	e := newTestEngine(t)
	tbl := setupTable(t, e,
		NewRollingBall(0, Coordinate{400, 1000}, Coordinate{1000, 0}, Coordinate{}),
		NewStillBall(1, Coordinate{600, 1000}),
	)

	next, ev := e.Segment(tbl)
	require.NotNil(t, next)

	assert.Equal(t, EventCollision, ev.Kind)
	assert.Equal(t, uint8(0), ev.Ball)
	assert.Equal(t, KindStillBall.String(), ev.Target)
	require.NotNil(t, ev.TargetBall)
	assert.Equal(t, uint8(1), *ev.TargetBall)
	// Contact once the centres are closer than one diameter: 143mm at 1000mm/s.
	assert.InDelta(t, 0.143, ev.Elapsed, 2e-4)
	assert.InDelta(t, 0.143, next.Time, 2e-4)

	cue, ok := next.Object(10).(*RollingBall)
	require.True(t, ok)
	object, ok := next.Object(11).(*RollingBall)
	require.True(t, ok, "struck ball is rolling")

	assert.Less(t, cue.Vel.Length(), 1000.0, "cue ball slowed down")
	assert.InDelta(t, 1000.0, object.Vel.X, 1e-6)
	assert.InDelta(t, -150.0, object.Acc.X, 1e-6)

	// The input table is the kinematic basis and must be untouched.
	assert.Equal(t, 0.0, tbl.Time)
	assert.Equal(t, Coordinate{400, 1000}, tbl.Object(10).(*RollingBall).Pos)
	_, stillStill := tbl.Object(11).(*StillBall)
	assert.True(t, stillStill)
}

func TestSegmentStopsSlowBallOnFirstStep(t *testing.T) {
	e := newTestEngine(t)
	tbl := setupTable(t, e,
		NewRollingBall(4, Coordinate{400, 1000}, Coordinate{0.005, 0}, Coordinate{}),
	)
	tbl.Time = 2.5

	next, ev := e.Segment(tbl)
	require.NotNil(t, next)

	assert.Equal(t, EventStop, ev.Kind)
	assert.Equal(t, uint8(4), ev.Ball)
	assert.Equal(t, e.Constants().SimRate, ev.Elapsed)
	assert.Equal(t, 2.5, next.Time)

	still, ok := next.Object(10).(*StillBall)
	require.True(t, ok)
	assert.Equal(t, uint8(4), still.Number)
}

func TestSegmentSettlesBallWithStaleAcceleration(t *testing.T) {
	e := newTestEngine(t)
	// A ball left at rest by a collision keeps its old drag.
	tbl := setupTable(t, e,
		NewRollingBall(0, Coordinate{400, 1000}, Coordinate{}, Coordinate{-150, 0}),
	)

	next, ev := e.Segment(tbl)
	require.NotNil(t, next)
	assert.Equal(t, EventStop, ev.Kind)
	still := next.Object(10).(*StillBall)
	assert.Equal(t, Coordinate{400, 1000}, still.Pos)
}

func TestSegmentPocketCapture(t *testing.T) {
	e := newTestEngine(t)
	tbl := setupTable(t, e,
		NewRollingBall(3, Coordinate{300, 1350}, Coordinate{-1000, 0}, Coordinate{}),
	)

	next, ev := e.Segment(tbl)
	require.NotNil(t, next)

	assert.Equal(t, EventCollision, ev.Kind)
	assert.Equal(t, KindPocket.String(), ev.Target)
	assert.Equal(t, uint8(3), ev.Ball)
	assert.Nil(t, ev.TargetBall)
	assert.Empty(t, next.Balls())
	assert.Equal(t, 10, next.Len())
	assert.Len(t, tbl.Balls(), 1, "input keeps its ball")
}

func TestSegmentCushionBounce(t *testing.T) {
	e := newTestEngine(t)
	tbl := setupTable(t, e,
		NewRollingBall(2, Coordinate{1200, 1000}, Coordinate{1000, 0}, Coordinate{}),
	)

	next, ev := e.Segment(tbl)
	require.NotNil(t, next)

	assert.Equal(t, EventCollision, ev.Kind)
	assert.Equal(t, KindVerticalCushion.String(), ev.Target)
	ball := next.Object(10).(*RollingBall)
	assert.InDelta(t, -1000.0, ball.Vel.X, 1e-9)
	assert.Greater(t, ball.Pos.X, 1350-28.5)
}

func TestSegmentIgnoresSeparatingContact(t *testing.T) {
	e := newTestEngine(t)
	// Overlapping a cushion but already moving away from it: the previous
	// segment resolved this contact.
	tbl := setupTable(t, e,
		NewRollingBall(2, Coordinate{1322, 1000}, Coordinate{-0.5, 0}, Coordinate{}),
	)
	c := e.Constants()
	c.MaxTime = 0.01
	short, err := NewEngine(c)
	require.NoError(t, err)

	next, ev := short.Segment(tbl)
	assert.Nil(t, next)
	assert.Equal(t, EventTimeout, ev.Kind)
}

func TestSegmentNothingRolling(t *testing.T) {
	e := newTestEngine(t)
	tbl := setupTable(t, e, NewStillBall(0, Coordinate{675, 2000}))
	tbl.Time = 3

	next, ev := e.Segment(tbl)

	assert.Nil(t, next)
	assert.Equal(t, EventNone, ev.Kind)
	assert.Equal(t, 3.0, tbl.Time)

	next, ev = e.Segment(nil)
	assert.Nil(t, next)
	assert.Equal(t, EventNone, ev.Kind)
}

func TestSegmentTimeout(t *testing.T) {
	c := DefaultConstants()
	c.MaxTime = 0.001
	e, err := NewEngine(c)
	require.NoError(t, err)

	tbl := setupTable(t, e,
		NewRollingBall(0, Coordinate{675, 1000}, Coordinate{1, 0}, Coordinate{}),
	)

	next, ev := e.Segment(tbl)
	assert.Nil(t, next)
	assert.Equal(t, EventTimeout, ev.Kind)
}

func TestDeterminism(t *testing.T) {
	// Same input should always produce the same output
	e := newTestEngine(t)
	run := func() TableState {
		tbl := setupTable(t, e,
			NewRollingBall(0, Coordinate{300, 1500}, Coordinate{800, -300}, Coordinate{}),
			NewStillBall(1, Coordinate{500, 1420}),
		)
		next, _ := e.Segment(tbl)
		require.NotNil(t, next)
		return next.State()
	}

	assert.Equal(t, run(), run())
}
