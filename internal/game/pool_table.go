package game

import "fmt"

// Kind identifies the variant of an Entity.
type Kind uint8

const (
	KindStillBall Kind = iota
	KindRollingBall
	KindPocket
	KindHorizontalCushion
	KindVerticalCushion
)

func (k Kind) String() string {
	switch k {
	case KindStillBall:
		return "still_ball"
	case KindRollingBall:
		return "rolling_ball"
	case KindPocket:
		return "pocket"
	case KindHorizontalCushion:
		return "hcushion"
	case KindVerticalCushion:
		return "vcushion"
	default:
		return "unknown"
	}
}

// IsBall reports whether k is one of the ball kinds.
func (k Kind) IsBall() bool {
	return k == KindStillBall || k == KindRollingBall
}

// Entity is one physical object on the table. The set of implementations is
// closed: StillBall, RollingBall, Pocket, HorizontalCushion, VerticalCushion.
type Entity interface {
	Kind() Kind
	String() string
	clone() Entity
}

// StillBall is a ball at rest. Number 0 is the cue ball.
type StillBall struct {
	Number uint8
	Pos    Coordinate
}

// RollingBall is a ball moving under constant acceleration.
type RollingBall struct {
	Number uint8
	Pos    Coordinate
	Vel    Coordinate
	Acc    Coordinate
}

// Pocket captures any rolling ball whose centre enters its radius.
type Pocket struct {
	Pos Coordinate
}

// HorizontalCushion is an infinite rail along y = Y.
type HorizontalCushion struct {
	Y float64
}

// VerticalCushion is an infinite rail along x = X.
type VerticalCushion struct {
	X float64
}

func NewStillBall(number uint8, pos Coordinate) *StillBall {
	return &StillBall{Number: number, Pos: pos}
}

func NewRollingBall(number uint8, pos, vel, acc Coordinate) *RollingBall {
	return &RollingBall{Number: number, Pos: pos, Vel: vel, Acc: acc}
}

func NewPocket(pos Coordinate) *Pocket {
	return &Pocket{Pos: pos}
}

func NewHorizontalCushion(y float64) *HorizontalCushion {
	return &HorizontalCushion{Y: y}
}

func NewVerticalCushion(x float64) *VerticalCushion {
	return &VerticalCushion{X: x}
}

func (*StillBall) Kind() Kind         { return KindStillBall }
func (*RollingBall) Kind() Kind       { return KindRollingBall }
func (*Pocket) Kind() Kind            { return KindPocket }
func (*HorizontalCushion) Kind() Kind { return KindHorizontalCushion }
func (*VerticalCushion) Kind() Kind   { return KindVerticalCushion }

func (b *StillBall) clone() Entity         { c := *b; return &c }
func (b *RollingBall) clone() Entity       { c := *b; return &c }
func (p *Pocket) clone() Entity            { c := *p; return &c }
func (h *HorizontalCushion) clone() Entity { c := *h; return &c }
func (v *VerticalCushion) clone() Entity   { c := *v; return &c }

// ballNumber returns the number of a ball entity.
func ballNumber(e Entity) (uint8, bool) {
	switch b := e.(type) {
	case *StillBall:
		return b.Number, true
	case *RollingBall:
		return b.Number, true
	}
	return 0, false
}

// ballPos returns the centre of a ball entity.
func ballPos(e Entity) (Coordinate, bool) {
	switch b := e.(type) {
	case *StillBall:
		return b.Pos, true
	case *RollingBall:
		return b.Pos, true
	}
	return Coordinate{}, false
}

// CopyEntity returns an independent duplicate of src, or nil when src is nil.
func CopyEntity(src Entity) Entity {
	if src == nil {
		return nil
	}
	return src.clone()
}

// Table owns the cushions, pockets and balls of one simulation state.
// Objects are addressed through a single ordered view: the ten standard
// fixtures first, then extra fixtures, then balls in insertion order.
type Table struct {
	Time float64

	fixtures []Entity
	balls    []Entity // *StillBall or *RollingBall
	capacity int
}

// NewTable returns a table with its four cushions and six pockets installed
// and no balls.
func (e *Engine) NewTable() *Table {
	l, w := e.c.TableLength, e.c.TableWidth
	fixtures := make([]Entity, 0, standardFixtures)
	fixtures = append(fixtures,
		NewHorizontalCushion(0),
		NewHorizontalCushion(l),
		NewVerticalCushion(0),
		NewVerticalCushion(w),

		NewPocket(Coordinate{0, 0}),
		NewPocket(Coordinate{0, l / 2}),
		NewPocket(Coordinate{0, l}),
		NewPocket(Coordinate{w, 0}),
		NewPocket(Coordinate{w, l / 2}),
		NewPocket(Coordinate{w, l}),
	)
	return &Table{
		fixtures: fixtures,
		balls:    make([]Entity, 0, e.c.MaxObjects-standardFixtures),
		capacity: e.c.MaxObjects,
	}
}

// Len is the number of objects currently on the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.fixtures) + len(t.balls)
}

// Object returns the object at position i of the ordered view, or nil when i
// is out of range.
func (t *Table) Object(i int) Entity {
	if t == nil || i < 0 {
		return nil
	}
	if i < len(t.fixtures) {
		return t.fixtures[i]
	}
	i -= len(t.fixtures)
	if i < len(t.balls) {
		return t.balls[i]
	}
	return nil
}

// Objects returns the ordered view. The slice is fresh; the entities are not.
func (t *Table) Objects() []Entity {
	if t == nil {
		return nil
	}
	out := make([]Entity, 0, t.Len())
	out = append(out, t.fixtures...)
	return append(out, t.balls...)
}

// Balls returns the balls in insertion order.
func (t *Table) Balls() []Entity {
	if t == nil {
		return nil
	}
	return append([]Entity(nil), t.balls...)
}

// Add inserts e after the existing objects of its group.
func (t *Table) Add(e Entity) error {
	if t == nil || e == nil {
		return fmt.Errorf("%w: nil table or entity", ErrInvalidOperand)
	}
	if t.Len() >= t.capacity {
		return fmt.Errorf("%w: %d objects", ErrCapacityExceeded, t.capacity)
	}
	if e.Kind().IsBall() {
		t.balls = append(t.balls, e)
	} else {
		t.fixtures = append(t.fixtures, e)
	}
	return nil
}

// Copy returns a deep copy of t sharing no entities with it.
func (t *Table) Copy() *Table {
	if t == nil {
		return nil
	}
	c := &Table{
		Time:     t.Time,
		fixtures: make([]Entity, len(t.fixtures)),
		balls:    make([]Entity, len(t.balls), cap(t.balls)),
		capacity: t.capacity,
	}
	for i, f := range t.fixtures {
		c.fixtures[i] = CopyEntity(f)
	}
	for i, b := range t.balls {
		c.balls[i] = CopyEntity(b)
	}
	return c
}

// Free drops every entity the table owns. Calling it on a nil or already
// freed table is a no-op.
func (t *Table) Free() {
	if t == nil {
		return
	}
	for i := range t.fixtures {
		t.fixtures[i] = nil
	}
	for i := range t.balls {
		t.balls[i] = nil
	}
	t.fixtures = nil
	t.balls = nil
}

// RollingCount returns the number of rolling balls.
func (t *Table) RollingCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, b := range t.balls {
		if b.Kind() == KindRollingBall {
			n++
		}
	}
	return n
}

// CueBall returns ball number 0, or nil when it is not on the table.
func (t *Table) CueBall() Entity {
	if t == nil {
		return nil
	}
	for _, b := range t.balls {
		if n, _ := ballNumber(b); n == 0 {
			return b
		}
	}
	return nil
}

// ballIndex maps an ordered-view position onto t.balls.
func (t *Table) ballIndex(i int) (int, bool) {
	k := i - len(t.fixtures)
	if k < 0 || k >= len(t.balls) {
		return 0, false
	}
	return k, true
}

// replace swaps the object at view position i for e. Fixtures are immutable
// and cannot be replaced.
func (t *Table) replace(i int, e Entity) bool {
	k, ok := t.ballIndex(i)
	if !ok || e == nil || !e.Kind().IsBall() {
		return false
	}
	t.balls[k] = e
	return true
}

// remove drops the ball at view position i.
func (t *Table) remove(i int) bool {
	k, ok := t.ballIndex(i)
	if !ok {
		return false
	}
	t.balls = append(t.balls[:k], t.balls[k+1:]...)
	return true
}

// Roll returns a copy of t with every rolling ball advanced by elapsed
// seconds from its current state. It is used to sample display frames
// between segment events.
func (t *Table) Roll(elapsed float64) *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Time:     t.Time + elapsed,
		fixtures: make([]Entity, len(t.fixtures)),
		balls:    make([]Entity, 0, len(t.balls)),
		capacity: t.capacity,
	}
	for i, f := range t.fixtures {
		out.fixtures[i] = CopyEntity(f)
	}
	for _, b := range t.balls {
		c := CopyEntity(b)
		if r, ok := c.(*RollingBall); ok {
			Roll(r, b.(*RollingBall), elapsed)
		}
		out.balls = append(out.balls, c)
	}
	return out
}
