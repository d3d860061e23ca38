package game

import "github.com/go-gl/mathgl/mgl64"

// Coordinate is a 2D point or vector: positions, velocities and accelerations.
// Arithmetic goes through mgl64; the named fields keep the JSON and YAML
// shape stable.
type Coordinate struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func NewCoordinate(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

func fromVec(v mgl64.Vec2) Coordinate {
	return Coordinate{X: v.X(), Y: v.Y()}
}

func (c Coordinate) vec() mgl64.Vec2 {
	return mgl64.Vec2{c.X, c.Y}
}

// Sub returns c - o.
func (c Coordinate) Sub(o Coordinate) Coordinate {
	return fromVec(c.vec().Sub(o.vec()))
}

func (c Coordinate) Add(o Coordinate) Coordinate {
	return fromVec(c.vec().Add(o.vec()))
}

func (c Coordinate) Scale(s float64) Coordinate {
	return fromVec(c.vec().Mul(s))
}

// Length is the Euclidean magnitude of c.
func (c Coordinate) Length() float64 {
	return c.vec().Len()
}

func (c Coordinate) Dot(o Coordinate) float64 {
	return c.vec().Dot(o.vec())
}

// Unit returns c scaled to length 1, or the zero vector when c is zero.
func (c Coordinate) Unit() Coordinate {
	if c.IsZero() {
		return Coordinate{}
	}
	return fromVec(c.vec().Normalize())
}

func (c Coordinate) IsZero() bool {
	return c.X == 0 && c.Y == 0
}
