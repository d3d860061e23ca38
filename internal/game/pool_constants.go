package game

import "fmt"

// Constants holds the physical parameters of a table. Lengths are in
// millimetres, times in seconds.
type Constants struct {
	TableLength  float64 `json:"table_length"`
	TableWidth   float64 `json:"table_width"`
	BallDiameter float64 `json:"ball_diameter"`
	BallRadius   float64 `json:"ball_radius"`
	PocketRadius float64 `json:"pocket_radius"`
	Drag         float64 `json:"drag"`        // deceleration magnitude, mm/s²
	VelEpsilon   float64 `json:"vel_epsilon"` // speed below which a ball is at rest
	SimRate      float64 `json:"sim_rate"`    // segment step size
	MaxTime      float64 `json:"max_time"`    // segment horizon
	MaxObjects   int     `json:"max_objects"` // fixtures + balls
	FrameRate    float64 `json:"frame_rate"`  // shot frame sampling interval
}

// standardFixtures is the number of cushions and pockets installed by NewTable.
const standardFixtures = 10

// DefaultConstants returns the parameters of a standard 1350x2700mm table.
func DefaultConstants() Constants {
	return Constants{
		TableLength:  2700.0,
		TableWidth:   1350.0,
		BallDiameter: 57.0,
		BallRadius:   28.5,
		PocketRadius: 114.0,
		Drag:         150.0,
		VelEpsilon:   0.01,
		SimRate:      0.0001,
		MaxTime:      600,
		MaxObjects:   26,
		FrameRate:    0.01,
	}
}

// Validate reports whether the constants describe a usable table.
func (c Constants) Validate() error {
	switch {
	case c.TableLength <= 0 || c.TableWidth <= 0:
		return fmt.Errorf("%w: table dimensions must be positive", ErrInvalidConstants)
	case c.BallDiameter <= 0 || c.BallRadius <= 0:
		return fmt.Errorf("%w: ball size must be positive", ErrInvalidConstants)
	case c.PocketRadius <= 0:
		return fmt.Errorf("%w: pocket radius must be positive", ErrInvalidConstants)
	case c.Drag < 0 || c.VelEpsilon <= 0:
		return fmt.Errorf("%w: drag must be non-negative and vel epsilon positive", ErrInvalidConstants)
	case c.SimRate <= 0 || c.MaxTime < c.SimRate:
		return fmt.Errorf("%w: sim rate must be positive and no larger than max time", ErrInvalidConstants)
	case c.MaxObjects < standardFixtures:
		return fmt.Errorf("%w: max objects must leave room for %d fixtures", ErrInvalidConstants, standardFixtures)
	case c.FrameRate < 0:
		return fmt.Errorf("%w: frame rate must not be negative", ErrInvalidConstants)
	}
	return nil
}
