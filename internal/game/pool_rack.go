package game

// Rack spacing factors. Fixed offsets keep racks identical between runs.
const (
	rackRowSpacing = 1.782 // 1.732 + 0.05
	rackColSpacing = 1.05  // 1.0 + 0.05
)

// Rack returns a table with the cue ball on the head spot and fifteen object
// balls racked in a triangle with its apex on the foot spot, pointing at the
// cue ball. The 8-ball sits in the centre of the third row.
func (e *Engine) Rack() *Table {
	t := e.NewTable()
	for n, pos := range e.rackPositions() {
		// Sixteen balls fit the default capacity exactly; smaller
		// capacities rack as many as they can hold.
		if err := t.Add(NewStillBall(uint8(n), pos)); err != nil {
			break
		}
	}
	return t
}

func (e *Engine) rackPositions() [16]Coordinate {
	var pos [16]Coordinate

	w, l, br := e.c.TableWidth, e.c.TableLength, e.c.BallRadius
	cx := w / 2
	apex := l / 4
	row := func(k int) float64 { return apex - float64(k)*rackRowSpacing*br }
	col := func(k float64) float64 { return cx + k*br*rackColSpacing }

	// Cue ball on the head spot
	pos[0] = Coordinate{cx, 3 * l / 4}

	// Apex ball
	pos[1] = Coordinate{cx, row(0)}

	// Row 2
	pos[2] = Coordinate{col(1), row(1)}
	pos[15] = Coordinate{col(-1), row(1)}

	// Row 3 (8-ball in center)
	pos[8] = Coordinate{col(0), row(2)}
	pos[5] = Coordinate{col(2), row(2)}
	pos[10] = Coordinate{col(-2), row(2)}

	// Row 4
	pos[7] = Coordinate{col(1), row(3)}
	pos[4] = Coordinate{col(3), row(3)}
	pos[9] = Coordinate{col(-1), row(3)}
	pos[6] = Coordinate{col(-3), row(3)}

	// Row 5
	pos[11] = Coordinate{col(0), row(4)}
	pos[12] = Coordinate{col(2), row(4)}
	pos[13] = Coordinate{col(-2), row(4)}
	pos[14] = Coordinate{col(4), row(4)}
	pos[3] = Coordinate{col(-4), row(4)}

	return pos
}
