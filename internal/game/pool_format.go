package game

import (
	"fmt"
	"strings"
)

func (b *StillBall) String() string {
	return fmt.Sprintf("STILL_BALL (%d,%6.1f,%6.1f)", b.Number, b.Pos.X, b.Pos.Y)
}

func (b *RollingBall) String() string {
	return fmt.Sprintf("ROLLING_BALL (%d,%6.1f,%6.1f,%6.1f,%6.1f,%6.1f,%6.1f)",
		b.Number, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Acc.X, b.Acc.Y)
}

func (p *Pocket) String() string {
	return fmt.Sprintf("HOLE (%6.1f,%6.1f)", p.Pos.X, p.Pos.Y)
}

func (h *HorizontalCushion) String() string {
	return fmt.Sprintf("HCUSHION (%6.1f)", h.Y)
}

func (v *VerticalCushion) String() string {
	return fmt.Sprintf("VCUSHION (%6.1f)", v.X)
}

// EntityString renders e, including the empty slot.
func EntityString(e Entity) string {
	if e == nil {
		return "NULL;"
	}
	return e.String()
}

// String renders the table one object per line, prefixed with its time.
func (t *Table) String() string {
	if t == nil {
		return "NULL;"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "time = %6.1f;\n", t.Time)
	for i, e := range t.Objects() {
		fmt.Fprintf(&sb, "  [%02d] = %s\n", i, EntityString(e))
	}
	return sb.String()
}
