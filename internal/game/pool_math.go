package game

// approaching reports whether the rolling ball a is closing on other, so that
// a contact found by Distance is a fresh impact rather than the residual
// overlap of a contact already resolved. Pockets always capture.
func approaching(a *RollingBall, other Entity) bool {
	switch o := other.(type) {
	case *RollingBall:
		return checkObjectsConverging(a.Pos, o.Pos, a.Vel, o.Vel)
	case *StillBall:
		return checkObjectsConverging(a.Pos, o.Pos, a.Vel, Coordinate{})
	case *HorizontalCushion:
		return (o.Y-a.Pos.Y)*a.Vel.Y > 0
	case *VerticalCushion:
		return (o.X-a.Pos.X)*a.Vel.X > 0
	case *Pocket:
		return true
	}
	return false
}

// checkObjectsConverging returns true if two objects are moving toward each
// other along the line joining their centres.
func checkObjectsConverging(posA, posB, velA, velB Coordinate) bool {
	return velA.Sub(velB).Dot(posB.Sub(posA)) > 0
}
