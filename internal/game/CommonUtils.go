package game

var Directions = []Direction{Up, Right, Down, Left}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// wrapDistance is the shorter way between a and b on an axis that wraps every span cells.
func wrapDistance(a, b, span int) int {
	d := abs(a - b)
	return min(d, span-d)
}

// GetManhattanDistance measures distance on the torus described by the snapshot bounds.
func GetManhattanDistance(p1, p2 Position, snapshot BoardSnapshot) int {
	return wrapDistance(p1.X, p2.X, snapshot.Width()) + wrapDistance(p1.Y, p2.Y, snapshot.Height())
}

// step returns the wrapped neighbour of p in dir.
func step(p Position, dir Direction, snapshot BoardSnapshot) Position {
	dx, dy := dir.Delta()
	next := Position{X: p.X + dx, Y: p.Y + dy}

	if next.X < snapshot.XMin {
		next.X = snapshot.XMax - 1
	} else if next.X >= snapshot.XMax {
		next.X = snapshot.XMin
	}
	if next.Y < snapshot.YMin {
		next.Y = snapshot.YMax - 1
	} else if next.Y >= snapshot.YMax {
		next.Y = snapshot.YMin
	}
	return next
}
