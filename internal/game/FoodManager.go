package game

// Rand is the random source threaded through food spawning. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

func randomPoint(rng Rand) int {
	return MinFoodPoint + rng.Intn(MaxFoodPoint-MinFoodPoint+1)
}

// freeCells counts cells covered by neither the snake nor food.
func (b *Board) freeCells() int {
	area := (b.XMax - b.XMin) * (b.YMax - b.YMin)
	return area - b.arena.ListLength(b.SnakeHead) - b.arena.ListLength(b.Foods)
}

// SpawnFood places a food cell on a random free cell with a random point value and
// prepends it to the food list. Positions are drawn until a free one comes up; when
// the field has no free cell at all nothing is spawned and false is returned.
func (b *Board) SpawnFood() bool {
	if b.Destroyed() || b.freeCells() <= 0 {
		return false
	}

	for {
		x := b.XMin + b.rng.Intn(b.XMax-b.XMin)
		y := b.YMin + b.rng.Intn(b.YMax-b.YMin)
		if b.arena.findAt(x, y, b.Foods) != NilCell || b.arena.findAt(x, y, b.SnakeHead) != NilCell {
			continue
		}

		food := b.arena.CreateCell(x, y)
		b.arena.cells[food].Point = randomPoint(b.rng)
		b.arena.pushFront(food, &b.Foods)
		return true
	}
}

// RetargetFoodValues re-rolls the point value of every food cell in place.
func (b *Board) RetargetFoodValues() {
	if b.Destroyed() {
		return
	}
	for id := b.Foods; id != NilCell; id = b.arena.cells[id].next {
		b.arena.cells[id].Point = randomPoint(b.rng)
	}
}
