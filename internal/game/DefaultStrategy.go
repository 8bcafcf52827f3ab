package game

import "math"

// GreedyStrategy heads for the food with the best point-per-distance ratio.
type GreedyStrategy struct{}

func (s GreedyStrategy) NextDirection(snapshot BoardSnapshot, current Direction) Direction {
	gameMap := BuildGameMap(snapshot)
	head := snapshot.Head()

	// --- 1. Collect moves that neither reverse nor hit the body ---
	validMoves := make(map[Direction]Position)
	for _, dir := range Directions {
		if dir == current.Opposite() {
			continue
		}
		next := step(head, dir, snapshot)
		if gameMap.IsOccupied(next) {
			continue
		}
		validMoves[dir] = next
	}

	if len(validMoves) == 0 {
		return current // trapped
	}

	// --- 2. Pick a target ---
	target, ok := s.bestFood(head, snapshot)
	if !ok {
		if _, safe := validMoves[current]; safe {
			return current
		}
		return firstMove(validMoves)
	}

	// --- 3. Walk toward it, preferring to keep going straight on ties ---
	bestDir := firstMove(validMoves)
	bestDist := math.MaxInt32
	for _, dir := range Directions {
		next, ok := validMoves[dir]
		if !ok {
			continue
		}
		dist := GetManhattanDistance(next, target, snapshot) * 2
		if dir == current {
			dist--
		}
		if dist < bestDist {
			bestDist = dist
			bestDir = dir
		}
	}
	return bestDir
}

func (s GreedyStrategy) bestFood(head Position, snapshot BoardSnapshot) (Position, bool) {
	var target Position
	bestRatio := -1.0
	for _, food := range snapshot.Foods {
		pos := Position{X: food.X, Y: food.Y}
		ratio := float64(food.Point) / float64(GetManhattanDistance(head, pos, snapshot)+1)
		if ratio > bestRatio {
			bestRatio = ratio
			target = pos
		}
	}
	return target, bestRatio >= 0
}

// firstMove returns the first valid direction in Directions order so ties are deterministic.
func firstMove(validMoves map[Direction]Position) Direction {
	for _, dir := range Directions {
		if _, ok := validMoves[dir]; ok {
			return dir
		}
	}
	return Up
}
