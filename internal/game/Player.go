package game

type Player struct {
	Name     string
	Board    *Board
	Strategy Strategy // nil for human players
	Dead     bool

	// Direction is applied on the next tick; Heading is the direction of the last move.
	Direction Direction
	Heading   Direction
}

func CreateNewPlayer(name string, board *Board, strategy Strategy) *Player {
	return &Player{
		Name:      name,
		Board:     board,
		Strategy:  strategy,
		Direction: Right,
		Heading:   Up, // the starting tail sits below the head
	}
}

// UpdateDirection queues newDir unless it would turn the snake back onto its neck.
func (p *Player) UpdateDirection(newDir Direction) bool {
	if !newDir.Valid() || newDir == p.Heading.Opposite() {
		return false
	}
	p.Direction = newDir
	return true
}

func (p *Player) IsBot() bool {
	return p.Strategy != nil
}

func (p *Player) move() Status {
	status := p.Board.AttemptMove(p.Direction)
	if status == Success {
		p.Heading = p.Direction
	} else {
		p.Dead = true
	}
	return status
}
