package game

// CellID addresses a Cell inside an Arena. Ids stay stable for the lifetime of the
// cell, so lists link through ids instead of pointers.
type CellID int32

// NilCell terminates a list and marks an empty list head.
const NilCell CellID = -1

type Cell struct {
	X     int
	Y     int
	Point int // food value, 0 for snake segments

	next     CellID
	previous CellID
	inUse    bool
}

func (c *Cell) Next() CellID     { return c.next }
func (c *Cell) Previous() CellID { return c.previous }

// Arena owns every Cell of a board. Released slots go to a free list and are
// handed out again by CreateCell.
type Arena struct {
	cells []Cell
	free  []CellID
	live  int
}

func NewArena() *Arena {
	return &Arena{}
}

// CreateCell allocates an unlinked cell at (x, y) with no point value.
func (a *Arena) CreateCell(x, y int) CellID {
	cell := Cell{X: x, Y: y, next: NilCell, previous: NilCell, inUse: true}
	a.live++

	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.cells[id] = cell
		return id
	}

	a.cells = append(a.cells, cell)
	return CellID(len(a.cells) - 1)
}

// Cell returns the cell behind id, or nil for NilCell and released slots.
// The pointer is only valid until the next CreateCell.
func (a *Arena) Cell(id CellID) *Cell {
	if !a.valid(id) {
		return nil
	}
	return &a.cells[id]
}

// Live reports how many cells are currently allocated.
func (a *Arena) Live() int {
	return a.live
}

func (a *Arena) valid(id CellID) bool {
	return id >= 0 && int(id) < len(a.cells) && a.cells[id].inUse
}

func (a *Arena) release(id CellID) {
	if !a.valid(id) {
		return
	}
	a.cells[id] = Cell{next: NilCell, previous: NilCell}
	a.free = append(a.free, id)
	a.live--
}

// IsSamePlace compares two cells by coordinates only.
func (a *Arena) IsSamePlace(first, second CellID) bool {
	c1, c2 := a.Cell(first), a.Cell(second)
	if c1 == nil || c2 == nil {
		return false
	}
	return c1.X == c2.X && c1.Y == c2.Y
}

// ListContains scans the list starting at head and returns the first cell sharing
// coordinates with cell, or NilCell.
func (a *Arena) ListContains(cell CellID, head CellID) CellID {
	c := a.Cell(cell)
	if c == nil {
		return NilCell
	}
	return a.findAt(c.X, c.Y, head)
}

func (a *Arena) findAt(x, y int, head CellID) CellID {
	for id := head; id != NilCell; id = a.cells[id].next {
		if a.cells[id].X == x && a.cells[id].Y == y {
			return id
		}
	}
	return NilCell
}

// pushFront links an unlinked cell in front of *head.
func (a *Arena) pushFront(id CellID, head *CellID) {
	cell := &a.cells[id]
	cell.previous = NilCell
	cell.next = *head
	if *head != NilCell {
		a.cells[*head].previous = id
	}
	*head = id
}

// RemoveFromList unlinks element from the list whose head is *head and releases it.
// It reports false when element is NilCell or not allocated.
func (a *Arena) RemoveFromList(element CellID, head *CellID) bool {
	if !a.valid(element) {
		return false
	}

	cell := a.cells[element]
	if element == *head {
		*head = cell.next
	}
	if cell.previous != NilCell {
		a.cells[cell.previous].next = cell.next
	}
	if cell.next != NilCell {
		a.cells[cell.next].previous = cell.previous
	}

	a.release(element)
	return true
}

// ClearList releases every cell from head to the end of the list.
func (a *Arena) ClearList(head CellID) {
	for head != NilCell && a.valid(head) {
		next := a.cells[head].next
		a.release(head)
		head = next
	}
}

// ListLength counts the cells reachable from head.
func (a *Arena) ListLength(head CellID) int {
	count := 0
	for id := head; id != NilCell; id = a.cells[id].next {
		count++
	}
	return count
}

// Positions returns the coordinates of the list in order.
func (a *Arena) Positions(head CellID) []Position {
	positions := []Position{}
	for id := head; id != NilCell; id = a.cells[id].next {
		positions = append(positions, Position{X: a.cells[id].X, Y: a.cells[id].Y})
	}
	return positions
}
