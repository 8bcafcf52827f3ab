package game

type TileKind int

const (
	TileVoid TileKind = iota
	TileFood
	TileBody
	TileHead
)

type Tile struct {
	Kind  TileKind
	Point int
	X     int
	Y     int
}

// GameMap is a dense grid view of a board snapshot, indexed [row][col] relative
// to the board's minimum corner.
type GameMap struct {
	Tiles      [][]Tile
	XMin, YMin int
}

func CreateNewTile(row int, col int) Tile {
	return Tile{X: col, Y: row, Kind: TileVoid}
}

func BuildGameMap(snapshot BoardSnapshot) GameMap {
	gameMap := GameMap{
		Tiles: make([][]Tile, snapshot.Height()),
		XMin:  snapshot.XMin,
		YMin:  snapshot.YMin,
	}

	for row := range gameMap.Tiles {
		gameMap.Tiles[row] = make([]Tile, snapshot.Width())
		for col := range gameMap.Tiles[row] {
			gameMap.Tiles[row][col] = CreateNewTile(row+snapshot.YMin, col+snapshot.XMin)
		}
	}

	for _, food := range snapshot.Foods {
		if tile := gameMap.at(food.X, food.Y); tile != nil {
			tile.Kind = TileFood
			tile.Point = food.Point
		}
	}
	for i, segment := range snapshot.Snake {
		if tile := gameMap.at(segment.X, segment.Y); tile != nil {
			tile.Kind = TileBody
			if i == 0 {
				tile.Kind = TileHead
			}
		}
	}

	return gameMap
}

func (m GameMap) at(x, y int) *Tile {
	row, col := y-m.YMin, x-m.XMin
	if row < 0 || row >= len(m.Tiles) || col < 0 || col >= len(m.Tiles[row]) {
		return nil
	}
	return &m.Tiles[row][col]
}

// At returns the tile at p; positions outside the map read as void.
func (m GameMap) At(p Position) Tile {
	if tile := m.at(p.X, p.Y); tile != nil {
		return *tile
	}
	return Tile{X: p.X, Y: p.Y, Kind: TileVoid}
}

func (m GameMap) IsOccupied(p Position) bool {
	kind := m.At(p).Kind
	return kind == TileBody || kind == TileHead
}
