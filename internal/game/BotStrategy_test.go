package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func snapshotOf(snake []Position, foods []FoodItem, w, h int) BoardSnapshot {
	return BoardSnapshot{Snake: snake, Foods: foods, XMax: w, YMax: h}
}

func TestStrategies_ChaseFood(t *testing.T) {
	tests := []struct {
		name    string
		snake   []Position
		foods   []FoodItem
		current Direction
		want    Direction
	}{
		{"turn right toward food", []Position{{5, 5}, {5, 6}}, []FoodItem{{X: 8, Y: 5, Point: 3}}, Up, Right},
		{"wrap across the left edge", []Position{{0, 5}, {0, 6}}, []FoodItem{{X: 9, Y: 5, Point: 3}}, Up, Left},
		{"keep going straight", []Position{{5, 5}, {5, 6}}, []FoodItem{{X: 5, Y: 1, Point: 3}}, Up, Up},
	}

	lua, err := LoadLuaStrategy("")
	if err != nil {
		t.Fatalf("LoadLuaStrategy: %v", err)
	}
	defer lua.Close()

	strategies := map[string]Strategy{"greedy": GreedyStrategy{}, "lua": lua}
	for name, strategy := range strategies {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				snapshot := snapshotOf(tt.snake, tt.foods, 10, 10)
				if got := strategy.NextDirection(snapshot, tt.current); got != tt.want {
					t.Fatalf("direction=%v want=%v", got, tt.want)
				}
			})
		}
	}
}

func TestStrategies_AvoidBody(t *testing.T) {
	// the body blocks up and left, so down is the only safe move
	snake := []Position{{5, 5}, {6, 5}, {6, 4}, {5, 4}, {4, 4}, {4, 5}, {4, 6}}
	snapshot := snapshotOf(snake, []FoodItem{{X: 5, Y: 2, Point: 7}}, 10, 10)

	lua, err := NewLuaStrategy("default", DefaultBotScript)
	if err != nil {
		t.Fatalf("NewLuaStrategy: %v", err)
	}
	defer lua.Close()

	for name, strategy := range map[string]Strategy{"greedy": GreedyStrategy{}, "lua": lua} {
		got := strategy.NextDirection(snapshot, Left)
		if got != Down {
			t.Fatalf("%s: direction=%v want=down", name, got)
		}
	}
}

func TestGreedyStrategy_Trapped(t *testing.T) {
	snake := []Position{{1, 1}, {1, 0}, {0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}, {2, 1}}
	snapshot := snapshotOf(snake, []FoodItem{{X: 4, Y: 4, Point: 1}}, 5, 5)

	if got := (GreedyStrategy{}).NextDirection(snapshot, Down); got != Down {
		t.Fatalf("direction=%v want=down", got)
	}
}

func TestGreedyStrategy_PrefersValue(t *testing.T) {
	// a 1-point food one step up against a 7-point food two steps right
	snapshot := snapshotOf([]Position{{5, 5}, {5, 6}}, []FoodItem{
		{X: 5, Y: 4, Point: 1},
		{X: 7, Y: 5, Point: 7},
	}, 10, 10)

	if got := (GreedyStrategy{}).NextDirection(snapshot, Up); got != Right {
		t.Fatalf("direction=%v want=right", got)
	}
}

func TestLuaStrategy_Errors(t *testing.T) {
	_, err := NewLuaStrategy("empty", "local x = 1")
	if !errors.Is(err, ErrNoStrategyFunction) {
		t.Fatalf("err=%v want=%v", err, ErrNoStrategyFunction)
	}

	if _, err := NewLuaStrategy("broken", "function next_direction(state"); err == nil {
		t.Fatalf("expected a parse error")
	}

	if _, err := LoadLuaStrategy(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Fatalf("expected a read error")
	}
}

func TestLuaStrategy_BadAnswersKeepDirection(t *testing.T) {
	scripts := map[string]string{
		"number":        "function next_direction(state) return 42 end",
		"unknown":       `function next_direction(state) return "sideways" end`,
		"runtime error": `function next_direction(state) error("boom") end`,
	}
	snapshot := snapshotOf([]Position{{5, 5}, {5, 6}}, nil, 10, 10)

	for name, script := range scripts {
		t.Run(name, func(t *testing.T) {
			strategy, err := NewLuaStrategy(name, script)
			if err != nil {
				t.Fatalf("NewLuaStrategy: %v", err)
			}
			defer strategy.Close()

			if got := strategy.NextDirection(snapshot, Left); got != Left {
				t.Fatalf("direction=%v want=left", got)
			}
			// the state must stay usable after a failed call
			if got := strategy.NextDirection(snapshot, Right); got != Right {
				t.Fatalf("direction=%v want=right", got)
			}
		})
	}
}

func TestLuaStrategy_SeesState(t *testing.T) {
	script := `
function next_direction(state)
  if state.width == 12 and state.height == 7 and #state.body == 2 and state.foods[1].point == 4 and state.direction == "left" then
    return "Down"
  end
  return "up"
end`
	path := filepath.Join(t.TempDir(), "bot.lua")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	strategy, err := LoadLuaStrategy(path)
	if err != nil {
		t.Fatalf("LoadLuaStrategy: %v", err)
	}
	defer strategy.Close()

	snapshot := snapshotOf([]Position{{3, 3}, {4, 3}}, []FoodItem{{X: 0, Y: 0, Point: 4}}, 12, 7)
	if got := strategy.NextDirection(snapshot, Left); got != Down {
		t.Fatalf("direction=%v want=down", got)
	}
}
