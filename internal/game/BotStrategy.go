package game

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

// Strategy picks the next direction for a bot-controlled snake.
type Strategy interface {
	NextDirection(snapshot BoardSnapshot, current Direction) Direction
}

const luaEntryPoint = "next_direction"

var ErrNoStrategyFunction = errors.New("lua strategy does not define " + luaEntryPoint)

// DefaultBotScript chases the closest food and never steps onto its own body.
const DefaultBotScript = `
local moves = { up = {0, -1}, down = {0, 1}, left = {-1, 0}, right = {1, 0} }
local opposite = { up = "down", down = "up", left = "right", right = "left" }
local order = { "up", "right", "down", "left" }

local function wrap(v, lo, hi)
  if v < lo then return hi - 1 end
  if v >= hi then return lo end
  return v
end

local function axis_distance(a, b, span)
  local d = math.abs(a - b)
  return math.min(d, span - d)
end

function next_direction(state)
  local occupied = {}
  for _, c in ipairs(state.body) do
    occupied[c.x .. ":" .. c.y] = true
  end

  local best, best_score = state.direction, 1e9
  for _, name in ipairs(order) do
    if name ~= opposite[state.direction] then
      local d = moves[name]
      local x = wrap(state.head.x + d[1], state.xmin, state.xmax)
      local y = wrap(state.head.y + d[2], state.ymin, state.ymax)
      if not occupied[x .. ":" .. y] then
        local score = state.width + state.height
        for _, f in ipairs(state.foods) do
          local dist = axis_distance(x, f.x, state.width) + axis_distance(y, f.y, state.height)
          if dist < score then score = dist end
        end
        if score < best_score then
          best, best_score = name, score
        end
      end
    end
  end
  return best
end
`

// LuaStrategy runs a script that defines next_direction(state) and returns one of
// "up", "down", "left" or "right".
type LuaStrategy struct {
	StrategyName string
	luaState     *lua.LState
	entryPoint   lua.LValue
}

func NewLuaStrategy(name string, definition string) (*LuaStrategy, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(definition); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua strategy %q: %w", name, err)
	}

	entryPoint := luaState.GetGlobal(luaEntryPoint)
	if entryPoint.Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("%w (strategy %q)", ErrNoStrategyFunction, name)
	}

	return &LuaStrategy{
		StrategyName: name,
		luaState:     luaState,
		entryPoint:   entryPoint,
	}, nil
}

// LoadLuaStrategy reads a strategy script from disk. An empty path loads DefaultBotScript.
func LoadLuaStrategy(path string) (*LuaStrategy, error) {
	if path == "" {
		return NewLuaStrategy("default", DefaultBotScript)
	}
	definition, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lua strategy: %w", err)
	}
	return NewLuaStrategy(path, string(definition))
}

func (s *LuaStrategy) NextDirection(snapshot BoardSnapshot, current Direction) Direction {
	err := s.luaState.CallByParam(lua.P{
		Fn:      s.entryPoint,
		NRet:    1,
		Protect: true,
	}, s.stateTable(snapshot, current))
	if err != nil {
		log.Warn("Lua strategy failed, keeping direction", "strategy", s.StrategyName, "error", err)
		return current
	}

	luaReturn := s.luaState.Get(-1)
	s.luaState.Pop(1)

	if luaReturn.Type() != lua.LTString {
		log.Warn("Lua strategy returned non-string", "strategy", s.StrategyName, "type", luaReturn.Type().String())
		return current
	}
	dir, err := ParseDirection(lua.LVAsString(luaReturn))
	if err != nil {
		log.Warn("Lua strategy returned bad direction", "strategy", s.StrategyName, "error", err)
		return current
	}
	return dir
}

func (s *LuaStrategy) Close() error {
	s.luaState.Close()
	return nil
}

func (s *LuaStrategy) stateTable(snapshot BoardSnapshot, current Direction) *lua.LTable {
	L := s.luaState
	positionTable := func(x, y int) *lua.LTable {
		t := L.NewTable()
		t.RawSetString("x", lua.LNumber(x))
		t.RawSetString("y", lua.LNumber(y))
		return t
	}

	state := L.NewTable()
	state.RawSetString("head", positionTable(snapshot.Head().X, snapshot.Head().Y))

	body := L.NewTable()
	for _, segment := range snapshot.Snake {
		body.Append(positionTable(segment.X, segment.Y))
	}
	state.RawSetString("body", body)

	foods := L.NewTable()
	for _, food := range snapshot.Foods {
		t := positionTable(food.X, food.Y)
		t.RawSetString("point", lua.LNumber(food.Point))
		foods.Append(t)
	}
	state.RawSetString("foods", foods)

	state.RawSetString("xmin", lua.LNumber(snapshot.XMin))
	state.RawSetString("xmax", lua.LNumber(snapshot.XMax))
	state.RawSetString("ymin", lua.LNumber(snapshot.YMin))
	state.RawSetString("ymax", lua.LNumber(snapshot.YMax))
	state.RawSetString("width", lua.LNumber(snapshot.Width()))
	state.RawSetString("height", lua.LNumber(snapshot.Height()))
	state.RawSetString("score", lua.LNumber(snapshot.Score))
	state.RawSetString("direction", lua.LString(current.String()))
	return state
}
