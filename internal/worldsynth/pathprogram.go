package worldsynth

import (
	"github.com/xlogosyn/xlogosyn/internal/ast"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// pathToProgram renders a grid walk as the minimal-turn primitive
// program that would drive the turtle along it from startDir: at each
// step it turns the short way (0, 1, or 2 quarter-turns) to face the
// next tile, then moves forward. Used only to size and structurally
// check trace-optimality candidates (traceopt.go), never emitted as a
// puzzle's actual program.
func pathToProgram(grid worldmodel.Grid, path []int, startDir worldmodel.Direction) ast.Program {
	var prog ast.Program
	dir := startDir
	for k := 0; k < len(path)-1; k++ {
		fy, fx := grid.Coords(path[k])
		ty, tx := grid.Coords(path[k+1])
		target, ok := directionFromDelta(ty-fy, tx-fx)
		if !ok {
			continue
		}
		diff := ((int(target) - int(dir)) % 4 + 4) % 4
		switch diff {
		case 1:
			prog = append(prog, ast.Rt())
		case 2:
			prog = append(prog, ast.Rt(), ast.Rt())
		case 3:
			prog = append(prog, ast.Lt())
		}
		dir = target
		prog = append(prog, ast.Fd())
	}
	return prog
}

func directionFromDelta(dy, dx int) (worldmodel.Direction, bool) {
	switch {
	case dy == -1 && dx == 0:
		return worldmodel.North, true
	case dy == 1 && dx == 0:
		return worldmodel.South, true
	case dy == 0 && dx == 1:
		return worldmodel.East, true
	case dy == 0 && dx == -1:
		return worldmodel.West, true
	default:
		return 0, false
	}
}
