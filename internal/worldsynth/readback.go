package worldsynth

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/worldmodel"
)

// readback materialises one fully-resolved CSP model into a concrete
// worldmodel.World, the mirror image of pin.go's pinPartial. It also
// calls World.Validate as a post-hoc sanity net, the same belt-and-
// braces pattern internal/mutator's readback.go uses after its own CSP
// encoding.
func readback(v *vars, pw *worldmodel.PartialWorld, m csp.Model) (*worldmodel.World, error) {
	w := worldmodel.New(v.grid.Rows, v.grid.Cols)
	for i, tv := range v.tiles {
		w.Tiles[i].Exist = m[tv.exist] == 1
		w.Tiles[i].Allowed = m[tv.allowed] == 1
		for _, s := range allSides {
			w.Tiles[i].Wall = w.Tiles[i].Wall.Set(s, m[tv.wall[s].presentVar] == 1)
		}

		name := m[tv.nameVar]
		if name != itemNameAbsent() {
			w.Items[i] = &worldmodel.Item{
				Name:   itemNames[name],
				Colour: itemColours[m[tv.colourVar]],
				Count:  m[tv.countVar],
			}
		}

		var tm worldmodel.TileMarkers
		for _, s := range allSides {
			ev := tv.markers[s]
			present := m[ev.presentVar] == 1
			colour := ""
			if present {
				c := m[ev.colourVar]
				if c != itemColourAbsent() {
					colour = itemColours[c]
				}
			}
			tm = tm.Set(s, worldmodel.MarkerEdge{Present: present, Colour: colour})
		}
		w.Markers[i] = tm
	}

	ty, tx := v.grid.Coords(m[v.posVar])
	w.Turtle = worldmodel.Turtle{Y: ty, X: tx, Dir: worldmodel.Direction(m[v.dirVar])}
	w.Trace = append([]int(nil), pw.Trace...)

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}
