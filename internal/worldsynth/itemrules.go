package worldsynth

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
)

// postItemBaseProperties asserts spec.md §4.F's "Base world properties"
// for items: noname<=>nocolor<=>count=0, and the shape/fruit palette
// restriction already used by internal/goalmutator's attribute
// consistency rule (spec.md §4.E), since item tiles obey the same
// name/colour pairing a goal literal does.
func postItemBaseProperties(store *csp.Store, v *vars) error {
	for i := range v.tiles {
		tv := v.tiles[i]
		vars := []int{tv.nameVar, tv.colourVar, tv.countVar}
		check := csp.Check(vars, func(a []int) bool {
			name, colour, count := a[0], a[1], a[2]
			noname := name == itemNameAbsent()
			nocolor := colour == itemColourAbsent()
			nocount := count == 0
			if noname != nocolor || noname != nocount {
				return false
			}
			if noname {
				return true
			}
			return paletteConsistent(itemNames[name], itemColours[colour])
		})
		if err := store.Post(check); err != nil {
			return err
		}
	}
	return nil
}

// paletteConsistent mirrors goalmutator's clause-level palette rule,
// applied here to a concrete (name,colour) pair rather than a literal.
func paletteConsistent(name, colour string) bool {
	if fixed, isFruit := goalmodel.FruitColour[name]; isFruit {
		return colour == fixed
	}
	if palette, ok := goalmodel.ShapePalette[name]; ok {
		for _, c := range palette {
			if c == colour {
				return true
			}
		}
		return false
	}
	return true
}
