package goalmodel

// ItemFacts is the minimal view of a tile's item that a Spec needs to
// decide tile satisfaction. Present is false when the tile carries no
// item at all; Name/Colour/Count are only meaningful when Present.
type ItemFacts struct {
	Present bool
	Name    string
	Colour  string
	Count   int
}

// LineFacts reports whether a drawn-marker edge with the given
// coordinates and colour exists, for line literals (draw objectives
// only).
type LineFacts func(x1, y1, x2, y2 int, colour string) bool

// Satisfies reports whether a tile's item (and, for line literals, the
// drawn-marker grid) satisfies the Spec: a tile satisfies a Spec iff
// every clause has at least one satisfied literal (spec.md §3.3).
func (s Spec) Satisfies(item ItemFacts, lines LineFacts) bool {
	for _, clause := range s.CNF {
		if !clauseSatisfied(clause, item, lines) {
			return false
		}
	}
	return true
}

func clauseSatisfied(clause Clause, item ItemFacts, lines LineFacts) bool {
	for _, lit := range clause {
		if literalSatisfied(lit, item, lines) {
			return true
		}
	}
	return false
}

func literalSatisfied(lit Literal, item ItemFacts, lines LineFacts) bool {
	var base bool
	switch lit.Attribute {
	case AttrName:
		base = item.Present && item.Name == lit.Name
	case AttrColour:
		base = item.Present && item.Colour == lit.Colour
	case AttrCount:
		base = item.Present && item.Count == lit.Count
	case AttrLine:
		if lines == nil {
			base = false
		} else {
			base = lines(lit.Line.X1, lit.Line.Y1, lit.Line.X2, lit.Line.Y2, lit.Line.Colour)
		}
	}
	if lit.Negated {
		return !base
	}
	return base
}
