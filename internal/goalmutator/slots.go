package goalmutator

import (
	"github.com/xlogosyn/xlogosyn/internal/csp"
	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
)

// sourceLiteral is the reference value a mutated literal slot starts
// from; line literals are copied through unmutated (spec.md §4.E never
// describes a line-literal mutation rule, only name/colour/count).
type sourceLiteral struct {
	attr    goalmodel.Attribute
	negated bool
	line    goalmodel.Line

	refName   string
	refColour string
	refCount  int
}

// objTemplate mirrors one reference Objective's clause structure, kept
// separate from the solved model so the same template can be read back
// against many distinct models (one per Mutate call, not mutated in
// place — spec.md §9's "reference snapshot + mutated flag" becomes two
// plain values here: the template and the model).
type objTemplate struct {
	kind  goalmodel.Kind
	specs [][][]sourceLiteral // [specIdx][clauseIdx][litIdx]

	hasTotal bool
	totalVar int
	refTotal int
}

// slot is one literal's solver variable.
type slot struct {
	objIdx, specIdx, clauseIdx, litIdx int
	attr                               goalmodel.Attribute
	variable                           int
	absentValue                        int

	refName   string
	refColour string
}

// Enum layouts: valid values followed by a trailing absent sentinel
// ("noname"/"nocolor"/"_0" of spec.md §4.E).
var (
	nameValues   = goalmodel.ValidNames
	colourValues = goalmodel.ValidColours
	countValues  = goalmodel.ValidCounts
)

func nameAbsent() int   { return len(nameValues) }
func colourAbsent() int { return len(colourValues) }
func countAbsent() int  { return len(countValues) }

func nameIndex(v string) int {
	for i, n := range nameValues {
		if n == v {
			return i
		}
	}
	return nameAbsent()
}

func colourIndex(v string) int {
	for i, c := range colourValues {
		if c == v {
			return i
		}
	}
	return colourAbsent()
}

func countIndex(v int) int {
	for i, c := range countValues {
		if c == v {
			return i
		}
	}
	return countAbsent()
}

// buildSlots walks ref's objectives in the goal's fixed kind order,
// allocating one solver variable per non-line literal and recording the
// clause/objective structure needed to read a model back into a Goal.
func buildSlots(store *csp.Store, ref *goalmodel.Goal) ([]*slot, []*objTemplate) {
	var slots []*slot
	var objs []*objTemplate

	objIdx := 0
	for _, kind := range ref.OrderedKinds() {
		for _, o := range ref.Objectives[kind] {
			t := &objTemplate{kind: kind, totalVar: -1}
			for si, spec := range o.Specs {
				var clauses [][]sourceLiteral
				for ci, clause := range spec.CNF {
					lits := make([]sourceLiteral, len(clause))
					for li, lit := range clause {
						lits[li] = sourceLiteral{attr: lit.Attribute, negated: lit.Negated, line: lit.Line,
							refName: lit.Name, refColour: lit.Colour, refCount: lit.Count}
						if lit.Attribute == goalmodel.AttrLine {
							continue
						}
						s := &slot{objIdx: objIdx, specIdx: si, clauseIdx: ci, litIdx: li, attr: lit.Attribute,
							refName: lit.Name, refColour: lit.Colour}
						switch lit.Attribute {
						case goalmodel.AttrName:
							s.absentValue = nameAbsent()
							s.variable = store.NewVar("goal_name", csp.FullDomain(nameAbsent()+1))
						case goalmodel.AttrColour:
							s.absentValue = colourAbsent()
							s.variable = store.NewVar("goal_colour", csp.FullDomain(colourAbsent()+1))
						case goalmodel.AttrCount:
							s.absentValue = countAbsent()
							s.variable = store.NewVar("goal_count", csp.FullDomain(countAbsent()+1))
						}
						slots = append(slots, s)
					}
					clauses = append(clauses, lits)
				}
				t.specs = append(t.specs, clauses)
			}
			if o.Kind == goalmodel.KindSum && o.TotalCnt != nil {
				t.hasTotal = true
				t.refTotal = *o.TotalCnt
			}
			objs = append(objs, t)
			objIdx++
		}
	}
	return slots, objs
}

// slotsInClause returns every slot belonging to (objIdx, specIdx, clauseIdx).
func slotsInClause(slots []*slot, objIdx, specIdx, clauseIdx int) []*slot {
	var out []*slot
	for _, s := range slots {
		if s.objIdx == objIdx && s.specIdx == specIdx && s.clauseIdx == clauseIdx {
			out = append(out, s)
		}
	}
	return out
}
