package goalmutator

import (
	"fmt"

	"github.com/xlogosyn/xlogosyn/internal/goalmodel"
)

// maxClausesForDNF bounds the CNF->DNF cartesian expansion of simplify;
// specs built by component E stay small (a handful of clauses per
// spec), so this cap is never expected to bite in practice.
const maxClausesForDNF = 6

// simplify applies spec.md §4.E's post-processing to every non-draw
// objective's specs in place: CNF->DNF, drop DNF terms proven
// unsatisfiable against item-domain rules, DNF->CNF. Draw objectives
// are skipped because their specs describe drawn edges, not items, and
// the item-domain feasibility check below has nothing to say about them
// (mirroring the "disabled when an objective is draw" carve-out the
// world synthesizer applies to the analogous reference-similarity
// constraints in spec.md §4.F).
func simplify(g *goalmodel.Goal) {
	for kind, objs := range g.Objectives {
		if kind == goalmodel.KindDraw {
			continue
		}
		for i := range objs {
			for j := range objs[i].Specs {
				objs[i].Specs[j] = simplifySpec(objs[i].Specs[j])
			}
		}
	}
}

func simplifySpec(s goalmodel.Spec) goalmodel.Spec {
	if len(s.CNF) == 0 || len(s.CNF) > maxClausesForDNF {
		return s
	}
	terms := cartesian(s.CNF)
	var valid [][]goalmodel.Literal
	for _, term := range terms {
		if isValidDNFClause(term) {
			valid = append(valid, term)
		}
	}
	if len(valid) == 0 || len(valid) == len(terms) {
		return s // nothing proven unsatisfiable, or everything would be: keep the original spec
	}
	keep := make([]map[string]bool, len(s.CNF))
	for ci := range s.CNF {
		keep[ci] = map[string]bool{}
	}
	for _, term := range valid {
		for ci, lit := range term {
			keep[ci][literalKey(lit)] = true
		}
	}
	out := goalmodel.Spec{}
	for ci, clause := range s.CNF {
		var newClause goalmodel.Clause
		for _, lit := range clause {
			if keep[ci][literalKey(lit)] {
				newClause = append(newClause, lit)
			}
		}
		if len(newClause) == 0 {
			newClause = clause // dropping every literal would empty the clause; keep the original instead
		}
		out.CNF = append(out.CNF, newClause)
	}
	return out
}

// cartesian returns every combination picking one literal from each
// clause, i.e. the CNF->DNF expansion's terms (spec.md §4.E step i).
func cartesian(cnf []goalmodel.Clause) [][]goalmodel.Literal {
	terms := [][]goalmodel.Literal{{}}
	for _, clause := range cnf {
		var next [][]goalmodel.Literal
		for _, prefix := range terms {
			for _, lit := range clause {
				term := append(append([]goalmodel.Literal(nil), prefix...), lit)
				next = append(next, term)
			}
		}
		terms = next
	}
	return terms
}

func literalKey(lit goalmodel.Literal) string {
	return fmt.Sprintf("%s|%v|%s|%s|%d|%v", lit.Attribute, lit.Negated, lit.Name, lit.Colour, lit.Count, lit.Line)
}

// isValidDNFClause checks a DNF term (a conjunction of literals picked
// one per clause) against a brute-force single-tile item model — the
// "1x1 item-SMT" of spec.md §9's design notes, preserved here as a
// best-effort filter that may accept a term infeasible only in
// multi-tile contexts.
func isValidDNFClause(term []goalmodel.Literal) bool {
	for _, lit := range term {
		if lit.Attribute == goalmodel.AttrLine {
			return true // line-bearing terms are judged by the world synthesizer, not here
		}
	}
	if allSatisfiedBy(term, goalmodel.ItemFacts{Present: false}) {
		return true
	}
	for _, name := range nameValues {
		for _, colour := range colourValues {
			for _, count := range countValues {
				item := goalmodel.ItemFacts{Present: true, Name: name, Colour: colour, Count: count}
				if allSatisfiedBy(term, item) {
					return true
				}
			}
		}
	}
	return false
}

func allSatisfiedBy(term []goalmodel.Literal, item goalmodel.ItemFacts) bool {
	for _, lit := range term {
		spec := goalmodel.Spec{CNF: []goalmodel.Clause{{lit}}}
		if !spec.Satisfies(item, nil) {
			return false
		}
	}
	return true
}

// isTriviallyInfeasible implements the third rejection rule of spec.md
// §4.E ("no item assignment satisfies it on a minimal world"); the
// other two (only-forbid, concat<2 specs) are already covered by
// Goal.Validate.
func isTriviallyInfeasible(g *goalmodel.Goal) bool {
	for kind, objs := range g.Objectives {
		if kind == goalmodel.KindDraw || kind == goalmodel.KindForbid {
			continue
		}
		for _, o := range objs {
			for _, spec := range o.Specs {
				if !specSatisfiableSomewhere(spec) {
					return true
				}
			}
		}
	}
	return false
}

func specSatisfiableSomewhere(spec goalmodel.Spec) bool {
	if len(spec.CNF) == 0 {
		return true
	}
	for _, clause := range spec.CNF {
		for _, lit := range clause {
			if lit.Attribute == goalmodel.AttrLine {
				return true
			}
		}
	}
	if spec.Satisfies(goalmodel.ItemFacts{Present: false}, nil) {
		return true
	}
	for _, name := range nameValues {
		for _, colour := range colourValues {
			for _, count := range countValues {
				item := goalmodel.ItemFacts{Present: true, Name: name, Colour: colour, Count: count}
				if spec.Satisfies(item, nil) {
					return true
				}
			}
		}
	}
	return false
}
