// Package goalmodel implements the Goal/Objective/Spec data model from
// spec.md §3.3: objective kinds, CNF specs over typed literals, and the
// JSON wire format from spec.md §6.1.
package goalmodel

import "fmt"

// Kind is an objective kind (the semantic verb of a goal).
type Kind string

const (
	KindFind       Kind = "find"
	KindFindOnly   Kind = "findonly"
	KindForbid     Kind = "forbid"
	KindCollectAll Kind = "collectall"
	KindConcat     Kind = "concat"
	KindSum        Kind = "sum"
	KindDraw       Kind = "draw"
)

// Attribute identifies which dimension of an item (or drawn edge) a
// literal constrains.
type Attribute string

const (
	AttrName   Attribute = "name"
	AttrColour Attribute = "color"
	AttrCount  Attribute = "count"
	AttrLine   Attribute = "line"
)

// Names, colours and counts from spec.md §3.3.
var (
	ValidNames   = []string{"strawberry", "lemon", "A", "B", "C", "triangle", "rectangle", "cross", "circle"}
	ValidColours = []string{"red", "green", "blue", "yellow", "black", "orange", "purple", "pink", "white"}
	ValidCounts  = []int{1, 2, 3, 4}
)

// ShapePalette restricts which colours a given shape name may take
// (spec.md §4.E attribute-consistency rule).
var ShapePalette = map[string][]string{
	"triangle":  {"red", "green", "blue"},
	"rectangle": {"red", "green", "blue"},
	"cross":     {"red", "green", "blue"},
	"circle":    {"red", "green", "blue", "yellow", "black", "orange", "purple", "pink", "white"},
}

// FruitColour fixes the mandatory colour of a fruit name, or "" if the
// name is not a fruit.
var FruitColour = map[string]string{
	"strawberry": "red",
	"lemon":      "yellow",
}

// Line describes a drawn-edge literal's coordinates and colour, used only
// by draw objectives.
type Line struct {
	X1, Y1, X2, Y2 int
	Colour         string
}

// Literal is a single (attribute, polarity) pair from spec.md §3.3. Exactly
// one of Name/Colour/Count/Line is meaningful, selected by Attribute.
type Literal struct {
	Attribute Attribute
	Negated   bool

	Name   string
	Colour string
	Count  int
	Line   Line
}

// Clause is a disjunction of literals (one conjunct of a CNF Spec).
type Clause []Literal

// Spec is a CNF formula: a conjunction of Clauses.
type Spec struct {
	CNF []Clause
}

// Clone returns a deep copy of the spec.
func (s Spec) Clone() Spec {
	out := Spec{CNF: make([]Clause, len(s.CNF))}
	for i, c := range s.CNF {
		out.CNF[i] = append(Clause(nil), c...)
	}
	return out
}

// Objective is {kind, specs, total_cnt?} from spec.md §3.3.
type Objective struct {
	Kind     Kind
	Specs    []Spec
	TotalCnt *int // required for sum, forbidden otherwise
}

// Clone returns a deep copy of the objective, the "reference snapshot"
// the goal mutator (component E) diffs its mutated candidates against
// (spec.md §9 design note: represent ref/mutated pairs as two values of
// the same type, not in-place mutation).
func (o Objective) Clone() Objective {
	out := Objective{Kind: o.Kind, Specs: make([]Spec, len(o.Specs))}
	for i, s := range o.Specs {
		out.Specs[i] = s.Clone()
	}
	if o.TotalCnt != nil {
		v := *o.TotalCnt
		out.TotalCnt = &v
	}
	return out
}

// Validate checks the structural invariants of spec.md §3.3: TotalCnt
// required iff kind is sum; concat needs >=2 specs; every other kind
// needs exactly 1.
func (o Objective) Validate() error {
	if o.Kind == KindSum {
		if o.TotalCnt == nil {
			return fmt.Errorf("goalmodel: sum objective requires total_cnt")
		}
	} else if o.TotalCnt != nil {
		return fmt.Errorf("goalmodel: total_cnt forbidden for objective kind %s", o.Kind)
	}
	if o.Kind == KindConcat {
		if len(o.Specs) < 2 {
			return fmt.Errorf("goalmodel: concat requires >= 2 specs, got %d", len(o.Specs))
		}
	} else if len(o.Specs) != 1 {
		return fmt.Errorf("goalmodel: objective kind %s requires exactly 1 spec, got %d", o.Kind, len(o.Specs))
	}
	return nil
}

// Goal is a mapping from objective kind to a list of Objective (spec.md
// §3.3). A given kind may appear with more than one Objective (e.g. two
// independent `forbid` clauses).
type Goal struct {
	Objectives map[Kind][]Objective
}

// NewGoal constructs an empty Goal.
func NewGoal() *Goal {
	return &Goal{Objectives: map[Kind][]Objective{}}
}

// Add appends an objective under its kind.
func (g *Goal) Add(o Objective) {
	g.Objectives[o.Kind] = append(g.Objectives[o.Kind], o)
}

// Clone returns a deep copy of the goal.
func (g *Goal) Clone() *Goal {
	out := NewGoal()
	for kind, objs := range g.Objectives {
		cp := make([]Objective, len(objs))
		for i, o := range objs {
			cp[i] = o.Clone()
		}
		out.Objectives[kind] = cp
	}
	return out
}

// OrderedKinds returns the goal's kinds in the fixed deterministic order
// used for both JSON serialisation and solver-variable allocation, so
// iteration never depends on Go's randomised map order (spec.md §8's
// determinism law).
func (g *Goal) OrderedKinds() []Kind {
	return orderedKinds(g)
}

// Kinds returns the distinct objective kinds present in the goal.
func (g *Goal) Kinds() []Kind {
	out := make([]Kind, 0, len(g.Objectives))
	for k := range g.Objectives {
		out = append(out, k)
	}
	return out
}

// Validate checks every objective and the goal-level Non-goal rejection
// rules: `concat` already enforces >=2 specs per-objective; a goal
// consisting only of `forbid` objectives is trivially infeasible (no
// positive objective ever needs to be reached), matching spec.md §4.E's
// post-processing rejection rule.
func (g *Goal) Validate() error {
	for kind, objs := range g.Objectives {
		for _, o := range objs {
			if o.Kind != kind {
				return fmt.Errorf("goalmodel: objective stored under kind %s has Kind %s", kind, o.Kind)
			}
			if err := o.Validate(); err != nil {
				return err
			}
		}
	}
	if g.onlyForbid() {
		return fmt.Errorf("goalmodel: goal consisting solely of forbid objectives is trivially infeasible")
	}
	return nil
}

func (g *Goal) onlyForbid() bool {
	if len(g.Objectives) == 0 {
		return false
	}
	for kind := range g.Objectives {
		if kind != KindForbid {
			return false
		}
	}
	return true
}

// AttributeCover returns the minimal set of item attributes (names,
// colours, counts) that any literal in the goal depends on. Ported from
// the original's goal_set_cover.py / get_goal_type.py helpers. Nothing in
// this module calls it; the goal mutator (component E) allocates its
// literal slots directly from the goal's literals.
func (g *Goal) AttributeCover() (names, colours map[string]bool, counts map[int]bool) {
	names, colours, counts = map[string]bool{}, map[string]bool{}, map[int]bool{}
	for _, objs := range g.Objectives {
		for _, o := range objs {
			for _, spec := range o.Specs {
				for _, clause := range spec.CNF {
					for _, lit := range clause {
						switch lit.Attribute {
						case AttrName:
							names[lit.Name] = true
						case AttrColour:
							colours[lit.Colour] = true
						case AttrCount:
							counts[lit.Count] = true
						}
					}
				}
			}
		}
	}
	return names, colours, counts
}
