package ast

import "fmt"

// CodeConstraint is the three-clause code-shape constraint from spec.md
// §3.2: Exactly, AtMost, and StartBy, combined conjunctively.
type CodeConstraint struct {
	// Exactly maps a block category (fd/bk/lt/rt/all) to an exact count.
	Exactly map[string]int
	// AtMost maps a block category to an upper bound; present entries
	// must be >= 1.
	AtMost map[string]int
	// StartBy is an ordered prefix over {fd,bk,lt,rt} that the program's
	// first len(StartBy) non-noblock blocks must match.
	StartBy []Kind
}

// categoryNames are the block categories a constraint clause may mention.
var categoryNames = map[string]bool{"fd": true, "bk": true, "lt": true, "rt": true, "all": true}

// Validate checks the invariants of spec.md §3.2: a category may not
// appear in both Exactly and AtMost; the StartBy prefix must be shorter
// than the program; counts are non-negative (AtMost additionally >= 1).
func (c CodeConstraint) Validate(programLen int) error {
	for name := range c.Exactly {
		if !categoryNames[name] {
			return fmt.Errorf("ast: exactly has unknown category %q", name)
		}
		if c.Exactly[name] < 0 {
			return fmt.Errorf("ast: exactly[%s] negative", name)
		}
		if _, dup := c.AtMost[name]; dup {
			return fmt.Errorf("ast: %q present in both exactly and at_most", name)
		}
	}
	for name, v := range c.AtMost {
		if !categoryNames[name] {
			return fmt.Errorf("ast: at_most has unknown category %q", name)
		}
		if v < 1 {
			return fmt.Errorf("ast: at_most[%s] must be >= 1", name)
		}
	}
	for _, k := range c.StartBy {
		if k != KindFd && k != KindBk && k != KindLt && k != KindRt {
			return fmt.Errorf("ast: start_by may not contain %v", k)
		}
	}
	if len(c.StartBy) >= programLen {
		return fmt.Errorf("ast: start_by prefix (%d) must be shorter than program length (%d)", len(c.StartBy), programLen)
	}
	return nil
}

// UsingJustThesePattern reports whether Exactly["all"] equals the sum of
// the other exact counts — the "using just these commands" pattern that
// the mutator must preserve under mutation (spec.md §4.D).
func (c CodeConstraint) UsingJustThesePattern() bool {
	all, ok := c.Exactly["all"]
	if !ok {
		return false
	}
	sum := 0
	for name, v := range c.Exactly {
		if name != "all" {
			sum += v
		}
	}
	return sum == all
}

// Satisfies checks a candidate program's block counts and prefix against
// the constraint, structurally (used by component I, the verification
// emulator, and by the trace-optimality candidate filter in component F).
func (c CodeConstraint) Satisfies(p Program) bool {
	counts := p.BlockCount()
	for name, want := range c.Exactly {
		if counts[name] != want {
			return false
		}
	}
	for name, max := range c.AtMost {
		if counts[name] > max {
			return false
		}
	}
	if len(c.StartBy) > 0 {
		flat := p.Flatten()
		if len(flat) < len(c.StartBy) {
			return false
		}
		for i, want := range c.StartBy {
			got, ok := ParseKind(blockCategory(flat[i]))
			if !ok || got != want {
				return false
			}
		}
	}
	return true
}

func blockCategory(b Block) string {
	return b.Kind.String()
}

// Clone returns a deep copy of the constraint.
func (c CodeConstraint) Clone() CodeConstraint {
	out := CodeConstraint{
		Exactly: make(map[string]int, len(c.Exactly)),
		AtMost:  make(map[string]int, len(c.AtMost)),
		StartBy: append([]Kind(nil), c.StartBy...),
	}
	for k, v := range c.Exactly {
		out.Exactly[k] = v
	}
	for k, v := range c.AtMost {
		out.AtMost[k] = v
	}
	return out
}

// Equal performs structural equality between two constraints.
func (c CodeConstraint) Equal(o CodeConstraint) bool {
	if len(c.Exactly) != len(o.Exactly) || len(c.AtMost) != len(o.AtMost) || len(c.StartBy) != len(o.StartBy) {
		return false
	}
	for k, v := range c.Exactly {
		if o.Exactly[k] != v {
			return false
		}
	}
	for k, v := range c.AtMost {
		if o.AtMost[k] != v {
			return false
		}
	}
	for i, k := range c.StartBy {
		if o.StartBy[i] != k {
			return false
		}
	}
	return true
}
