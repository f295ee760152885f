// Package ast implements the typed program representation for the xlogo
// turtle-graphics domain: blocks, programs, and code-shape constraints.
//
// The package is pure data plus structural algorithms (parsing,
// serialisation, equality, edit distance). It has no dependency on the
// solver, emulator, or world packages, matching the dependency order
// of the design (A has no upstream dependents other than leaf status).
package ast

import "fmt"

// Kind identifies the tag of a Block in the program sum type.
type Kind int

const (
	// KindFd is the forward-move primitive.
	KindFd Kind = iota
	// KindBk is the backward-move primitive.
	KindBk
	// KindLt is the turn-left primitive.
	KindLt
	// KindRt is the turn-right primitive.
	KindRt
	// KindSetPc sets the pen colour.
	KindSetPc
	// KindRepeat is a bounded loop over a body Program.
	KindRepeat
	// KindCursor is the sentinel editing position used during partial
	// construction. Never present in a synthesizer-produced Program.
	KindCursor
)

// String renders the JSON wire name of a Kind.
func (k Kind) String() string {
	switch k {
	case KindFd:
		return "fd"
	case KindBk:
		return "bk"
	case KindLt:
		return "lt"
	case KindRt:
		return "rt"
	case KindSetPc:
		return "setpc"
	case KindRepeat:
		return "repeat"
	case KindCursor:
		return "cursor"
	default:
		return "unknown"
	}
}

// ParseKind maps a wire name back to a Kind. ok is false for unrecognised
// names.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "fd":
		return KindFd, true
	case "bk":
		return KindBk, true
	case "lt":
		return KindLt, true
	case "rt":
		return KindRt, true
	case "setpc":
		return KindSetPc, true
	case "repeat":
		return KindRepeat, true
	case "cursor":
		return KindCursor, true
	default:
		return 0, false
	}
}

// Colour is one of the pen palette values, or ColourNull for "no colour".
type Colour int

const (
	ColourNull Colour = iota
	ColourRed
	ColourGreen
	ColourBlue
	ColourYellow
	ColourBlack
	ColourWhite
)

var colourNames = map[Colour]string{
	ColourNull:   "null",
	ColourRed:    "red",
	ColourGreen:  "green",
	ColourBlue:   "blue",
	ColourYellow: "yellow",
	ColourBlack:  "black",
	ColourWhite:  "white",
}

func (c Colour) String() string {
	if s, ok := colourNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseColour maps a wire name (or empty string / "null") to a Colour.
func ParseColour(s string) (Colour, bool) {
	if s == "" {
		return ColourNull, true
	}
	for c, n := range colourNames {
		if n == s {
			return c, true
		}
	}
	return 0, false
}

// PenPalette enumerates the colours a SetPc block may legally take,
// excluding the null (pen-up) value.
var PenPalette = []Colour{ColourRed, ColourGreen, ColourBlue, ColourYellow, ColourBlack, ColourWhite}

// Block is the sum-type node of a Program. Exactly the fields relevant to
// Kind are meaningful; this mirrors spec.md §3.1's Block sum type without
// resorting to a class hierarchy.
type Block struct {
	Kind Kind

	// SetPc payload.
	PenColour Colour

	// Repeat payload.
	Times int
	Body  Program
}

// Fd, Bk, Lt, Rt construct the zero-payload primitive moves.
func Fd() Block { return Block{Kind: KindFd} }
func Bk() Block { return Block{Kind: KindBk} }
func Lt() Block { return Block{Kind: KindLt} }
func Rt() Block { return Block{Kind: KindRt} }

// SetPc constructs a pen-colour block.
func SetPc(c Colour) Block { return Block{Kind: KindSetPc, PenColour: c} }

// Repeat constructs a bounded loop block. Panics if times is outside
// [1,12]; callers that accept untrusted input should validate first with
// Program.Validate.
func Repeat(times int, body Program) Block {
	if times < 1 || times > 12 {
		panic(fmt.Sprintf("ast: Repeat.times %d out of range [1,12]", times))
	}
	return Block{Kind: KindRepeat, Times: times, Body: body}
}

// Cursor constructs the single-editing-position sentinel.
func Cursor() Block { return Block{Kind: KindCursor} }

// IsMove reports whether the block is one of fd/bk/lt/rt.
func (b Block) IsMove() bool {
	switch b.Kind {
	case KindFd, KindBk, KindLt, KindRt:
		return true
	default:
		return false
	}
}

// IsTurn reports whether the block is lt or rt.
func (b Block) IsTurn() bool {
	return b.Kind == KindLt || b.Kind == KindRt
}

// IsStraight reports whether the block is fd or bk.
func (b Block) IsStraight() bool {
	return b.Kind == KindFd || b.Kind == KindBk
}

// Equal performs deep structural equality, recursing into Repeat bodies.
func (b Block) Equal(o Block) bool {
	if b.Kind != o.Kind {
		return false
	}
	switch b.Kind {
	case KindSetPc:
		return b.PenColour == o.PenColour
	case KindRepeat:
		return b.Times == o.Times && b.Body.Equal(o.Body)
	default:
		return true
	}
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	c := b
	if b.Kind == KindRepeat {
		c.Body = b.Body.Clone()
	}
	return c
}

// Program is an ordered sequence of Block. A well-formed, synthesizer-ready
// Program never contains KindCursor (spec.md §3.1 invariant).
type Program []Block

// Clone returns a deep copy of the program.
func (p Program) Clone() Program {
	out := make(Program, len(p))
	for i, b := range p {
		out[i] = b.Clone()
	}
	return out
}

// Equal performs deep structural equality between two programs.
func (p Program) Equal(o Program) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if !p[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// HasCursor reports whether any block (recursively) is the Cursor sentinel.
func (p Program) HasCursor() bool {
	for _, b := range p {
		if b.Kind == KindCursor {
			return true
		}
		if b.Kind == KindRepeat && b.Body.HasCursor() {
			return true
		}
	}
	return false
}

// BlockCounts maps a block category name to its occurrence count.
// "all" counts every block including outer Repeat headers (spec.md §3.2).
type BlockCounts map[string]int

// BlockCount returns the mapping from kind name to count, counting blocks
// inside Repeat bodies as well as the Repeat header itself, and counting
// "all" as the grand total of every node (spec.md §4.A).
func (p Program) BlockCount() BlockCounts {
	counts := BlockCounts{}
	var walk func(Program)
	walk = func(prog Program) {
		for _, b := range prog {
			switch b.Kind {
			case KindFd:
				counts["fd"]++
			case KindBk:
				counts["bk"]++
			case KindLt:
				counts["lt"]++
			case KindRt:
				counts["rt"]++
			case KindSetPc:
				counts["setpc"]++
			case KindRepeat:
				counts["repeat"]++
				walk(b.Body)
			}
			counts["all"]++
		}
	}
	walk(p)
	return counts
}

// Depth returns the maximum nesting depth of Repeat blocks. A program with
// no Repeat has depth 0.
func (p Program) Depth() int {
	maxDepth := 0
	for _, b := range p {
		if b.Kind == KindRepeat {
			d := 1 + b.Body.Depth()
			if d > maxDepth {
				maxDepth = d
			}
		}
	}
	return maxDepth
}

// PenColours returns the set of distinct SetPc values used anywhere in the
// program (including inside Repeat bodies), excluding ColourNull.
func (p Program) PenColours() map[Colour]bool {
	set := map[Colour]bool{}
	var walk func(Program)
	walk = func(prog Program) {
		for _, b := range prog {
			switch b.Kind {
			case KindSetPc:
				if b.PenColour != ColourNull {
					set[b.PenColour] = true
				}
			case KindRepeat:
				walk(b.Body)
			}
		}
	}
	walk(p)
	return set
}

// Flatten unrolls every Repeat into a flat sequence of primitive/setpc
// blocks in execution order. Used by anti-pattern and StartBy checks that
// reason about the effective instruction stream rather than the syntactic
// tree (spec.md §4.D sliding-window rules operate on execution order).
func (p Program) Flatten() []Block {
	var out []Block
	var walk func(Program)
	walk = func(prog Program) {
		for _, b := range prog {
			if b.Kind == KindRepeat {
				for i := 0; i < b.Times; i++ {
					walk(b.Body)
				}
			} else {
				out = append(out, b)
			}
		}
	}
	walk(p)
	return out
}

// LastEffectiveBlock returns the last block that would execute, descending
// into the final Repeat's body (repeated Times > 0 is guaranteed by the
// [1,12] invariant), or the zero Block and false if the program is empty.
func (p Program) LastEffectiveBlock() (Block, bool) {
	if len(p) == 0 {
		return Block{}, false
	}
	last := p[len(p)-1]
	if last.Kind == KindRepeat {
		return last.Body.LastEffectiveBlock()
	}
	return last, true
}

// Validate checks the structural invariants from spec.md §3.1: Repeat.times
// in [1,12], SetPc values drawn from the palette (or null), and no stray
// Cursor in a program that claims to be synthesizer-final.
func (p Program) Validate() error {
	for _, b := range p {
		switch b.Kind {
		case KindRepeat:
			if b.Times < 1 || b.Times > 12 {
				return fmt.Errorf("ast: repeat.times %d out of range [1,12]", b.Times)
			}
			if err := b.Body.Validate(); err != nil {
				return err
			}
		case KindSetPc:
			if _, ok := colourNames[b.PenColour]; !ok {
				return fmt.Errorf("ast: setpc value %d not a known colour", b.PenColour)
			}
		case KindCursor:
			return fmt.Errorf("ast: cursor sentinel in a final program")
		}
	}
	return nil
}
