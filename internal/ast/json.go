package ast

import (
	"encoding/json"
	"fmt"
)

// blockJSON is the wire shape of a single Block, matching spec.md §6.1's
// Program JSON: {"type":"fd"|"bk"|"lt"|"rt"}, {"type":"setpc","value":...},
// or {"type":"repeat","times":N,"body":[...]}.
type blockJSON struct {
	Type  string      `json:"type"`
	Value *string     `json:"value,omitempty"`
	Times int         `json:"times,omitempty"`
	Body  []blockJSON `json:"body,omitempty"`
}

// programJSON is the wire shape of a whole Program: {"run": [...]}.
type programJSON struct {
	Run []blockJSON `json:"run"`
}

// MarshalJSON serialises a Program to the {"run": [...]} wire shape.
func (p Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(programJSON{Run: toBlockJSONs(p)})
}

// UnmarshalJSON parses the {"run": [...]} wire shape into a Program.
func (p *Program) UnmarshalJSON(data []byte) error {
	var wire programJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	prog, err := fromBlockJSONs(wire.Run)
	if err != nil {
		return err
	}
	*p = prog
	return nil
}

func toBlockJSONs(p Program) []blockJSON {
	out := make([]blockJSON, len(p))
	for i, b := range p {
		out[i] = toBlockJSON(b)
	}
	return out
}

func toBlockJSON(b Block) blockJSON {
	wire := blockJSON{Type: b.Kind.String()}
	switch b.Kind {
	case KindSetPc:
		if b.PenColour != ColourNull {
			s := b.PenColour.String()
			wire.Value = &s
		}
	case KindRepeat:
		wire.Times = b.Times
		wire.Body = toBlockJSONs(b.Body)
	}
	return wire
}

func fromBlockJSONs(wire []blockJSON) (Program, error) {
	out := make(Program, 0, len(wire))
	for _, w := range wire {
		b, err := fromBlockJSON(w)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func fromBlockJSON(w blockJSON) (Block, error) {
	kind, ok := ParseKind(w.Type)
	if !ok {
		return Block{}, fmt.Errorf("ast: unknown block type %q", w.Type)
	}
	switch kind {
	case KindFd, KindBk, KindLt, KindRt, KindCursor:
		return Block{Kind: kind}, nil
	case KindSetPc:
		if w.Value == nil {
			return Block{Kind: KindSetPc, PenColour: ColourNull}, nil
		}
		c, ok := ParseColour(*w.Value)
		if !ok {
			return Block{}, fmt.Errorf("ast: unknown setpc colour %q", *w.Value)
		}
		return Block{Kind: KindSetPc, PenColour: c}, nil
	case KindRepeat:
		body, err := fromBlockJSONs(w.Body)
		if err != nil {
			return Block{}, err
		}
		return Block{Kind: KindRepeat, Times: w.Times, Body: body}, nil
	default:
		return Block{}, fmt.Errorf("ast: unhandled block kind %v", kind)
	}
}

// codeConstraintJSON is the wire shape from spec.md §6.1:
// {"exactly"?:{block:int}, "at_most"?:{block:int}, "start_by"?:[block,...]}.
type codeConstraintJSON struct {
	Exactly  map[string]int `json:"exactly,omitempty"`
	AtMost   map[string]int `json:"at_most,omitempty"`
	StartBy  []string       `json:"start_by,omitempty"`
}

// MarshalJSON serialises a CodeConstraint to its wire shape.
func (c CodeConstraint) MarshalJSON() ([]byte, error) {
	wire := codeConstraintJSON{}
	if len(c.Exactly) > 0 {
		wire.Exactly = c.Exactly
	}
	if len(c.AtMost) > 0 {
		wire.AtMost = c.AtMost
	}
	if len(c.StartBy) > 0 {
		wire.StartBy = make([]string, len(c.StartBy))
		for i, k := range c.StartBy {
			wire.StartBy[i] = k.String()
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON parses the wire shape into a CodeConstraint.
func (c *CodeConstraint) UnmarshalJSON(data []byte) error {
	var wire codeConstraintJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	out := CodeConstraint{
		Exactly: map[string]int{},
		AtMost:  map[string]int{},
	}
	for k, v := range wire.Exactly {
		out.Exactly[k] = v
	}
	for k, v := range wire.AtMost {
		out.AtMost[k] = v
	}
	for _, s := range wire.StartBy {
		kind, ok := ParseKind(s)
		if !ok {
			return fmt.Errorf("ast: unknown start_by entry %q", s)
		}
		out.StartBy = append(out.StartBy, kind)
	}
	*c = out
	return nil
}
