package ast

import "encoding/json"
import "testing"

func TestProgramJSONRoundTrip(t *testing.T) {
	prog := Program{
		Fd(),
		SetPc(ColourBlue),
		Repeat(4, Program{Fd(), Fd(), Rt()}),
	}
	data, err := json.Marshal(prog)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Program
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !prog.Equal(back) {
		t.Fatalf("round-trip mismatch: %+v vs %+v", prog, back)
	}
}

func TestCodeConstraintJSONRoundTrip(t *testing.T) {
	c := CodeConstraint{
		Exactly: map[string]int{"fd": 2, "all": 4},
		AtMost:  map[string]int{"lt": 1},
		StartBy: []Kind{KindFd, KindFd},
	}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back CodeConstraint
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !c.Equal(back) {
		t.Fatalf("round-trip mismatch: %+v vs %+v", c, back)
	}
}

func TestTreeEditDistanceZeroForEqualPrograms(t *testing.T) {
	a := Program{Repeat(4, Program{Fd(), Fd(), Rt()})}
	b := a.Clone()
	if d := TreeEditDistance(a, b); d != 0 {
		t.Fatalf("expected distance 0 for identical programs, got %d", d)
	}
}

func TestTreeEditDistancePositiveForDifferentPrograms(t *testing.T) {
	a := Program{Repeat(4, Program{Fd(), Fd(), Rt()})}
	b := Program{Repeat(4, Program{Fd(), Fd()}), Rt()}
	if d := TreeEditDistance(a, b); d == 0 {
		t.Fatalf("expected nonzero distance between structurally different programs")
	}
}
