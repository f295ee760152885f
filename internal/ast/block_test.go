package ast

import "testing"

func TestBlockCountAndDepth(t *testing.T) {
	prog := Program{
		Fd(),
		Repeat(4, Program{Fd(), Fd(), Rt()}),
		SetPc(ColourRed),
	}
	counts := prog.BlockCount()
	if counts["fd"] != 3 {
		t.Fatalf("expected 3 fd (1 outer + 2 in repeat), got %d", counts["fd"])
	}
	if counts["repeat"] != 1 {
		t.Fatalf("expected 1 repeat, got %d", counts["repeat"])
	}
	if counts["all"] != 6 {
		t.Fatalf("expected all=6 (fd,repeat,setpc + 3 body blocks), got %d", counts["all"])
	}
	if prog.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", prog.Depth())
	}
}

func TestProgramEqualAndClone(t *testing.T) {
	a := Program{Fd(), Repeat(2, Program{Lt(), Rt()})}
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatalf("clone should be structurally equal")
	}
	b[1].Body[0] = Rt()
	if a.Equal(b) {
		t.Fatalf("mutating the clone's repeat body should not affect equality with original")
	}
}

func TestFlattenUnrollsRepeat(t *testing.T) {
	prog := Program{Repeat(3, Program{Fd(), Rt()})}
	flat := prog.Flatten()
	if len(flat) != 6 {
		t.Fatalf("expected 6 flattened blocks, got %d", len(flat))
	}
}

func TestLastEffectiveBlockDescendsIntoRepeat(t *testing.T) {
	prog := Program{Fd(), Repeat(2, Program{Lt(), Fd()})}
	last, ok := prog.LastEffectiveBlock()
	if !ok || last.Kind != KindFd {
		t.Fatalf("expected last effective block fd, got %+v ok=%v", last, ok)
	}
}

func TestValidateRejectsBadRepeatTimes(t *testing.T) {
	prog := Program{Block{Kind: KindRepeat, Times: 13, Body: Program{Fd()}}}
	if err := prog.Validate(); err == nil {
		t.Fatalf("expected validation error for times=13")
	}
}

func TestCodeConstraintSatisfies(t *testing.T) {
	c := CodeConstraint{Exactly: map[string]int{"fd": 2, "all": 2}}
	if err := c.Validate(2); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if !c.Satisfies(Program{Fd(), Fd()}) {
		t.Fatalf("expected [fd,fd] to satisfy exactly{fd:2,all:2}")
	}
	if c.Satisfies(Program{Fd(), Fd(), Fd()}) {
		t.Fatalf("expected [fd,fd,fd] to violate exactly{fd:2,all:2}")
	}
}

func TestCodeConstraintRejectsOverlap(t *testing.T) {
	c := CodeConstraint{Exactly: map[string]int{"fd": 2}, AtMost: map[string]int{"fd": 3}}
	if err := c.Validate(5); err == nil {
		t.Fatalf("expected validation error for fd in both exactly and at_most")
	}
}
