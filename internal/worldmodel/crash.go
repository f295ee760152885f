package worldmodel

// CrashReason identifies why the reference emulator (component B) halted
// a program early (spec.md §4.B).
type CrashReason string

const (
	CrashWall           CrashReason = "WALL"
	CrashOutOfWorld     CrashReason = "OUT_OF_WORLD"
	CrashForbiddenArea  CrashReason = "FORBIDDEN_AREA"
	CrashGridNotExist   CrashReason = "GRID_NOT_EXIST"
	CrashExceedMaxCalls CrashReason = "EXCEED_MAX_CALLS"
)

// MaxCalls is the emulator call budget from spec.md §4.B: exceeding it
// raises CrashExceedMaxCalls.
const MaxCalls = 100000
