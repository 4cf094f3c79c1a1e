package slotmap

import "fmt"

// Discipline selects how concurrent access to the map is serialized.
type Discipline uint8

const (
	// Exclusive serializes claim and release through a sync.Mutex.
	Exclusive Discipline = iota

	// Spin serializes through a busy-wait CAS lock that yields the
	// processor instead of sleeping.
	Spin

	// LockFree claims bits with per-word compare-and-swap, scanning from
	// word zero.
	LockFree

	// LockFreeHint claims bits with per-word compare-and-swap, starting
	// each scan at a round-robin hint to spread contention.
	LockFreeHint
)

var disciplineNames = map[Discipline]string{
	Exclusive:    "exclusive",
	Spin:         "spin",
	LockFree:     "lockfree",
	LockFreeHint: "lockfree-hint",
}

// String returns the name accepted by ParseDiscipline.
func (d Discipline) String() string {
	if name, ok := disciplineNames[d]; ok {
		return name
	}
	return fmt.Sprintf("discipline(%d)", uint8(d))
}

// Disciplines lists every discipline in construction order.
func Disciplines() []Discipline {
	return []Discipline{Exclusive, Spin, LockFree, LockFreeHint}
}

// ParseDiscipline maps a name (as produced by String) back to a Discipline.
func ParseDiscipline(s string) (Discipline, error) {
	for d, name := range disciplineNames {
		if s == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrDiscipline, s)
}
