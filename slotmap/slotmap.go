package slotmap

import (
	"fmt"
	"math/bits"
)

const (
	// wordBits is the number of slots tracked per word.
	wordBits = 64

	// wordShift and wordMask convert slot indices to (word, bit) pairs:
	// shifting right by 6 divides by 64, masking the low 6 bits gives the
	// remainder.
	wordShift = 6
	wordMask  = 63

	// fullyAllocated is a word with every slot claimed; fullyFree the inverse.
	fullyAllocated uint64 = 0
	fullyFree             = ^uint64(0)
)

// Map hands out free slots and takes them back, guaranteeing no two
// concurrent callers are ever handed the same slot.
type Map interface {
	// ClaimOne marks one free slot allocated and returns its index.
	// ok is false when every slot is allocated.
	ClaimOne() (slot int, ok bool)

	// Release marks a previously claimed slot free again. It rejects
	// out-of-range indices (ErrSlotRange) and slots that are already free
	// (ErrDoubleRelease), leaving the map unchanged in both cases.
	Release(slot int) error

	// SlotCount returns the fixed number of slots, always a multiple of 64.
	SlotCount() int

	// CASRetries returns the number of failed compare-and-swap attempts so
	// far. Diagnostic only; always zero for the locked disciplines.
	CASRetries() uint64
}

// New constructs a Map with every slot free. slotCount must be a positive
// multiple of 64.
func New(slotCount int, d Discipline) (Map, error) {
	if slotCount < wordBits || slotCount%wordBits != 0 {
		return nil, fmt.Errorf("%w: %d", ErrSlotCount, slotCount)
	}
	numWords := slotCount / wordBits
	switch d {
	case Exclusive:
		return newLockedMap(numWords, false), nil
	case Spin:
		return newLockedMap(numWords, true), nil
	case LockFree:
		return newCASMap(numWords, false), nil
	case LockFreeHint:
		return newCASMap(numWords, true), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrDiscipline, uint8(d))
	}
}

// splitIndex converts a slot index into its word index and bit position.
func splitIndex(slot int) (word int, bit uint) {
	return slot >> wordShift, uint(slot & wordMask)
}

// joinIndex converts a (word, bit) pair back into a slot index.
func joinIndex(word, bit int) int {
	return word<<wordShift | bit
}

// highestFreeBit returns the highest-numbered set bit of w, or -1 when w is
// fully allocated. Claiming from the MSB side keeps single-threaded claim
// order deterministic: slot 63, 62, ... within each word.
func highestFreeBit(w uint64) int {
	return wordMask - bits.LeadingZeros64(w)
}
