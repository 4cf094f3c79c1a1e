package slotmap

import "errors"

var (
	// ErrSlotCount indicates a slot count that is not a positive multiple of 64.
	ErrSlotCount = errors.New("slotmap: slot count must be a positive multiple of 64")

	// ErrSlotRange indicates a slot index outside [0, SlotCount).
	ErrSlotRange = errors.New("slotmap: slot index out of range")

	// ErrDoubleRelease indicates an attempt to release a slot that is already free.
	ErrDoubleRelease = errors.New("slotmap: slot already free")

	// ErrDiscipline indicates an unknown synchronization discipline.
	ErrDiscipline = errors.New("slotmap: unknown discipline")
)
