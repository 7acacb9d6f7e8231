package usecases

import (
	"errors"

	"focus_forge/internal/models"
)

var (
	ErrSlotsFull     = errors.New("all three focus slots are taken")
	ErrAlreadyPinned = errors.New("task is already pinned")
	ErrNotPinned     = errors.New("task is not pinned")
	ErrSlotOccupied  = errors.New("slot is occupied")
	ErrSlotEmpty     = errors.New("slot is empty")
	ErrInvalidSlot   = errors.New("slot must be 1, 2 or 3")
)

// SlotOf returns the 1-based slot holding taskID, or 0.
func SlotOf(s models.Slots, taskID int64) int {
	for i, id := range s {
		if id != nil && *id == taskID {
			return i + 1
		}
	}
	return 0
}

func FreeSlots(s models.Slots) int {
	free := 0
	for _, id := range s {
		if id == nil {
			free++
		}
	}
	return free
}

func checkSlot(slot int) error {
	if slot < 1 || slot > models.SlotCount {
		return ErrInvalidSlot
	}
	return nil
}

// Pin places taskID into slot, or into the first free slot when slot is 0.
// It returns the slot used.
func Pin(s models.Slots, taskID int64, slot int) (models.Slots, int, error) {
	if SlotOf(s, taskID) != 0 {
		return s, 0, ErrAlreadyPinned
	}

	if slot == 0 {
		for i, id := range s {
			if id == nil {
				slot = i + 1
				break
			}
		}
		if slot == 0 {
			return s, 0, ErrSlotsFull
		}
	} else {
		if err := checkSlot(slot); err != nil {
			return s, 0, err
		}
		if s[slot-1] != nil {
			if FreeSlots(s) == 0 {
				return s, 0, ErrSlotsFull
			}
			return s, 0, ErrSlotOccupied
		}
	}

	id := taskID
	s[slot-1] = &id
	return s, slot, nil
}

func UnpinSlot(s models.Slots, slot int) (models.Slots, error) {
	if err := checkSlot(slot); err != nil {
		return s, err
	}
	if s[slot-1] == nil {
		return s, ErrSlotEmpty
	}
	s[slot-1] = nil
	return s, nil
}

func UnpinTask(s models.Slots, taskID int64) (models.Slots, error) {
	slot := SlotOf(s, taskID)
	if slot == 0 {
		return s, ErrNotPinned
	}
	s[slot-1] = nil
	return s, nil
}

// Swap puts taskID into slot. When taskID is already pinned elsewhere the
// two slots exchange contents.
func Swap(s models.Slots, slot int, taskID int64) (models.Slots, error) {
	if err := checkSlot(slot); err != nil {
		return s, err
	}

	if from := SlotOf(s, taskID); from != 0 {
		s[from-1], s[slot-1] = s[slot-1], s[from-1]
		return s, nil
	}

	id := taskID
	s[slot-1] = &id
	return s, nil
}
