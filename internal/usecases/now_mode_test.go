package usecases

import (
	"testing"

	"focus_forge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotIDs(s models.Slots) []int64 {
	out := make([]int64, len(s))
	for i, p := range s {
		if p != nil {
			out[i] = *p
		}
	}
	return out
}

func TestPinFirstFree(t *testing.T) {
	s := models.Slots{id(7), nil, nil}

	s, slot, err := Pin(s, 8, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, slot)

	s, slot, err = Pin(s, 9, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, slot)
	assert.Equal(t, []int64{7, 8, 9}, slotIDs(s))
	assert.Equal(t, 0, FreeSlots(s))

	_, _, err = Pin(s, 10, 0)
	assert.ErrorIs(t, err, ErrSlotsFull)
}

func TestPinExplicitSlot(t *testing.T) {
	s := models.Slots{}

	s, slot, err := Pin(s, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, slot)
	assert.Equal(t, []int64{0, 0, 4}, slotIDs(s))

	_, _, err = Pin(s, 5, 3)
	assert.ErrorIs(t, err, ErrSlotOccupied)

	_, _, err = Pin(s, 4, 1)
	assert.ErrorIs(t, err, ErrAlreadyPinned)

	_, _, err = Pin(s, 5, 4)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestPinDoesNotMutateInput(t *testing.T) {
	s := models.Slots{}
	_, _, err := Pin(s, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, FreeSlots(s))
}

func TestUnpin(t *testing.T) {
	s := models.Slots{id(1), id(2), nil}

	s, err := UnpinSlot(s, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2, 0}, slotIDs(s))

	_, err = UnpinSlot(s, 1)
	assert.ErrorIs(t, err, ErrSlotEmpty)

	s, err = UnpinTask(s, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, FreeSlots(s))

	_, err = UnpinTask(s, 2)
	assert.ErrorIs(t, err, ErrNotPinned)
}

func TestSwap(t *testing.T) {
	s := models.Slots{id(1), id(2), nil}

	replaced, err := Swap(s, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 2, 0}, slotIDs(replaced))

	exchanged, err := Swap(s, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1, 0}, slotIDs(exchanged))

	_, err = Swap(s, 0, 2)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}
