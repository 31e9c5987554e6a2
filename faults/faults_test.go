package faults

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validationf("Fill all details!"), Validation},
		{"domain", Domainf("Slot is full!"), Domain},
		{"infra", Infraf(errors.New("timeout"), "slot reserve"), Infra},
		{"untyped", errors.New("boom"), Infra},
		{"wrapped", fmt.Errorf("handler: %w", Domainf("Already booked for this date!")), Domain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Slot is full!", Message(Domainf("Slot is full!")))
	assert.Equal(t, "Fill all details!", Message(Validationf("Fill all details!")))

	// Infrastructure detail never reaches the client.
	assert.Equal(t, "Server error.", Message(Infraf(errors.New("conn refused"), "mongo")))
	assert.Equal(t, "Server error.", Message(errors.New("anything")))
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("conn refused")
	err := Infraf(inner, "mongo find")
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "mongo find")
	assert.Contains(t, err.Error(), "conn refused")
}
