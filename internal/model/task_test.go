package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus_CycleClosure(t *testing.T) {
	assert.Equal(t, StatusInProgress, NextStatus(StatusTodo))
	assert.Equal(t, StatusDone, NextStatus(StatusInProgress))
	assert.Equal(t, StatusTodo, NextStatus(StatusDone))

	// Three applications return to the start.
	s := StatusTodo
	for i := 0; i < 3; i++ {
		s = NextStatus(s)
	}
	assert.Equal(t, StatusTodo, s)
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusTodo, StatusInProgress, StatusDone} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("blocked"))
	assert.False(t, ValidStatus("Todo"))
}

func TestValidPriority(t *testing.T) {
	for _, p := range []string{PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, ValidPriority(p), p)
	}
	assert.False(t, ValidPriority(""))
	assert.False(t, ValidPriority("urgent"))
}
