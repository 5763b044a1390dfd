package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testMonths() []string {
	return []string{"june_2025", "july_2025", "august_2025", "september_2025"}
}

func TestSequenceNext(t *testing.T) {
	seq := NewSequence(testMonths())

	next, ok := seq.Next("june_2025")
	assert.True(t, ok)
	assert.Equal(t, "july_2025", next)

	next, ok = seq.Next("september_2025")
	assert.False(t, ok)
	assert.Empty(t, next)

	next, ok = seq.Next("unknown_month")
	assert.False(t, ok)
	assert.Empty(t, next)
}

func TestSequenceIsStart(t *testing.T) {
	seq := NewSequence(testMonths())

	assert.True(t, seq.IsStart("june_2025"))
	assert.False(t, seq.IsStart("july_2025"))
	assert.False(t, seq.IsStart("unknown_month"))
}

func TestSequenceContainsAndIndex(t *testing.T) {
	seq := NewSequence(testMonths())

	assert.True(t, seq.Contains("august_2025"))
	assert.False(t, seq.Contains("august_2030"))
	assert.Equal(t, 2, seq.Index("august_2025"))
	assert.Equal(t, -1, seq.Index("august_2030"))
}

func TestSequenceBefore(t *testing.T) {
	seq := NewSequence(testMonths())

	assert.Empty(t, seq.Before("june_2025"))
	assert.Equal(t, []string{"june_2025", "july_2025"}, seq.Before("august_2025"))
	assert.Nil(t, seq.Before("unknown_month"))
}

func TestSequenceMonthsIsACopy(t *testing.T) {
	seq := NewSequence(testMonths())

	months := seq.Months()
	months[0] = "tampered"
	assert.True(t, seq.IsStart("june_2025"))
}
