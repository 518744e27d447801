package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStateIsLoading(t *testing.T) {
	s := NewState()
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Equal(t, "Loading...", s.Text())
	assert.False(t, s.Settled())
}

func TestShowSettlesOnce(t *testing.T) {
	s := NewState()

	assert.True(t, s.Show("hi"))
	assert.Equal(t, PhaseDisplayed, s.Phase())
	assert.Equal(t, "hi", s.Text())

	// Terminal: later outcomes are dropped.
	assert.False(t, s.Show("again"))
	assert.False(t, s.Fail("timeout"))
	assert.Equal(t, "hi", s.Text())
}

func TestFailPrefixesDescription(t *testing.T) {
	s := NewState()

	assert.True(t, s.Fail("timeout"))
	assert.Equal(t, PhaseErrorDisplayed, s.Phase())
	assert.Equal(t, "Error: timeout", s.Text())

	assert.False(t, s.Show("hi"))
	assert.Equal(t, "Error: timeout", s.Text())
}

func TestShowEmptyMessage(t *testing.T) {
	s := NewState()
	s.Show("")
	assert.True(t, s.Settled())
	assert.Equal(t, "", s.Text())
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseLoading, "loading"},
		{PhaseDisplayed, "displayed"},
		{PhaseErrorDisplayed, "error_displayed"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.phase.String())
	}
}
