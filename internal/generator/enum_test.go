package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEnum(t *testing.T) {
	e := NewEnum("Status", "Lifecycle", []string{"active", "in progress", "active", "on-hold"})

	assert.Equal(t, "Status", e.Name)
	assert.Equal(t, "Lifecycle", e.Description)
	assert.Equal(t, []string{"ACTIVE", "IN_PROGRESS", "ACTIVE", "ON_HOLD"}, e.Values)
}

func TestNewEnumEmpty(t *testing.T) {
	e := NewEnum("Empty", "", nil)
	assert.Empty(t, e.Values)
}
