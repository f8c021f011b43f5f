package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	oldState := map[string]any{
		"name":     "Main Warehouse",
		"type":     "main",
		"address":  "12 Dock Rd",
		"obsolete": true,
	}
	newState := map[string]any{
		"name":    "Main Warehouse",
		"type":    "retail",
		"address": "12 Dock Rd",
		"comment": "converted",
	}

	changes := Diff(oldState, newState)

	assert.Len(t, changes, 3)
	assert.Equal(t, map[string]any{"old": "main", "new": "retail"}, changes["type"])
	assert.Equal(t, map[string]any{"old": true, "new": nil}, changes["obsolete"])
	assert.Equal(t, map[string]any{"old": nil, "new": "converted"}, changes["comment"])
	assert.NotContains(t, changes, "name")
	assert.NotContains(t, changes, "address")
}

func TestDiff_NoChanges(t *testing.T) {
	state := map[string]any{"name": "Transit", "type": "transit"}

	changes := Diff(state, map[string]any{"name": "Transit", "type": "transit"})

	assert.Empty(t, changes)
}
