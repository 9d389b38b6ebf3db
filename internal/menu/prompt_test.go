package menu

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMenuItemsAlignsColumns(t *testing.T) {
	options := []MenuOption{
		{Label: "1. Scan", Description: "first", Enabled: true},
		{Label: "2. Verify workspace", Description: "second", Enabled: true},
		{Label: "hidden", Description: "disabled entries are skipped", Enabled: false},
		{Label: "0. Quit", Description: "third", Enabled: true},
	}

	items, indexes := formatMenuItems(options)
	require.Len(t, items, 3)
	assert.Equal(t, []int{0, 1, 3}, indexes)

	// Descriptions start at the same column for every rendered item.
	column := strings.Index(items[0], "first")
	assert.Equal(t, column, strings.Index(items[1], "second"))
	assert.Equal(t, column, strings.Index(items[2], "third"))
}

func TestBuildOptionsCoversWorkflows(t *testing.T) {
	m := &Menu{}
	options := m.buildOptions()

	require.Len(t, options, 5)
	assert.Contains(t, options[0].Label, "Scan")
	assert.Contains(t, options[1].Label, "Verify")
	assert.Contains(t, options[2].Label, "manifest")
	assert.Contains(t, options[3].Label, "Prune")
	assert.Contains(t, options[4].Label, "Quit")

	for _, option := range options {
		assert.True(t, option.Enabled)
		assert.NotNil(t, option.Handler)
	}

	// The quit handler signals termination without side effects.
	err := options[4].Handler(context.Background())
	assert.ErrorIs(t, err, errQuit)
}
