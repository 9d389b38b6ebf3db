package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	runewidth "github.com/mattn/go-runewidth"
)

func (m *Menu) promptSelection(options []MenuOption) (int, error) {
	items, indexes := formatMenuItems(options)

	prompt := promptui.Select{
		Label:    "Please select an operation",
		Items:    items,
		Size:     10,
		HideHelp: false,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}:",
			Active:   "▶ {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "✅ {{ . | green }}",
		},
	}

	index, _, err := prompt.Run()
	if err != nil {
		return -1, err
	}

	if index >= 0 && index < len(indexes) {
		return indexes[index], nil
	}

	return -1, errors.New("invalid selection")
}

// formatMenuItems aligns option labels and descriptions into two columns.
// runewidth keeps the alignment correct for wide characters.
func formatMenuItems(options []MenuOption) ([]string, []int) {
	maxLabelWidth := 0
	for _, option := range options {
		if !option.Enabled {
			continue
		}
		if width := runewidth.StringWidth(option.Label); width > maxLabelWidth {
			maxLabelWidth = width
		}
	}

	items := make([]string, 0, len(options))
	indexes := make([]int, 0, len(options))

	for i, option := range options {
		if !option.Enabled {
			continue
		}

		padding := strings.Repeat(" ", maxLabelWidth-runewidth.StringWidth(option.Label))
		items = append(items, fmt.Sprintf("%s%s  %s", option.Label, padding, option.Description))
		indexes = append(indexes, i)
	}

	return items, indexes
}

func (m *Menu) promptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if err.Error() == "^C" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
