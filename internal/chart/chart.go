// Package chart renders categorical bar charts for the dashboard.
// A Chart is an owned handle bound to one dashboard panel: recreating the
// panel's chart requires closing the prior handle first.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Category is one labelled bar.
type Category struct {
	Label string
	Value int
	Color string // hex color for the bar
}

// Chart is a live chart handle. After Close it renders nothing.
type Chart struct {
	title      string
	categories []Category
	closed     bool
}

// New creates a live chart handle for the given categories.
func New(title string, categories []Category) *Chart {
	return &Chart{
		title:      title,
		categories: categories,
	}
}

// Close releases the handle. Rendering a closed chart yields an empty
// string; closing twice is harmless.
func (c *Chart) Close() {
	c.closed = true
}

// Closed reports whether the handle has been released.
func (c *Chart) Closed() bool {
	return c.closed
}

// Values returns the category values in order.
func (c *Chart) Values() []int {
	values := make([]int, len(c.categories))
	for i, cat := range c.categories {
		values[i] = cat.Value
	}
	return values
}

// Render draws the chart as horizontal bars scaled to width.
func (c *Chart) Render(width int) string {
	if c.closed {
		return ""
	}
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(c.title))
	b.WriteString("\n\n")

	labelWidth := 0
	max := 1
	for _, cat := range c.categories {
		if len(cat.Label) > labelWidth {
			labelWidth = len(cat.Label)
		}
		if cat.Value > max {
			max = cat.Value
		}
	}

	barSpace := width - labelWidth - 8
	if barSpace < 4 {
		barSpace = 4
	}

	for _, cat := range c.categories {
		barLen := cat.Value * barSpace / max
		if cat.Value > 0 && barLen == 0 {
			barLen = 1
		}

		bar := lipgloss.NewStyle().
			Foreground(lipgloss.Color(cat.Color)).
			Render(strings.Repeat("█", barLen))

		b.WriteString(fmt.Sprintf("%-*s %s %d\n", labelWidth, cat.Label, bar, cat.Value))
	}

	return b.String()
}
