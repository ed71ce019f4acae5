package chart

import (
	"strings"
	"testing"
)

func TestChartRenderShowsAllCategories(t *testing.T) {
	c := New("Problems Solved", []Category{
		{Label: "Passed", Value: 3, Color: "#10B981"},
		{Label: "Failed", Value: 1, Color: "#EF4444"},
	})

	out := c.Render(60)
	for _, want := range []string{"Problems Solved", "Passed", "Failed", "3", "1"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestChartZeroValueStillListed(t *testing.T) {
	c := New("By Difficulty", []Category{
		{Label: "Easy", Value: 2, Color: "#10B981"},
		{Label: "Medium", Value: 0, Color: "#F59E0B"},
		{Label: "Hard", Value: 1, Color: "#EF4444"},
	})

	out := c.Render(60)
	if !strings.Contains(out, "Medium") {
		t.Errorf("zero-valued category should still be listed:\n%s", out)
	}
}

func TestChartCloseStopsRendering(t *testing.T) {
	c := New("Problems Solved", []Category{{Label: "Passed", Value: 1, Color: "#10B981"}})

	c.Close()
	if !c.Closed() {
		t.Error("expected chart to report closed")
	}
	if out := c.Render(60); out != "" {
		t.Errorf("closed chart must render nothing, got %q", out)
	}

	// Redundant close is harmless.
	c.Close()
}

func TestChartValues(t *testing.T) {
	c := New("t", []Category{
		{Label: "a", Value: 5},
		{Label: "b", Value: 0},
		{Label: "c", Value: 2},
	})
	values := c.Values()
	want := []int{5, 0, 2}
	for i, v := range want {
		if values[i] != v {
			t.Errorf("values[%d]: got %d, want %d", i, values[i], v)
		}
	}
}
