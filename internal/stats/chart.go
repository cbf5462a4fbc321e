package stats

import (
	"fmt"
	"strings"
)

const chartWidth = 40

// RenderChart draws a horizontal text bar chart, bars scaled against the
// largest count.
func RenderChart(title string, rows []NameCount) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title)
	if len(rows) == 0 {
		fmt.Fprintf(&b, "  no %s data available\n", strings.ToLower(title))
		return b.String()
	}

	maxCount := 0
	maxName := 0
	for _, r := range rows {
		if r.Count > maxCount {
			maxCount = r.Count
		}
		if len(r.Name) > maxName {
			maxName = len(r.Name)
		}
	}

	for _, r := range rows {
		width := 0
		if maxCount > 0 {
			width = r.Count * chartWidth / maxCount
		}
		fmt.Fprintf(&b, "  %-*s %s %d\n", maxName, r.Name, strings.Repeat("#", width), r.Count)
	}
	return b.String()
}
