package report

import (
	"fmt"
	"strings"
)

// Pairlist layout styles.
const (
	StyleList    = "list"
	StyleColumns = "columns"
)

// PairlistOptions controls how the pairlist block is rendered.
type PairlistOptions struct {
	Limit    int    // max items shown, default 25
	Heading  string // default "Pairlist"
	Style    string // "list" (default) or "columns"
	Columns  int    // columns per row, default 3
	ColWidth int    // label width, default 18, minimum 8
}

func (o PairlistOptions) normalized() PairlistOptions {
	if o.Limit <= 0 {
		o.Limit = 25
	}
	if o.Heading == "" {
		o.Heading = "Pairlist"
	}
	if o.Style == "" {
		o.Style = StyleList
	}
	if o.Columns == 0 {
		o.Columns = 3
	} else if o.Columns < 1 {
		o.Columns = 1
	}
	if o.ColWidth == 0 {
		o.ColWidth = 18
	} else if o.ColWidth < 8 {
		o.ColWidth = 8
	}
	return o
}

// FormatPairlist renders trading pairs as a numbered list or a fixed-width
// column grid. Only the first Limit pairs are shown; the heading reports the
// true total. An empty input yields an empty block so callers can omit it.
func FormatPairlist(pairs []string, opts PairlistOptions) string {
	if len(pairs) == 0 {
		return ""
	}
	o := opts.normalized()

	shown := pairs
	if len(shown) > o.Limit {
		shown = shown[:o.Limit]
	}
	heading := fmt.Sprintf("%s (%d total, showing %d):", o.Heading, len(pairs), len(shown))

	if o.Style == StyleColumns {
		var rows []string
		var row strings.Builder
		for i, p := range shown {
			label := fmt.Sprintf("%2d. %s", i+1, p)
			if pad := o.ColWidth - len(label); pad > 0 {
				label += strings.Repeat(" ", pad)
			}
			row.WriteString(label)
			if (i+1)%o.Columns == 0 {
				rows = append(rows, row.String())
				row.Reset()
			}
		}
		if row.Len() > 0 {
			rows = append(rows, row.String())
		}
		// Fenced so Telegram renders the grid in monospace.
		return fmt.Sprintf("%s\n```\n%s\n```", heading, strings.Join(rows, "\n"))
	}

	lines := make([]string, 0, len(shown)+1)
	lines = append(lines, heading)
	for i, p := range shown {
		lines = append(lines, fmt.Sprintf("%2d. %s", i+1, p))
	}
	return strings.Join(lines, "\n")
}
