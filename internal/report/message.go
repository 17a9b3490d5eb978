package report

import (
	"fmt"
	"strings"
	"time"
)

// Fields holds the extracted display values for one report cycle.
type Fields struct {
	Status    string
	Trades    string
	ProfitAbs string
	ProfitPct string
	Balance   string
}

// BuildMessage assembles the report body sent to Telegram. The timestamp
// reflects the UTC clock at call time; everything else is deterministic.
func BuildMessage(f Fields, pairlistBlock string) string {
	var b strings.Builder
	b.WriteString("Freqtrade Status Report\n")
	b.WriteString("Time: " + time.Now().UTC().Format("2006-01-02 15:04:05") + " UTC\n")
	fmt.Fprintf(&b, "Status: %s\n", f.Status)
	fmt.Fprintf(&b, "Open trades: %s\n", f.Trades)
	fmt.Fprintf(&b, "Profit: %s (%s)\n", f.ProfitAbs, f.ProfitPct)
	fmt.Fprintf(&b, "Balance: %s\n", f.Balance)
	if pairlistBlock != "" {
		b.WriteString("\n" + pairlistBlock + "\n")
	}
	return b.String()
}
