package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/equity"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the per-symbol valuation roll-ups of a book.
// Results come pre-aggregated, one per symbol, in display order.
func SummaryMarkdown(on equity.Date, results []equity.ValuationResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Equity Summary on %s", on))

	rows := make([][]string, 0, len(results))
	for _, v := range results {
		nextVest := "-"
		if !v.NextVestDate.IsZero() {
			nextVest = fmt.Sprintf("%d on %s", v.NextVestUnits, v.NextVestDate)
		}
		rows = append(rows, []string{
			v.Symbol,
			fmt.Sprintf("%d", v.VestedUnits),
			v.VestedValue.String(),
			fmt.Sprintf("%d", v.UnvestedUnits),
			v.UnvestedValue.String(),
			nextVest,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Symbol", "Vested", "Vested Value", "Unvested", "Unvested Value", "Next Vest"},
		Rows:   rows,
	})

	return doc.String()
}
