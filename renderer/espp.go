package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/equity"
	md "github.com/nao1215/markdown"
)

// ESPPMarkdown renders a plan simulation: purchase history, pending
// contribution and plan progress.
func ESPPMarkdown(r equity.ESPPResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("ESPP Report for %s on %s", r.Symbol, r.On))
	doc.PlainText(fmt.Sprintf("Buying period progress: %d months elapsed, %d remaining.",
		r.MonthsElapsed, r.MonthsRemaining))

	rows := make([][]string, 0, len(r.Purchases))
	for _, p := range r.Purchases {
		rows = append(rows, []string{
			p.Date.String(),
			p.Contribution.String(),
			p.Shares.Round(4).String(),
			p.Price.String(),
			p.Value.String(),
			p.GainLoss.SignedString(),
			p.GainLossPercent.SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Purchase", "Contribution", "Shares", "Price", "Value", "Gain/Loss", "%"},
		Rows:   rows,
	})

	doc.H2("Totals")
	doc.Table(md.TableSet{
		Header: []string{"Shares", "Contribution", "Value", "Gain/Loss", "%", "Pending"},
		Rows: [][]string{{
			r.TotalShares.Round(4).String(),
			r.TotalContribution.String(),
			r.TotalValue.String(),
			r.TotalGainLoss.SignedString(),
			r.TotalGainLossPercent.SignedString(),
			r.Pending.String(),
		}},
	})

	return doc.String()
}
