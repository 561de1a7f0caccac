// Package renderer turns engine results into markdown reports for the CLI
// and any other textual consumer.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/equity"
	md "github.com/nao1215/markdown"
)

// ScheduleMarkdown renders the full vesting schedule of one grant, with the
// vested/unvested status of every installment as of 'on'.
func ScheduleMarkdown(symbol string, on equity.Date, s equity.Schedule) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Vesting Schedule for %s", symbol))
	doc.PlainText(fmt.Sprintf("As of %s: %d vested, %d unvested of %d total units.",
		on, s.VestedUnits(on), s.UnvestedUnits(on), s.TotalUnits()))

	rows := make([][]string, 0, len(s.Events()))
	running := 0
	for _, e := range s.Events() {
		running += e.Units
		status := "unvested"
		if !e.Date.After(on) {
			status = "vested"
		}
		rows = append(rows, []string{
			e.Date.String(),
			fmt.Sprintf("%d", e.Units),
			fmt.Sprintf("%d", running),
			status,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Units", "Cumulative", "Status"},
		Rows:   rows,
	})

	if next, ok := s.NextVest(on); ok {
		doc.PlainText(fmt.Sprintf("Next vest: %d units on %s.", next.Units, next.Date))
	} else {
		doc.PlainText("No upcoming vest: the schedule is exhausted or terminated.")
	}
	return doc.String()
}
