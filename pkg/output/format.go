// Package output provides utilities for formatting and displaying plans.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/sip-planner/internal/plan"
	"github.com/iwvelando/sip-planner/pkg/datetime"
	"github.com/iwvelando/sip-planner/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var csvHeader = []string{
	"id", "token", "total amount", "interval amount", "frequency", "interval days",
	"maturity months", "next execution", "status", "progress", "executions", "invested",
}

// PrettyFormat writes a human-readable rather than machine-readable table,
// followed by the portfolio summary.
func PrettyFormat(w io.Writer, plans []plan.Plan, summary plan.Summary) {
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "--- Plans ---\n")
	_, _ = fmt.Fprintf(w, "Token | Total         | Per interval | Frequency | Next       | Status    | Progress\n")
	_, _ = fmt.Fprintf(w, "_____ | _____________ | ____________ | _________ | __________ | _________ | ________\n")
	for _, pl := range plans {
		_, _ = p.Fprintf(w, "%-5s | %13s | %12s | %-9s | %-10s | %-9s | %d%%\n",
			pl.Token,
			format.Currency(pl.TotalAmount),
			format.Currency(pl.IntervalAmount),
			pl.Frequency,
			datetime.FormatDate(pl.NextExecution),
			pl.Status,
			pl.Progress,
		)
	}

	_, _ = fmt.Fprintf(w, "\n--- Portfolio ---\n")
	_, _ = p.Fprintf(w, "Plans:     %d (%d active, %d paused, %d completed)\n",
		summary.TotalPlans, summary.ActivePlans, summary.PausedPlans, summary.CompletedPlans)
	_, _ = fmt.Fprintf(w, "Committed: %s\n", format.Currency(summary.TotalCommitted))
	_, _ = fmt.Fprintf(w, "Invested:  %s (%s%%)\n", format.Currency(summary.TotalInvested), summary.InvestedPercent.StringFixed(2))
	_, _ = fmt.Fprintf(w, "Gas spent: %s\n", summary.GasSpent.String())
}

// CsvFormat writes one row per plan in comma-separated value format.
func CsvFormat(w io.Writer, plans []plan.Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, pl := range plans {
		record := []string{
			pl.ID,
			pl.Token,
			pl.TotalAmount.StringFixed(2),
			pl.IntervalAmount.StringFixed(2),
			string(pl.Frequency),
			strconv.Itoa(pl.IntervalDays),
			strconv.Itoa(pl.MaturityMonths),
			datetime.FormatDate(pl.NextExecution),
			string(pl.Status),
			strconv.Itoa(pl.Progress),
			strconv.Itoa(pl.Executions),
			pl.InvestedAmount().StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering of plans.
func CsvString(plans []plan.Plan) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, plans); err != nil {
		return ""
	}
	return buf.String()
}
