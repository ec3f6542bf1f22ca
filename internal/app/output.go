package app

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"

	"github.com/rl1809/updatechecker/internal/adapter/handler"
	"github.com/rl1809/updatechecker/internal/core/domain"
)

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorGray  = "\033[90m"
)

// colorEnabled reports whether w is a terminal and NO_COLOR is unset.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func outcomeRows(outcomes []domain.RefreshOutcome) []handler.OutcomeResponse {
	rows := make([]handler.OutcomeResponse, 0, len(outcomes))
	for _, o := range outcomes {
		row := handler.OutcomeResponse{
			SoftwareID: o.SoftwareID,
			Status:     string(o.Status),
			Version:    o.Version,
			Previous:   o.Previous,
		}
		if o.Err != nil {
			row.Error = o.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}

// renderOutcomes prints one line per software and returns the number of failures.
func renderOutcomes(w io.Writer, rows []handler.OutcomeResponse) int {
	color := colorEnabled(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOFTWARE\tSTATUS\tPREVIOUS\tVERSION\tERROR")

	failed := 0
	for _, r := range rows {
		status := r.Status
		if r.Status == string(domain.RefreshError) {
			failed++
		}
		if color {
			switch domain.RefreshStatus(r.Status) {
			case domain.RefreshUpdated:
				status = colorGreen + status + colorReset
			case domain.RefreshError:
				status = colorRed + status + colorReset
			default:
				status = colorGray + status + colorReset
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.SoftwareID, status, dash(r.Previous), dash(r.Version), r.Error)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d software, %d failed\n", len(rows), failed)
	return failed
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
