package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fixscore/internal/models"
	"fixscore/internal/scrape"
)

const reportFileName = "report.txt"

// ReportPath is where the plain-text run report will be written.
func (w *Writer) ReportPath() string { return filepath.Join(w.dir, reportFileName) }

// WriteReport renders a human-readable summary of the run, mirroring the
// terminal output without ANSI color codes.
func (w *Writer) WriteReport(fixtures []*models.FixtureMatch, bundle *scrape.ErrorBundle) error {
	var b strings.Builder

	b.WriteString("\n  FIXSCORE extraction report\n")
	b.WriteString("  " + strings.Repeat("-", 58) + "\n\n")
	b.WriteString(fmt.Sprintf("  Generated: %s\n", time.Now().Format(time.RFC1123)))
	b.WriteString(fmt.Sprintf("  Fixtures:  %d\n\n", len(fixtures)))

	for _, f := range fixtures {
		b.WriteString(fmt.Sprintf("  %s\n", f.String()))
		writeFormLine(&b, "home", f.HomeForm)
		writeFormLine(&b, "away", f.AwayForm)
		writeHeadToHeadLine(&b, f)
		b.WriteString("\n")
	}

	if bundle != nil && !bundle.Empty() {
		b.WriteString("  " + strings.Repeat("-", 50) + "\n")
		b.WriteString(fmt.Sprintf("  Problems (%d):\n", bundle.Len()))
		for _, stage := range bundle.Stages() {
			b.WriteString(fmt.Sprintf("    %s:\n", stage))
			for _, msg := range bundle.Messages(stage) {
				b.WriteString(fmt.Sprintf("      - %s\n", msg))
			}
		}
		b.WriteString("\n")
	}

	return os.WriteFile(w.ReportPath(), []byte(b.String()), 0o644)
}

func writeFormLine(b *strings.Builder, side string, form *models.TeamForm) {
	if form == nil {
		b.WriteString(fmt.Sprintf("      %s form:  unavailable\n", side))
		return
	}
	b.WriteString(fmt.Sprintf("      %s form:  %dW %dD %dL, %d:%d over %d match(es)\n",
		side, form.Wins(), form.Draws(), form.Losses(),
		form.GoalsScored(), form.GoalsConceded(), len(form.Matches)))
}

func writeHeadToHeadLine(b *strings.Builder, f *models.FixtureMatch) {
	if f.HeadToHead == nil {
		b.WriteString("      head-to-head: unavailable\n")
		return
	}
	record, err := f.HeadToHead.TeamRecord(f.HomeTeam)
	if err != nil {
		b.WriteString("      head-to-head: unavailable\n")
		return
	}
	b.WriteString(fmt.Sprintf("      head-to-head: %dW %dD %dL for %s over %d meeting(s)\n",
		record.Wins, record.Draws, record.Losses,
		f.HomeTeam.Name, len(f.HeadToHead.Matches)))
}
