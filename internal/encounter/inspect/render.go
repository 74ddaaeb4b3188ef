package inspect

import (
	"errors"
	"io"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type line struct {
	format string
	args   []any
}

// Render writes a report as the text shown to operators. Stat numbers follow
// tag's conventions; identifiers are printed raw so they can be copied.
func Render(w io.Writer, report Report, tag language.Tag) error {
	if w == nil {
		return errors.New("output is required")
	}
	p := message.NewPrinter(tag)
	stats := report.Decoded.Stats

	lines := []line{
		{"Seed: %s\n", []any{report.Hex}},
		{"Timestamp: %s (event ID prefix %s)\n", []any{
			strconv.FormatUint(report.Decoded.Timestamp, 10),
			strconv.FormatUint(report.EventIDPrefix, 10),
		}},
		{"Earliest event time: %s\n", []any{report.ApproxTime.Format(time.RFC3339)}},
		{"Stats: %s %d-%d\n", []any{stats.Type, stats.Min, stats.Max}},
		{"Win: %.0f%%\n", []any{stats.WinPercent * 100}},
		{"Easy mode under 30 rebirths: %t\n", []any{report.Preview.EasyMode}},
		{"No monster: %t\n", []any{report.Preview.NoMonster}},
		{"No monster under 30 rebirths: %t\n", []any{report.Preview.NoMonsterLowRebirth}},
	}
	if report.Record != nil {
		lines = append(lines,
			line{"Event ID: %s\n", []any{strconv.FormatUint(report.Record.EventID, 10)}},
			line{"Recorded: %s\n", []any{report.Record.CreatedAt.Format(time.RFC3339)}},
		)
	}

	for _, l := range lines {
		if _, err := p.Fprintf(w, l.format, l.args...); err != nil {
			return err
		}
	}
	return nil
}
