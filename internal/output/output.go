// Package output handles CLI output formatting for prefixsub, including the
// end-of-run summary tables.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"prefixsub/internal/orchestrator"
	"prefixsub/internal/organizer"
)

// Config holds output configuration.
type Config struct {
	Verbose   bool      // Add per-prefix and per-file tables
	Writer    io.Writer // Output destination (default: os.Stdout)
	ErrWriter io.Writer // Error output destination (default: os.Stderr)
	IsTTY     bool      // Whether output is a terminal
}

// Output renders run results for the terminal.
type Output struct {
	config Config
}

// New creates a new Output instance with the given configuration.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}
	return &Output{config: config}
}

// DefaultConfig returns a Config writing to stdout/stderr with TTY detection.
func DefaultConfig() Config {
	return Config{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		IsTTY:     term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Info prints an informational message.
func (o *Output) Info(format string, args ...interface{}) {
	fmt.Fprint(o.config.Writer, line(format, args...))
}

// Error prints an error message to the error writer.
func (o *Output) Error(format string, args ...interface{}) {
	fmt.Fprint(o.config.ErrWriter, line(format, args...))
}

func line(format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}

// IsVerbose returns whether verbose tables are enabled.
func (o *Output) IsVerbose() bool {
	return o.config.Verbose
}

// IsTTY returns whether output is a terminal.
func (o *Output) IsTTY() bool {
	return o.config.IsTTY
}

// PrintRun writes the summary table and, when there is something to show,
// the per-prefix and failure tables.
func (o *Output) PrintRun(summary *orchestrator.RunSummary, report *organizer.Report) {
	fmt.Fprintln(o.config.Writer, o.RenderSummary(summary))

	if o.config.Verbose && len(summary.ByPrefix) > 0 {
		fmt.Fprintln(o.config.Writer, o.RenderPrefixes(summary.ByPrefix))
	}
	if failures := report.Failures(); len(failures) > 0 {
		fmt.Fprintln(o.config.Writer, o.RenderFailures(failures))
	}
}

// RenderSummary renders the run counts as a two-column table.
func (o *Output) RenderSummary(summary *orchestrator.RunSummary) string {
	if summary == nil {
		summary = &orchestrator.RunSummary{}
	}

	title := "Run summary"
	rows := [][]string{{"Prefix groups", strconv.Itoa(summary.Groups)}}
	if summary.DryRun {
		title = "Dry run summary"
		rows = append(rows, []string{"Planned moves", strconv.Itoa(summary.Planned)})
	} else {
		rows = append(rows, []string{"Moved", strconv.Itoa(summary.Moved)})
	}
	if summary.InPlace > 0 {
		rows = append(rows, []string{"Already in place", strconv.Itoa(summary.InPlace)})
	}
	rows = append(rows,
		[]string{"Failed", strconv.Itoa(summary.Failed)},
		[]string{"Duration", summary.Duration.Round(time.Millisecond).String()},
	)

	return o.renderTable(title, []string{"", "Count"}, rows, []text.Align{text.AlignLeft, text.AlignRight})
}

// RenderPrefixes renders the per-prefix file counts, sorted by prefix.
func (o *Output) RenderPrefixes(byPrefix map[string]int) string {
	prefixes := make([]string, 0, len(byPrefix))
	for p := range byPrefix {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	rows := make([][]string, 0, len(prefixes))
	for _, p := range prefixes {
		rows = append(rows, []string{p, strconv.Itoa(byPrefix[p])})
	}
	return o.renderTable("", []string{"Prefix", "Files"}, rows, []text.Align{text.AlignLeft, text.AlignRight})
}

// RenderFailures renders one row per file that could not be moved.
func (o *Output) RenderFailures(failures []organizer.MoveRecord) string {
	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		reason := ""
		if f.Error != nil {
			reason = f.Error.Error()
		}
		rows = append(rows, []string{filepath.Base(f.SourcePath), reason})
	}
	return o.renderTable("Not moved", []string{"File", "Reason"}, rows, nil)
}

func (o *Output) renderTable(title string, headers []string, rows [][]string, aligns []text.Align) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if o.config.IsTTY {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
