package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mongo-toolkit/internal/doctor"
	"github.com/thoreinstein/mongo-toolkit/internal/errors"
	"github.com/thoreinstein/mongo-toolkit/internal/logging"
)

// Format specifies the output format for rendered output.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatYAML produces YAML output.
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat indicates an output format other than text, json or yaml.
var ErrUnknownFormat = errors.New("unknown output format (use text, json or yaml)")

// ParseFormat parses an --output value. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// Reporter formats and writes diagnostic output.
type Reporter struct {
	out    io.Writer
	format Format

	useColor bool
	colors   map[doctor.Status]*color.Color
	dim      *color.Color
	bold     *color.Color
}

// NewReporter creates a new Reporter. Colors are used only when out is a
// terminal that supports them.
func NewReporter(out io.Writer, format Format) *Reporter {
	r := &Reporter{
		out:    out,
		format: format,
	}

	if logging.SupportsColor(out) {
		r.useColor = true
		r.colors = map[doctor.Status]*color.Color{
			doctor.StatusOK:       color.New(color.FgGreen),
			doctor.StatusInfo:     color.New(color.FgCyan),
			doctor.StatusWarn:     color.New(color.FgYellow),
			doctor.StatusCritical: color.New(color.FgRed, color.Bold),
			doctor.StatusError:    color.New(color.FgHiRed),
		}
		r.dim = color.New(color.FgHiBlack)
		r.bold = color.New(color.Bold)
		// fatih/color decides on its own from stdout; out may be another stream.
		for _, c := range r.colors {
			c.EnableColor()
		}
		r.dim.EnableColor()
		r.bold.EnableColor()
	}

	return r
}

// Format returns the reporter's output format.
func (r *Reporter) Format() Format {
	return r.format
}

// Result writes the outcome of a single issue.
func (r *Reporter) Result(ir doctor.IssueResult) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(ir)
	default:
		r.writeResult(ir)
		return nil
	}
}

// Report writes a batch report followed by its summary.
func (r *Reporter) Report(rep *doctor.Report) error {
	if rep == nil {
		return nil
	}

	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(rep)
	}

	for i, ir := range rep.Results {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		r.writeResult(ir)
	}
	if len(rep.Results) > 0 {
		fmt.Fprintln(r.out)
	}

	s := rep.Summary
	fmt.Fprintf(r.out, "Summary: %s, %s, %s, %s, %s\n",
		r.paint(doctor.StatusOK, fmt.Sprintf("%d ok", s.OK)),
		r.paint(doctor.StatusInfo, fmt.Sprintf("%d info", s.Info)),
		r.paint(doctor.StatusWarn, fmt.Sprintf("%d warn", s.Warn)),
		r.paint(doctor.StatusCritical, fmt.Sprintf("%d critical", s.Critical)),
		r.paint(doctor.StatusError, fmt.Sprintf("%d error", s.Error)))
	return nil
}

// Issues writes issue descriptors as a table.
func (r *Reporter) Issues(issues []*doctor.Issue) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		if issues == nil {
			issues = []*doctor.Issue{}
		}
		return r.encode(issues)
	}

	if len(issues) == 0 {
		fmt.Fprintln(r.out, r.paintWith(r.dim, "(no issues)"))
		return nil
	}

	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSEVERITY\tTITLE")
	for _, issue := range issues {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", issue.ID, issue.Severity, issue.Title)
	}
	return errors.Wrap(tw.Flush(), "writing issue table")
}

// categoryRow is the machine-readable form of a category listing.
type categoryRow struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Issues int    `json:"issues" yaml:"issues"`
}

// Categories writes one line per category with its issue count.
func (r *Reporter) Categories(cats []doctor.Category) error {
	rows := make([]categoryRow, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, categoryRow{ID: c.ID, Title: c.Title, Issues: len(c.Issues)})
	}

	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(rows)
	}

	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t(%d issues)\n", row.ID, row.Title, row.Issues)
	}
	return errors.Wrap(tw.Flush(), "writing category table")
}

// Describe writes the full metadata of one issue.
func (r *Reporter) Describe(issue *doctor.Issue) error {
	if issue == nil {
		return nil
	}

	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(issue)
	}

	fmt.Fprintln(r.out, r.paintWith(r.bold, issue.ID))
	fmt.Fprintf(r.out, "  Title:     %s\n", issue.Title)
	fmt.Fprintf(r.out, "  Category:  %s\n", issue.Category)
	fmt.Fprintf(r.out, "  Severity:  %s\n", issue.Severity)
	if len(issue.Tags) > 0 {
		fmt.Fprintf(r.out, "  Tags:      %s\n", strings.Join(issue.Tags, ", "))
	}

	if issue.Description != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, indent(strings.TrimSpace(issue.Description), "  "))
	}

	if len(issue.Options) == 0 {
		return nil
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Options:")
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tDEFAULT\tUNIT\tDESCRIPTION")
	for _, opt := range issue.Options {
		usage := opt.Usage
		if opt.Generic {
			usage += " (alias: " + doctor.GenericThreshold + ")"
		}
		fmt.Fprintf(tw, "  %s\t%g\t%s\t%s\n", opt.Name, opt.Default, opt.Unit, strings.TrimSpace(usage))
	}
	return errors.Wrap(tw.Flush(), "writing option table")
}

func (r *Reporter) writeResult(ir doctor.IssueResult) {
	res := ir.Result
	if res == nil {
		res = &doctor.Result{Status: doctor.StatusError, Summary: "no result"}
	}

	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.paint(res.Status, statusIcon(res.Status)),
		r.paint(res.Status, "["+res.Status.String()+"]"),
		r.paintWith(r.bold, ir.ID),
		r.paintWith(r.dim, ir.Title))
	fmt.Fprintf(r.out, "  %s\n", res.Summary)

	if res.Details != nil {
		if text, err := detailsText(res.Details); err == nil && text != "" {
			fmt.Fprintln(r.out, "  details:")
			fmt.Fprintln(r.out, indent(text, "    "))
		}
	}

	if res.Recommendation != "" {
		fmt.Fprintf(r.out, "  %s %s\n", r.paintWith(r.dim, "recommendation:"), res.Recommendation)
	}
}

func (r *Reporter) encode(v any) error {
	if r.format == FormatYAML {
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding YAML output")
		}
		return errors.Wrap(enc.Close(), "encoding YAML output")
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding JSON output")
}

func (r *Reporter) paint(status doctor.Status, s string) string {
	return r.paintWith(r.colors[status], s)
}

func (r *Reporter) paintWith(c *color.Color, s string) string {
	if !r.useColor || c == nil {
		return s
	}
	return c.Sprint(s)
}

// detailsText renders result details as YAML without the trailing newline.
func detailsText(details any) (string, error) {
	data, err := yaml.Marshal(details)
	if err != nil {
		return "", err
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "{}" || text == "[]" || text == "null" {
		return "", nil
	}
	return text, nil
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return "✓"
	case doctor.StatusInfo:
		return "ℹ"
	case doctor.StatusWarn:
		return "⚠"
	case doctor.StatusCritical:
		return "✗"
	case doctor.StatusError:
		return "!"
	default:
		return "?"
	}
}
