package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// Target binds the reconciler to one entity type. Create receives every
// non-empty column of the row, not just the required ones, and reports
// constraint violations with registry.KindDuplicate.
type Target interface {
	Entity() string
	RequiredColumns() []string
	KeyColumns() []string
	Exists(ctx context.Context, key map[string]string) (bool, error)
	Create(ctx context.Context, fields map[string]string) (string, error)
}

// FileStore persists the failed-rows report.
type FileStore interface {
	Store(ctx context.Context, data []byte, filename string, private bool) (string, error)
}

type OutcomeKind int

const (
	OutcomeCreated OutcomeKind = iota
	OutcomeDuplicate
	OutcomeFailed
)

// Outcome is the result for a single data row. Line is the spreadsheet line
// number as a human would see it: 1-based data row plus the header row.
type Outcome struct {
	Kind     OutcomeKind
	Line     int
	Key      map[string]string
	RecordID string
	Reason   string
}

// Summary accounts for every input row. created + duplicates + failed always
// equals total, and Outcomes holds exactly one entry per row in input order.
type Summary struct {
	Total      int
	Created    int
	Duplicates int
	Failed     int
	Outcomes   []Outcome
	ReportURL  string
}

// NonCreated returns the duplicate and failed outcomes in row order.
func (s Summary) NonCreated() []Outcome {
	out := make([]Outcome, 0, s.Duplicates+s.Failed)
	for _, o := range s.Outcomes {
		if o.Kind != OutcomeCreated {
			out = append(out, o)
		}
	}
	return out
}

// Reconciler converts a tabular upload into persisted records row by row,
// tolerating per-row failure. Rows are processed strictly in file order with
// no internal retries.
type Reconciler struct {
	store FileStore
	newID func() string
}

func New(store FileStore) *Reconciler {
	return &Reconciler{store: store, newID: uuid.NewString}
}

// Run ingests one tabular stream against target. Call-level failures (missing
// file, unreadable header, missing required column, report storage) return an
// error with no summary; row-level failures are recorded as outcomes and never
// abort the remaining rows.
func (r *Reconciler) Run(ctx context.Context, reader io.Reader, target Target) (Summary, error) {
	if reader == nil {
		return Summary{}, registry.Validationf("no file uploaded")
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return Summary{}, registry.Validationf("unreadable tabular file: %v", err)
	}
	lines := physicalLines(string(raw))

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return Summary{}, registry.Validationf("unreadable tabular file: %v", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range target.RequiredColumns() {
		if _, ok := colIdx[col]; !ok {
			return Summary{}, registry.Validationf("missing required column: %s", col)
		}
	}

	summary := Summary{}
	pos := &linePosition{data: string(raw), line: 1}
	next := pos.advance(int(cr.InputOffset())) // first line after the header

	for {
		row, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			for l := next; l <= len(lines); l++ {
				if blankLine(lines[l-1]) {
					recordBlankRow(&summary, target, l)
				}
			}
			break
		}

		line := next
		switch {
		case readErr == nil:
			line, _ = cr.FieldPos(0)
		default:
			var pe *csv.ParseError
			if errors.As(readErr, &pe) {
				if len(row) > 0 {
					line, _ = cr.FieldPos(0)
				} else if pe.StartLine > 0 {
					line = pe.StartLine
				}
			}
		}

		// encoding/csv drops fully blank lines between records; each one
		// is still an input row and must surface as a failed outcome.
		for l := next; l < line && l <= len(lines); l++ {
			if blankLine(lines[l-1]) {
				recordBlankRow(&summary, target, l)
			}
		}
		next = pos.advance(int(cr.InputOffset()))

		summary.Total++

		if readErr != nil {
			summary.Failed++
			summary.Outcomes = append(summary.Outcomes, Outcome{
				Kind:   OutcomeFailed,
				Line:   line,
				Reason: readErr.Error(),
			})
			continue
		}

		fields := make(map[string]string, len(header))
		for name, idx := range colIdx {
			if idx >= len(row) {
				continue
			}
			if value := strings.TrimSpace(row[idx]); value != "" {
				fields[name] = value
			}
		}

		key := make(map[string]string, len(target.KeyColumns()))
		for _, col := range target.KeyColumns() {
			key[col] = fields[col]
		}

		if missing := firstMissing(target.RequiredColumns(), fields); missing != "" {
			summary.Failed++
			summary.Outcomes = append(summary.Outcomes, Outcome{
				Kind:   OutcomeFailed,
				Line:   line,
				Key:    key,
				Reason: "missing required field: " + missing,
			})
			continue
		}

		exists, err := target.Exists(ctx, key)
		if err != nil {
			summary.Failed++
			summary.Outcomes = append(summary.Outcomes, Outcome{
				Kind:   OutcomeFailed,
				Line:   line,
				Key:    key,
				Reason: err.Error(),
			})
			continue
		}
		if exists {
			summary.Duplicates++
			summary.Outcomes = append(summary.Outcomes, Outcome{
				Kind:   OutcomeDuplicate,
				Line:   line,
				Key:    key,
				Reason: duplicateReason(target.Entity(), target.KeyColumns()),
			})
			continue
		}

		recordID, err := target.Create(ctx, fields)
		if err != nil {
			if registry.IsKind(err, registry.KindDuplicate) {
				summary.Duplicates++
				summary.Outcomes = append(summary.Outcomes, Outcome{
					Kind:   OutcomeDuplicate,
					Line:   line,
					Key:    key,
					Reason: err.Error(),
				})
				continue
			}
			summary.Failed++
			summary.Outcomes = append(summary.Outcomes, Outcome{
				Kind:   OutcomeFailed,
				Line:   line,
				Key:    key,
				Reason: err.Error(),
			})
			continue
		}

		summary.Created++
		summary.Outcomes = append(summary.Outcomes, Outcome{
			Kind:     OutcomeCreated,
			Line:     line,
			Key:      key,
			RecordID: recordID,
		})
	}

	if summary.Duplicates+summary.Failed > 0 && r.store != nil {
		url, err := r.storeReport(ctx, target, summary)
		if err != nil {
			return Summary{}, registry.Internal("store failed-rows report", err)
		}
		summary.ReportURL = url
	}

	slog.Info("bulk_import",
		"entity", target.Entity(),
		"total", summary.Total,
		"created", summary.Created,
		"duplicates", summary.Duplicates,
		"failed", summary.Failed,
	)

	return summary, nil
}

// storeReport writes the non-created rows to a CSV of the same shape as the
// input identifying fields plus the reason, and persists it for download.
func (r *Reconciler) storeReport(ctx context.Context, target Target, summary Summary) (string, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	keyCols := target.KeyColumns()
	header := append([]string{"line"}, keyCols...)
	header = append(header, "outcome", "reason")
	if err := cw.Write(header); err != nil {
		return "", err
	}

	for _, o := range summary.NonCreated() {
		record := []string{fmt.Sprintf("%d", o.Line)}
		for _, col := range keyCols {
			record = append(record, o.Key[col])
		}
		outcome := "failed"
		if o.Kind == OutcomeDuplicate {
			outcome = "duplicate"
		}
		record = append(record, outcome, o.Reason)
		if err := cw.Write(record); err != nil {
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}

	// Reports list member names and emails, so they live in the private
	// tree and are served only to authenticated callers.
	filename := fmt.Sprintf("import_%s_failures_%s.csv", target.Entity(), r.newID())
	return r.store.Store(ctx, buf.Bytes(), filename, true)
}

// RowFields widens spreadsheet cells for an entity field merge and drops the
// identity columns an exported sheet may carry back in.
func RowFields(fields map[string]string) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "id" || k == "name" {
			continue
		}
		out[k] = v
	}
	return out
}

// linePosition tracks the 1-based physical line of the next unread byte, fed
// by csv.Reader.InputOffset after each record.
type linePosition struct {
	data   string
	offset int
	line   int
}

func (p *linePosition) advance(to int) int {
	if to > len(p.data) {
		to = len(p.data)
	}
	p.line += strings.Count(p.data[p.offset:to], "\n")
	p.offset = to
	return p.line
}

func physicalLines(data string) []string {
	lines := strings.Split(data, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		return lines[:n-1]
	}
	return lines
}

func blankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

func recordBlankRow(summary *Summary, target Target, line int) {
	key := make(map[string]string, len(target.KeyColumns()))
	for _, col := range target.KeyColumns() {
		key[col] = ""
	}
	reason := "empty row"
	if missing := firstMissing(target.RequiredColumns(), nil); missing != "" {
		reason = "missing required field: " + missing
	}
	summary.Total++
	summary.Failed++
	summary.Outcomes = append(summary.Outcomes, Outcome{
		Kind:   OutcomeFailed,
		Line:   line,
		Key:    key,
		Reason: reason,
	})
}

func firstMissing(required []string, fields map[string]string) string {
	for _, col := range required {
		if fields[col] == "" {
			return col
		}
	}
	return ""
}

func duplicateReason(entity string, keyCols []string) string {
	return fmt.Sprintf("a %s with the same %s already exists", entity, strings.Join(keyCols, "+"))
}
