package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/twaiba/faithful-registry/internal/application/importer"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

type fakeTarget struct {
	entity   string
	required []string
	keyCols  []string

	records   map[string]string // joined key -> record id
	createErr error
	existsErr error
	created   []map[string]string
}

func newFakeTarget(entity string, required, keyCols []string) *fakeTarget {
	return &fakeTarget{
		entity:   entity,
		required: required,
		keyCols:  keyCols,
		records:  make(map[string]string),
	}
}

func (f *fakeTarget) Entity() string            { return f.entity }
func (f *fakeTarget) RequiredColumns() []string { return f.required }
func (f *fakeTarget) KeyColumns() []string      { return f.keyCols }

func (f *fakeTarget) keyOf(fields map[string]string) string {
	parts := make([]string, 0, len(f.keyCols))
	for _, col := range f.keyCols {
		parts = append(parts, fields[col])
	}
	return strings.Join(parts, "|")
}

func (f *fakeTarget) Exists(ctx context.Context, key map[string]string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.records[f.keyOf(key)]
	return ok, nil
}

func (f *fakeTarget) Create(ctx context.Context, fields map[string]string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	id := "rec-" + f.keyOf(fields)
	f.records[f.keyOf(fields)] = id
	f.created = append(f.created, fields)
	return id, nil
}

type fakeFileStore struct {
	data     []byte
	filename string
	private  bool
	err      error
	calls    int
}

func (f *fakeFileStore) Store(ctx context.Context, data []byte, filename string, private bool) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.data = data
	f.filename = filename
	f.private = private
	if private {
		return "/private/files/" + filename, nil
	}
	return "/files/" + filename, nil
}

func TestRunMosqueScenario(t *testing.T) {
	t.Parallel()

	// Header plus rows: valid, duplicate of row 1, blank name.
	file := "mosque_name\nCentral Mosque\nCentral Mosque\n\"\"\n"
	target := newFakeTarget("mosque", []string{"mosque_name"}, []string{"mosque_name"})
	store := &fakeFileStore{}

	summary, err := importer.New(store).Run(context.Background(), strings.NewReader(file), target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if summary.Total != 3 || summary.Created != 1 || summary.Duplicates != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(summary.Outcomes))
	}
	if summary.Outcomes[1].Kind != importer.OutcomeDuplicate {
		t.Fatalf("expected duplicate for data row 2, got %v", summary.Outcomes[1].Kind)
	}
	if summary.Outcomes[1].Line != 3 {
		t.Fatalf("expected spreadsheet line 3 for data row 2, got %d", summary.Outcomes[1].Line)
	}
	if summary.Outcomes[2].Kind != importer.OutcomeFailed {
		t.Fatalf("expected failure for data row 3, got %v", summary.Outcomes[2].Kind)
	}
	if !strings.HasPrefix(summary.ReportURL, "/private/files/") {
		t.Fatalf("expected a private failed-rows report URL, got %q", summary.ReportURL)
	}
	if !store.private {
		t.Fatal("expected report to be stored privately")
	}
	if !strings.Contains(string(store.data), "duplicate") {
		t.Fatalf("report missing duplicate row: %s", store.data)
	}
}

func TestRunBlankTrailingLineIsFailedRow(t *testing.T) {
	t.Parallel()

	// The last row is a fully blank line, not a quoted empty cell.
	file := "mosque_name\nCentral Mosque\nCentral Mosque\n\n"
	target := newFakeTarget("mosque", []string{"mosque_name"}, []string{"mosque_name"})

	summary, err := importer.New(&fakeFileStore{}).Run(context.Background(), strings.NewReader(file), target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if summary.Total != 3 || summary.Created != 1 || summary.Duplicates != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(summary.Outcomes))
	}
	last := summary.Outcomes[2]
	if last.Kind != importer.OutcomeFailed || last.Line != 4 {
		t.Fatalf("expected failed outcome at line 4, got %+v", last)
	}
	if !strings.Contains(last.Reason, "missing required field") {
		t.Fatalf("unexpected reason: %q", last.Reason)
	}
}

func TestRunBlankLineBetweenRowsKeepsOrder(t *testing.T) {
	t.Parallel()

	file := "mosque_name\nMasjid A\n\nMasjid B\n"
	target := newFakeTarget("mosque", []string{"mosque_name"}, []string{"mosque_name"})

	summary, err := importer.New(&fakeFileStore{}).Run(context.Background(), strings.NewReader(file), target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if summary.Total != 3 || summary.Created != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	wantLines := []int{2, 3, 4}
	for i, o := range summary.Outcomes {
		if o.Line != wantLines[i] {
			t.Fatalf("outcome %d at line %d, want %d", i, o.Line, wantLines[i])
		}
	}
	if summary.Outcomes[1].Kind != importer.OutcomeFailed {
		t.Fatalf("expected blank middle row to fail, got %v", summary.Outcomes[1].Kind)
	}
}

func TestRunCountsAlwaysAddUp(t *testing.T) {
	t.Parallel()

	file := "household_name,total_members\nKintu Family,4\n,2\nMusa Family,6\nKintu Family,4\n"
	target := newFakeTarget("household", []string{"household_name"}, []string{"household_name"})

	summary, err := importer.New(&fakeFileStore{}).Run(context.Background(), strings.NewReader(file), target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := summary.Created + summary.Duplicates + summary.Failed; got != summary.Total {
		t.Fatalf("counts do not add up: %+v", summary)
	}
	if summary.Total != 4 {
		t.Fatalf("expected 4 rows, got %d", summary.Total)
	}

	// Outcome order matches input row order.
	wantLines := []int{2, 3, 4, 5}
	for i, o := range summary.Outcomes {
		if o.Line != wantLines[i] {
			t.Fatalf("outcome %d at line %d, want %d", i, o.Line, wantLines[i])
		}
	}
}

func TestRunPassesEveryNonEmptyColumnToCreate(t *testing.T) {
	t.Parallel()

	file := "mosque_name,location,total_capacity\nMasjid Noor,Jinja,500\n"
	target := newFakeTarget("mosque", []string{"mosque_name"}, []string{"mosque_name"})

	_, err := importer.New(&fakeFileStore{}).Run(context.Background(), strings.NewReader(file), target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(target.created) != 1 {
		t.Fatalf("expected one create, got %d", len(target.created))
	}
	got := target.created[0]
	if got["location"] != "Jinja" || got["total_capacity"] != "500" {
		t.Fatalf("optional columns not forwarded: %v", got)
	}
}

func TestRunRerunIsAllDuplicates(t *testing.T) {
	t.Parallel()

	file := "mosque_name\nMasjid Noor\nMasjid Taqwa\n"
	target := newFakeTarget("mosque", []string{"mosque_name"}, []string{"mosque_name"})
	rec := importer.New(&fakeFileStore{})

	first, err := rec.Run(context.Background(), strings.NewReader(file), target)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Created != 2 {
		t.Fatalf("expected 2 created on first run, got %d", first.Created)
	}

	second, err := rec.Run(context.Background(), strings.NewReader(file), target)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Duplicates != 2 || second.Created != 0 {
		t.Fatalf("expected rerun to be all duplicates, got %+v", second)
	}
}

func TestRunMissingRequiredColumnIsCallLevel(t *testing.T) {
	t.Parallel()

	file := "location\nKampala\n"
	target := newFakeTarget("mosque", []string{"mosque_name"}, []string{"mosque_name"})

	_, err := importer.New(&fakeFileStore{}).Run(context.Background(), strings.NewReader(file), target)
	if err == nil {
		t.Fatal("expected error")
	}
	if registry.KindOf(err) != registry.KindValidation {
		t.Fatalf("expected validation kind, got %v", registry.KindOf(err))
	}
	if len(target.created) != 0 {
		t.Fatal("no records may be created on a call-level failure")
	}
}

func TestRunNilReaderIsCallLevel(t *testing.T) {
	t.Parallel()

	target := newFakeTarget("mosque", []string{"mosque_name"}, []string{"mosque_name"})
	_, err := importer.New(&fakeFileStore{}).Run(context.Background(), nil, target)
	if err == nil {
		t.Fatal("expected error")
	}
	if registry.KindOf(err) != registry.KindValidation {
		t.Fatalf("expected validation kind, got %v", registry.KindOf(err))
	}
}

func TestRunCreateErrorsDoNotAbort(t *testing.T) {
	t.Parallel()

	file := "mosque_name\nMasjid A\nMasjid B\n"
	target := newFakeTarget("mosque", []string{"mosque_name"}, []string{"mosque_name"})
	target.createErr = errors.New("insert rejected")

	summary, err := importer.New(&fakeFileStore{}).Run(context.Background(), strings.NewReader(file), target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.Failed != 2 || summary.Total != 2 {
		t.Fatalf("expected both rows failed, got %+v", summary)
	}
	for _, o := range summary.Outcomes {
		if o.Reason != "insert rejected" {
			t.Fatalf("unexpected reason: %q", o.Reason)
		}
	}
}

func TestRunDuplicateKindFromCreateCountsAsDuplicate(t *testing.T) {
	t.Parallel()

	file := "mosque_name\nMasjid A\n"
	target := newFakeTarget("mosque", []string{"mosque_name"}, []string{"mosque_name"})
	target.createErr = registry.Duplicatef("mosque already registered")

	summary, err := importer.New(&fakeFileStore{}).Run(context.Background(), strings.NewReader(file), target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.Duplicates != 1 || summary.Failed != 0 {
		t.Fatalf("expected duplicate outcome, got %+v", summary)
	}
}

func TestRunNoReportWhenAllCreated(t *testing.T) {
	t.Parallel()

	file := "mosque_name\nMasjid A\n"
	target := newFakeTarget("mosque", []string{"mosque_name"}, []string{"mosque_name"})
	store := &fakeFileStore{}

	summary, err := importer.New(store).Run(context.Background(), strings.NewReader(file), target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.ReportURL != "" {
		t.Fatalf("expected no report, got %q", summary.ReportURL)
	}
	if store.calls != 0 {
		t.Fatalf("expected no store call, got %d", store.calls)
	}
}

func TestRunReportStoreFailureIsCallLevel(t *testing.T) {
	t.Parallel()

	file := "mosque_name\n\"\"\n"
	target := newFakeTarget("mosque", []string{"mosque_name"}, []string{"mosque_name"})
	store := &fakeFileStore{err: errors.New("disk full")}

	_, err := importer.New(store).Run(context.Background(), strings.NewReader(file), target)
	if err == nil {
		t.Fatal("expected error")
	}
	if registry.KindOf(err) != registry.KindInternal {
		t.Fatalf("expected internal kind, got %v", registry.KindOf(err))
	}
}
