package echo

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/twaiba/faithful-registry/internal/application/importer"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// ImportRunner runs one reconciliation pass over an uploaded file.
type ImportRunner interface {
	Run(ctx context.Context, reader io.Reader, target importer.Target) (importer.Summary, error)
}

// ImportHandler exposes one bulk import endpoint per registered entity
// target. Row-level failures are summary content, never call failures.
type ImportHandler struct {
	runner  ImportRunner
	targets map[string]importer.Target
}

func NewImportHandler(runner ImportRunner, targets map[string]importer.Target) *ImportHandler {
	return &ImportHandler{runner: runner, targets: targets}
}

type importOutcomeResponse struct {
	Line     int               `json:"line"`
	Outcome  string            `json:"outcome"`
	Key      map[string]string `json:"key,omitempty"`
	RecordID string            `json:"record_id,omitempty"`
	Reason   string            `json:"reason,omitempty"`
}

type importSummaryResponse struct {
	Total      int                     `json:"total"`
	Created    int                     `json:"created"`
	Duplicates int                     `json:"duplicates"`
	Failed     int                     `json:"failed"`
	Failures   []importOutcomeResponse `json:"failures"`
	ReportURL  string                  `json:"report_url,omitempty"`
}

func (h *ImportHandler) Import(c echo.Context) error {
	target, ok := h.targets[c.Param("entity")]
	if !ok {
		return respondError(c, registry.NotFoundf("unknown import entity %q", c.Param("entity")))
	}

	var reader io.Reader
	fh, err := c.FormFile("file")
	if err == nil {
		f, err := fh.Open()
		if err != nil {
			return respondError(c, registry.Validationf("unreadable file upload"))
		}
		defer f.Close()
		reader = f
	}

	summary, err := h.runner.Run(c.Request().Context(), reader, target)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "import completed", summaryResponse(summary))
}

func summaryResponse(s importer.Summary) importSummaryResponse {
	out := importSummaryResponse{
		Total:      s.Total,
		Created:    s.Created,
		Duplicates: s.Duplicates,
		Failed:     s.Failed,
		Failures:   []importOutcomeResponse{},
		ReportURL:  s.ReportURL,
	}
	for _, o := range s.NonCreated() {
		outcome := "failed"
		if o.Kind == importer.OutcomeDuplicate {
			outcome = "duplicate"
		}
		out.Failures = append(out.Failures, importOutcomeResponse{
			Line:     o.Line,
			Outcome:  outcome,
			Key:      o.Key,
			RecordID: o.RecordID,
			Reason:   o.Reason,
		})
	}
	return out
}
