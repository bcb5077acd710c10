package viewer

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
)

const (
	defaultReporterBuffer       = 64
	defaultReporterCloseTimeout = 3 * time.Second
)

// Report is one suspicious-activity report queued for delivery.
type Report struct {
	ContentID string                      `json:"content_id"`
	Type      securityDomain.ActivityType `json:"activity_type"`
	Details   map[string]any              `json:"details,omitempty"`
	// OccurredAt is stamped at enqueue time when zero.
	OccurredAt time.Time `json:"occurred_at"`
}

// Reporter delivers reports to the suspicious-activity endpoint without ever
// blocking or failing the viewer. Report is non-blocking: when the buffer is
// full the report is dropped and logged locally. The background sender
// swallows network errors; there is no retry. Protection reporting must
// never degrade playback.
type Reporter struct {
	endpoint  string
	contentID string
	client    *http.Client
	logger    *slog.Logger

	queue chan Report
	done  chan struct{}
}

// NewReporter creates a reporter posting to the given endpoint and starts
// its background sender.
func NewReporter(endpoint, contentID string, client *http.Client, logger *slog.Logger) *Reporter {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	r := &Reporter{
		endpoint:  endpoint,
		contentID: contentID,
		client:    client,
		logger:    logger,
		queue:     make(chan Report, defaultReporterBuffer),
		done:      make(chan struct{}),
	}

	go r.run()

	return r
}

// Report enqueues a report. Never blocks; drops and logs on overflow.
func (r *Reporter) Report(report Report) {
	if report.OccurredAt.IsZero() {
		report.OccurredAt = time.Now().UTC()
	}
	if report.ContentID == "" {
		report.ContentID = r.contentID
	}

	select {
	case r.queue <- report:
	default:
		r.logger.Warn("report dropped: queue full",
			slog.String("type", string(report.Type)),
		)
	}
}

// run drains the queue until Close.
func (r *Reporter) run() {
	defer close(r.done)

	for report := range r.queue {
		r.send(report)
	}
}

// send posts one report, swallowing every failure.
func (r *Reporter) send(report Report) {
	payload, err := json.Marshal(report)
	if err != nil {
		r.logger.Warn("report marshal failed", slog.Any("error", err))
		return
	}

	resp, err := r.client.Post(r.endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		r.logger.Debug("report delivery failed", slog.Any("error", err))
		return
	}
	_ = resp.Body.Close()
}

// Close stops accepting reports and waits for the queue to drain, up to a
// fixed timeout. Reports still queued after the timeout are abandoned.
func (r *Reporter) Close() {
	close(r.queue)

	select {
	case <-r.done:
	case <-time.After(defaultReporterCloseTimeout):
		r.logger.Warn("reporter closed before queue drained")
	}
}
