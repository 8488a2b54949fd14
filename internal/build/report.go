package build

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LarnoVisser/RoomMaker/internal/infra/blob"
)

// BuildReport summarizes one committed room build for the hosting automation
// service.
type BuildReport struct {
	Spec        RoomSpec  `json:"spec"`
	Build       RoomBuild `json:"build"`
	DurationMS  float64   `json:"duration_ms"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewBuildReport assembles a report from a committed build.
func NewBuildReport(spec RoomSpec, build RoomBuild, duration time.Duration) BuildReport {
	return BuildReport{
		Spec:        spec,
		Build:       build,
		DurationMS:  float64(duration) / float64(time.Millisecond),
		CompletedAt: time.Now().UTC(),
	}
}

// ReportPublisher persists build reports as immutable JSON artifacts.
type ReportPublisher struct {
	store  blob.Store
	logger Logger
}

// NewReportPublisher constructs a publisher over the given artifact store. A
// nil logger discards diagnostics.
func NewReportPublisher(store blob.Store, logger Logger) *ReportPublisher {
	if logger == nil {
		logger = noopLogger{}
	}
	return &ReportPublisher{store: store, logger: logger}
}

// Publish writes the report keyed by the floor it created. The document
// transaction has already committed by the time a report exists, so callers
// treat publish failures as diagnostics, not build failures.
func (p *ReportPublisher) Publish(ctx context.Context, report BuildReport) (blob.Info, error) {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return blob.Info{}, fmt.Errorf("encode report: %w", err)
	}
	key := fmt.Sprintf("reports/room-%s.json", report.Build.FloorID)
	info, err := p.store.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: "application/json",
		Metadata: map[string]string{
			"level_id": report.Build.LevelID,
			"floor_id": report.Build.FloorID,
		},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("store report: %w", err)
	}
	p.logger.Info("build report stored", "key", info.Key, "bytes", info.Size)
	return info, nil
}
