package app

import (
	"context"
	"fmt"

	"saveporter/internal/wgs"
)

// Failure records one container that did not convert.
type Failure struct {
	Container string `json:"container"`
	Err       string `json:"error"`
}

// BatchReport tracks per-container outcomes of a batch run.
type BatchReport struct {
	Converted []Result  `json:"converted"`
	Failed    []Failure `json:"failed,omitempty"`
}

// OK reports whether the batch counts as a success: at least one
// container converted. Partial failure is still a success signal.
func (r BatchReport) OK() bool {
	return len(r.Converted) > 0
}

// ConvertBatch converts the chosen containers sequentially. One
// container's failure never stops the remainder; cancellation does.
func (s *Service) ConvertBatch(ctx context.Context, containers []wgs.Container, opts ConvertOptions) (BatchReport, error) {
	var report BatchReport
	for _, container := range containers {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		fmt.Fprintf(s.out, "\nConverting container %s...\n", container.ID)
		res, err := s.ConvertContainer(ctx, container, opts)
		if err != nil {
			fmt.Fprintf(s.out, "Failed: %v\n", err)
			report.Failed = append(report.Failed, Failure{Container: container.ID, Err: err.Error()})
			continue
		}
		report.Converted = append(report.Converted, res)
	}
	return report, nil
}
