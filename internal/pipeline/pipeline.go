// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one recommendation submission end to end: build the
// request, call the service, normalize the reply onto the podium, and log
// the submission.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdiddy/journal-recommender/internal/history"
	"github.com/pdiddy/journal-recommender/internal/intake"
	"github.com/pdiddy/journal-recommender/internal/podium"
	"github.com/pdiddy/journal-recommender/pkg/types"
)

// Recommender calls the external recommendation service.
type Recommender interface {
	Recommend(ctx context.Context, req types.RecommendationRequest) (*types.RecommendResponse, error)
}

// Recorder stores submissions. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, sub history.Submission) (history.Submission, error)
}

// Outcome is the result of one submission.
type Outcome struct {
	Request types.RecommendationRequest
	Raw     *types.RecommendResponse
	Podium  []types.DisplayCandidate
}

// Service wires the pipeline stages together. History and Logger are optional.
type Service struct {
	Backend Recommender
	History Recorder
	Logger  *slog.Logger
}

// Recommend validates fields, calls the service once, and normalizes the
// reply. Validation errors are returned before any network call; service
// errors are returned unchanged and never retried here. Each call is
// independent of every other.
func (s *Service) Recommend(ctx context.Context, fields types.RawFields) (Outcome, error) {
	log := s.logger()

	req, err := intake.Build(fields)
	if err != nil {
		return Outcome{}, err
	}

	start := time.Now()
	raw, err := s.Backend.Recommend(ctx, req)
	if err != nil {
		log.ErrorContext(ctx, "recommendation request failed",
			"operation", "recommend",
			"outcome", "failure",
			"error", err,
		)
		return Outcome{Request: req}, fmt.Errorf("fetching recommendations: %w", err)
	}

	if raw == nil {
		raw = &types.RecommendResponse{}
	}
	out := Outcome{
		Request: req,
		Raw:     raw,
		Podium:  podium.Normalize(raw),
	}
	log.InfoContext(ctx, "recommendations received",
		"operation", "recommend",
		"outcome", "success",
		"upstream_success", raw.Success,
		"candidates", len(raw.Recommendations),
		"podium", len(out.Podium),
		"processing_time", raw.ProcessingTime,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	s.record(ctx, out)
	return out, nil
}

// record logs the submission; a storage failure never fails the request.
func (s *Service) record(ctx context.Context, out Outcome) {
	if s.History == nil {
		return
	}

	sub := history.Submission{
		Request:        out.Request,
		CandidateCount: len(out.Raw.Recommendations),
		Journals:       podium.UpstreamNames(out.Raw),
		ProcessingTime: out.Raw.ProcessingTime,
	}
	if _, err := s.History.Record(ctx, sub); err != nil {
		s.logger().WarnContext(ctx, "recording submission failed", "error", err)
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
