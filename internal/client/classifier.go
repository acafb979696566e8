package client

import (
	"context"

	"github.com/mitchellh/mapstructure"
	"github.com/wastebounty/backend/config"
	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/pkg/api"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/xcontext"
)

type DetectionClassifier interface {
	Classify(ctx context.Context, imageURL string) ([]entity.Detection, error)
}

type detectionClassifier struct {
	generator api.Generator
	cfg       config.ClassifierConfigs
}

func NewDetectionClassifier(cfg config.ClassifierConfigs) *detectionClassifier {
	return &detectionClassifier{
		generator: api.NewGenerator(cfg.Endpoint),
		cfg:       cfg,
	}
}

// Classify never returns a partial result. Every failure is reported as
// ClassificationUnavailable.
func (c *detectionClassifier) Classify(ctx context.Context, imageURL string) ([]entity.Detection, error) {
	resp, err := c.generator.New("/detect").
		Body(api.JSON{"image_url": imageURL}).
		Timeout(c.cfg.Timeout).
		POST(ctx)
	if err != nil {
		return nil, unavailable(ctx, "Cannot call classifier: %v", err)
	}

	if resp.Code < 200 || resp.Code >= 300 {
		return nil, unavailable(ctx, "Classifier responded with status %d", resp.Code)
	}

	raw, ok := resp.Body["detections"]
	if !ok {
		return nil, unavailable(ctx, "Classifier response has no detections")
	}

	detections := []entity.Detection{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &detections,
	})
	if err != nil {
		return nil, unavailable(ctx, "Cannot create decoder: %v", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, unavailable(ctx, "Cannot decode detections: %v", err)
	}

	return detections, nil
}

func unavailable(ctx context.Context, format string, args ...any) error {
	xcontext.Logger(ctx).Warnf(format, args...)
	return errorx.New(errorx.ClassificationUnavailable, "Detection service is unavailable, please try again")
}
