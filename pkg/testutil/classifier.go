package testutil

import (
	"context"

	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/pkg/errorx"
)

type MockClassifier struct {
	ClassifyFunc func(ctx context.Context, imageURL string) ([]entity.Detection, error)
}

func (m *MockClassifier) Classify(ctx context.Context, imageURL string) ([]entity.Detection, error) {
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, imageURL)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

// ClassifierReturning always answers with the given detections.
func ClassifierReturning(detections ...entity.Detection) *MockClassifier {
	return &MockClassifier{
		ClassifyFunc: func(context.Context, string) ([]entity.Detection, error) {
			return detections, nil
		},
	}
}
