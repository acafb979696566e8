package testutil

import (
	"context"
	"fmt"

	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/storage"
)

type MockStorage struct {
	UploadFunc     func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
	BulkUploadFunc func(context.Context, []*storage.UploadObject) ([]*storage.UploadResponse, error)
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return &storage.UploadResponse{
		Url:      fmt.Sprintf("https://storage.local/%s/%s", obj.Prefix, obj.FileName),
		FileName: obj.FileName,
	}, nil
}

func (m *MockStorage) BulkUpload(
	ctx context.Context, objs []*storage.UploadObject,
) ([]*storage.UploadResponse, error) {
	if m.BulkUploadFunc != nil {
		return m.BulkUploadFunc(ctx, objs)
	}

	var result []*storage.UploadResponse
	for _, obj := range objs {
		resp, err := m.Upload(ctx, obj)
		if err != nil {
			return nil, errorx.New(errorx.Internal, "Cannot upload %s", obj.FileName)
		}

		result = append(result, resp)
	}

	return result, nil
}
