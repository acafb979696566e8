package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/storage"
	"github.com/wastebounty/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type size struct {
	w uint
	h uint
}

func (s size) String() string {
	return fmt.Sprintf("%dx%d", s.w, s.h)
}

var (
	// PhotoSize bounds the stored photo, the one sent to the classifier.
	PhotoSize = size{w: 1280, h: 1280}

	ThumbnailSize = size{w: 256, h: 256}
)

// UploadPhoto reads the multipart file under key, normalizes it to JPEG and
// stores it next to a thumbnail. It returns the stored photo.
func UploadPhoto(
	ctx context.Context, fileStorage storage.Storage, key, prefix string,
) (*storage.UploadResponse, error) {
	cfg := xcontext.Configs(ctx).File
	req := xcontext.HTTPRequest(ctx)
	if req.MultipartForm == nil {
		if err := req.ParseMultipartForm(cfg.MaxSize); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
		}
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		return nil, errorx.New(errorx.MissingField, "Missing photo %s", key)
	}
	defer file.Close()

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !slices.Contains(cfg.AllowedExtensions, ext) {
		return nil, errorx.New(errorx.BadRequest, "Only %s photos are accepted",
			strings.Join(cfg.AllowedExtensions, ", "))
	}

	if cfg.MaxSize > 0 && header.Size > cfg.MaxSize {
		return nil, errorx.New(errorx.BadRequest, "Photo must not exceed %d bytes", cfg.MaxSize)
	}

	img, err := decodeImg(ext, file)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Cannot read the photo")
	}

	name := uuid.NewString()
	objs := make([]*storage.UploadObject, 0, 2)
	for _, s := range []size{PhotoSize, ThumbnailSize} {
		b, err := encodeImg(resize.Thumbnail(s.w, s.h, img, resize.Lanczos3))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
			return nil, errorx.Unknown
		}

		fileName := name + ".jpg"
		if s != PhotoSize {
			fileName = fmt.Sprintf("%s-%s.jpg", name, s)
		}

		objs = append(objs, &storage.UploadObject{
			Bucket:   xcontext.Configs(ctx).Storage.Bucket,
			Prefix:   prefix,
			FileName: fileName,
			Mime:     "image/jpeg",
			Data:     b,
		})
	}

	uresp, err := fileStorage.BulkUpload(ctx, objs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return uresp[0], nil
}

func decodeImg(ext string, data io.Reader) (image.Image, error) {
	switch ext {
	case "jpg", "jpeg":
		return jpeg.Decode(data)
	case "png":
		return png.Decode(data)
	}

	return nil, fmt.Errorf("unsupported extension %s", ext)
}

func encodeImg(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
