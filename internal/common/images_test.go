package common

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/storage"
	"github.com/wastebounty/backend/pkg/testutil"
	"github.com/wastebounty/backend/pkg/xcontext"
)

func newPhotoRequest(t *testing.T, fileName string, data []byte) *http.Request {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", fileName)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/createBounty", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestUploadPhoto(t *testing.T) {
	ctx := testutil.MockContext()

	var uploaded []*storage.UploadObject
	fileStorage := &testutil.MockStorage{
		BulkUploadFunc: func(ctx context.Context, objs []*storage.UploadObject) ([]*storage.UploadResponse, error) {
			uploaded = objs

			var resp []*storage.UploadResponse
			for _, obj := range objs {
				resp = append(resp, &storage.UploadResponse{Url: "https://s3/" + obj.FileName, FileName: obj.FileName})
			}
			return resp, nil
		},
	}

	ctx = xcontext.WithHTTPRequest(ctx, newPhotoRequest(t, "litter.PNG", pngBytes(t, 2000, 1000)))
	resp, err := UploadPhoto(ctx, fileStorage, "image", "before")
	require.NoError(t, err)
	require.Len(t, uploaded, 2)
	require.Equal(t, "https://s3/"+uploaded[0].FileName, resp.Url)
	require.Equal(t, "before", uploaded[0].Prefix)
	require.Equal(t, "image/jpeg", uploaded[0].Mime)

	photo, _, err := image.Decode(bytes.NewReader(uploaded[0].Data))
	require.NoError(t, err)
	require.Equal(t, 1280, photo.Bounds().Dx())
	require.Equal(t, 640, photo.Bounds().Dy())

	thumb, _, err := image.Decode(bytes.NewReader(uploaded[1].Data))
	require.NoError(t, err)
	require.LessOrEqual(t, thumb.Bounds().Dx(), 256)
}

func TestUploadPhoto_Rejected(t *testing.T) {
	ctx := testutil.MockContext()
	fileStorage := &testutil.MockStorage{}

	_, err := UploadPhoto(
		xcontext.WithHTTPRequest(ctx, newPhotoRequest(t, "litter.gif", pngBytes(t, 4, 4))),
		fileStorage, "image", "before")
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = UploadPhoto(
		xcontext.WithHTTPRequest(ctx, newPhotoRequest(t, "litter.jpg", []byte("not an image"))),
		fileStorage, "image", "before")
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = UploadPhoto(
		xcontext.WithHTTPRequest(ctx, newPhotoRequest(t, "litter.png", pngBytes(t, 4, 4))),
		fileStorage, "other", "before")
	require.True(t, errorx.Is(err, errorx.MissingField))
}
