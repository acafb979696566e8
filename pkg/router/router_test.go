package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/config"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/logger"
	"github.com/wastebounty/backend/pkg/xcontext"
)

type echoRequest struct {
	Name  string  `json:"name"`
	Limit int     `json:"limit"`
	Lat   float64 `json:"lat"`
}

type echoResponse struct {
	Name  string  `json:"name"`
	Limit int     `json:"limit"`
	Lat   float64 `json:"lat"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	return &echoResponse{Name: req.Name, Limit: req.Limit, Lat: req.Lat}, nil
}

func newTestRouter() *Router {
	ctx := xcontext.WithLogger(context.Background(), logger.NewNopLogger())
	return New(ctx)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_GETQuery(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo?name=budi&limit=5&lat=-6.2", nil)
	r.Handler(config.ServerConfigs{}).ServeHTTP(rec, req)

	body := decode(t, rec)
	require.Equal(t, float64(0), body["code"])
	require.Equal(t, map[string]any{"name": "budi", "limit": float64(5), "lat": -6.2}, body["data"])
}

func TestRouter_POSTJSON(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", echo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"sari","limit":2}`))
	req.Header.Set("Content-Type", "application/json")
	r.Handler(config.ServerConfigs{}).ServeHTTP(rec, req)

	body := decode(t, rec)
	require.Equal(t, "sari", body["data"].(map[string]any)["name"])
}

func TestRouter_WrongMethod(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", echo)

	rec := httptest.NewRecorder()
	r.Handler(config.ServerConfigs{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo", nil))

	body := decode(t, rec)
	require.Equal(t, float64(errorx.BadRequest), body["code"])
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	r := newTestRouter()
	GET(r, "/hard", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: "ignored"}, errorx.New(errorx.TooFar, "Too far")
	})
	GET(r, "/soft", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: "kept"}, errorx.New(errorx.AlreadyCompleted, "Already completed")
	})
	GET(r, "/internal", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, context.DeadlineExceeded
	})

	handler := r.Handler(config.ServerConfigs{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hard", nil))
	body := decode(t, rec)
	require.Equal(t, float64(errorx.TooFar), body["code"])
	require.Equal(t, "Too far", body["error"])
	require.Nil(t, body["data"])

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/soft", nil))
	body = decode(t, rec)
	require.Equal(t, float64(errorx.AlreadyCompleted), body["code"])
	require.Equal(t, "kept", body["data"].(map[string]any)["name"])

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal", nil))
	body = decode(t, rec)
	require.Equal(t, float64(errorx.Unknown.Code), body["code"])
}

func TestRouter_Middlewares(t *testing.T) {
	type key struct{}

	r := newTestRouter()
	closed := false
	r.AddCloser(func(ctx context.Context) { closed = true })

	guarded := r.Branch()
	guarded.Before(func(ctx context.Context) (context.Context, error) {
		if xcontext.HTTPRequest(ctx).Header.Get("X-Pass") == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Need pass")
		}
		return context.WithValue(ctx, key{}, "from-before"), nil
	})
	GET(guarded, "/guarded", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: ctx.Value(key{}).(string)}, nil
	})
	GET(r, "/open", echo)

	handler := r.Handler(config.ServerConfigs{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, float64(errorx.Unauthenticated), decode(t, rec)["code"])
	require.True(t, closed)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("X-Pass", "1")
	handler.ServeHTTP(rec, req)
	require.Equal(t, "from-before", decode(t, rec)["data"].(map[string]any)["name"])

	// The branch middleware must not leak into the parent router.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open?name=x", nil))
	require.Equal(t, float64(0), decode(t, rec)["code"])
}
