package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/xcontext"
)

var (
	errBadRequest         = errorx.New(errorx.BadRequest, "Invalid request")
	errNotSupportedMethod = errorx.New(errorx.BadRequest, "Method is not supported")
)

type responseKey struct{}

func withResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

// Response returns the handler's response. Only meaningful in After
// middlewares and closers.
func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{Code: 0, Data: data}
}

func newErrorResponse(err error, data any) response {
	var errx errorx.Error
	if errors.As(err, &errx) {
		resp := response{Code: int64(errx.Code), Error: errx.Message}
		if errx.IsSoft() {
			resp.Data = data
		}
		return resp
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func handleResponse() CloserFunc {
	return func(ctx context.Context) {
		w := xcontext.ResponseWriter(ctx)
		if w == nil {
			return
		}

		resp := newResponse(Response(ctx))
		if err := xcontext.Error(ctx); err != nil {
			resp = newErrorResponse(err, Response(ctx))
		}

		if err := WriteJSON(w, resp); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
		}
	}
}

func WriteJSON(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(b)
	return err
}
