package router

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/wastebounty/backend/config"
	"github.com/wastebounty/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before (or after) the handler and may enrich the
// context. A non-nil error stops the chain.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs at the end of a request, even on errors.
type CloserFunc func(ctx context.Context)

type Router struct {
	rootCtx context.Context
	mux     *http.ServeMux

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(ctx context.Context) *Router {
	return &Router{
		rootCtx: ctx,
		mux:     http.NewServeMux(),
		closers: []CloserFunc{handleResponse()},
	}
}

// Branch returns a router sharing the same mux. Middlewares added to the
// branch do not leak into the parent.
func (r *Router) Branch() *Router {
	return &Router{
		rootCtx: r.rootCtx,
		mux:     r.mux,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func (r *Router) Static(pattern, dir string) {
	r.mux.Handle(pattern, http.StripPrefix(pattern, http.FileServer(http.Dir(dir))))
}

func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) Handler(cfg config.ServerConfigs) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(r.mux)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, route(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, route(r, http.MethodPost, handler))
}

func route[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	befores := r.befores
	afters := r.afters
	closers := r.closers

	return func(w http.ResponseWriter, req *http.Request) {
		ctx := r.rootCtx
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithResponseWriter(ctx, w)
		ctx = xcontext.WithStartTime(ctx, time.Now())

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		if req.Method != method {
			ctx = xcontext.WithError(ctx, errNotSupportedMethod)
			return
		}

		var err error
		for _, m := range befores {
			if ctx, err = runMiddleware(ctx, m); err != nil {
				return
			}
		}

		var request Request
		if err := parseRequest(req, &request); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot parse request: %v", err)
			ctx = xcontext.WithError(ctx, errBadRequest)
			return
		}

		resp, err := handler(ctx, &request)
		if resp != nil {
			ctx = withResponse(ctx, resp)
		}
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			return
		}

		for _, m := range afters {
			if ctx, err = runMiddleware(ctx, m); err != nil {
				return
			}
		}
	}
}

func runMiddleware(ctx context.Context, m MiddlewareFunc) (context.Context, error) {
	newCtx, err := m(ctx)
	if err != nil {
		return xcontext.WithError(ctx, err), err
	}

	if newCtx == nil {
		return ctx, nil
	}

	return newCtx, nil
}
