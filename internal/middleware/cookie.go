package middleware

import (
	"context"
	"net/http"

	"github.com/wastebounty/backend/pkg/router"
	"github.com/wastebounty/backend/pkg/xcontext"
)

type CookieResponse interface {
	CookieInfo() []http.Cookie
}

func HandleSetCookies() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		cookieResp, ok := router.Response(ctx).(CookieResponse)
		if ok {
			for _, cookie := range cookieResp.CookieInfo() {
				cookie := cookie
				http.SetCookie(xcontext.ResponseWriter(ctx), &cookie)
			}
		}

		return ctx, nil
	}
}
