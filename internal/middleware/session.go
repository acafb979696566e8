package middleware

import (
	"context"

	"github.com/wastebounty/backend/pkg/router"
	"github.com/wastebounty/backend/pkg/xcontext"
)

type SessionResponse interface {
	SessionInfo() map[string]any
}

// HandleSaveSession writes the values of a SessionResponse into the session
// cookie. A nil map ends the session.
func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := router.Response(ctx).(SessionResponse)
		if !ok {
			return ctx, nil
		}

		req := xcontext.HTTPRequest(ctx)
		session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot decode the old session: %v", err)
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			session.Options.MaxAge = -1
		}

		for k, v := range sessionInfo {
			session.Values[k] = v
		}

		if err := session.Save(req, xcontext.ResponseWriter(ctx)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save session: %v", err)
			return nil, err
		}

		return ctx, nil
	}
}
