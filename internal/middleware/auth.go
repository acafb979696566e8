package middleware

import (
	"context"
	"strings"

	"github.com/wastebounty/backend/internal/model"
	"github.com/wastebounty/backend/pkg/errorx"
	"github.com/wastebounty/backend/pkg/router"
	"github.com/wastebounty/backend/pkg/xcontext"
)

type AuthVerifier struct {
	verifiers []func(context.Context) string
	optional  bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

// WithAccessToken accepts a token from the Authorization header or from the
// access token cookie.
func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.verifiers = append(a.verifiers, verifyAccessToken)
	return a
}

// WithSession accepts the user id stored in the login session.
func (a *AuthVerifier) WithSession() *AuthVerifier {
	a.verifiers = append(a.verifiers, verifySession)
	return a
}

// Optional lets anonymous requests through without a user id.
func (a *AuthVerifier) Optional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		for _, verify := range a.verifiers {
			if userID := verify(ctx); userID != "" {
				return xcontext.WithRequestUserID(ctx, userID), nil
			}
		}

		if a.optional {
			return ctx, nil
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func verifyAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	token := ""

	authorization := req.Header.Get("Authorization")
	if prefix, value, found := strings.Cut(authorization, " "); found && strings.EqualFold(prefix, "bearer") {
		token = value
	}

	if token == "" {
		cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
		if err == nil {
			token = cookie.Value
		}
	}

	if token == "" {
		return ""
	}

	engine := xcontext.TokenEngine(ctx)
	if engine == nil {
		return ""
	}

	var accessToken model.AccessToken
	if err := engine.Verify(token, &accessToken); err != nil {
		xcontext.Logger(ctx).Debugf("Invalid access token: %v", err)
		return ""
	}

	return accessToken.ID
}

func verifySession(ctx context.Context) string {
	store := xcontext.SessionStore(ctx)
	if store == nil {
		return ""
	}

	session, err := store.Get(xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return ""
	}

	userID, _ := session.Values[model.SessionUserID].(string)
	return userID
}
