package model

import (
	"net/http"
	"time"
)

type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session keys written at login.
const (
	SessionUserID     = "user_id"
	SessionUserName   = "user_name"
	SessionUserRegion = "user_region"
)

type RegisterRequest struct {
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	BirthDate       string `json:"birth_date"`
	Region          string `json:"region"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`

	// Filled by the domain from the configured token lifetime.
	CookieName       string        `json:"-"`
	CookieExpiration time.Duration `json:"-"`
}

func (r LoginResponse) SessionInfo() map[string]any {
	return map[string]any{
		SessionUserID:     r.User.ID,
		SessionUserName:   r.User.Name,
		SessionUserRegion: r.User.Region,
	}
}

func (r LoginResponse) CookieInfo() []http.Cookie {
	return []http.Cookie{
		{
			Name:     r.CookieName,
			Value:    r.AccessToken,
			Path:     "/",
			Expires:  time.Now().Add(r.CookieExpiration),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

type LogoutRequest struct{}

type LogoutResponse struct {
	CookieName string `json:"-"`
}

// SessionInfo with a nil map clears the session.
func (r LogoutResponse) SessionInfo() map[string]any {
	return nil
}

func (r LogoutResponse) CookieInfo() []http.Cookie {
	return []http.Cookie{
		{
			Name:    r.CookieName,
			Value:   "",
			Path:    "/",
			MaxAge:  -1,
			Expires: time.Unix(0, 0),
		},
	}
}
