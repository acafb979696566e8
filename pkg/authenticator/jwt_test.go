package authenticator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/pkg/authenticator"
)

type accessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, accessToken{ID: "user1", Name: "Budi"})
	require.NoError(t, err)

	var info accessToken
	err = engine.Verify(token, &info)
	require.NoError(t, err)
	require.Equal(t, accessToken{ID: "user1", Name: "Budi"}, info)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(-time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.Error(t, engine.Verify(token, &msg))
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := authenticator.NewTokenEngine("secret").Generate(time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.Error(t, authenticator.NewTokenEngine("other").Verify(token, &msg))
}
