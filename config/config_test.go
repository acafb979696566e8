package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
Env = "prod"

[Database]
Driver = "mysql"
Host = "db"
Port = "3306"
Database = "wastebounty"
User = "root"
Password = "pw"

[Auth]
TokenSecret = "secret"

[Auth.AccessToken]
Name = "token"
Expiration = 3600000000000

[Redemption]
Wallets = ["DANA"]
`), 0600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "root:pw@tcp(db:3306)/wastebounty?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true",
		cfg.Database.ConnectionString())
	require.Equal(t, time.Hour, cfg.Auth.AccessToken.Expiration)
	require.Equal(t, []string{"DANA"}, cfg.Redemption.Wallets)

	// Untouched sections keep the product defaults.
	require.Equal(t, 2, cfg.Bounty.CleanerMultiplier)
	require.Equal(t, 3, cfg.Bounty.LabelScores["PET_Bottles"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
