package main

import (
	"github.com/urfave/cli/v2"
	"github.com/wastebounty/backend/migration"
	"github.com/wastebounty/backend/pkg/xcontext"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())

	if cctx.Bool("sql") {
		return migration.MigrateSQL(s.ctx)
	}

	if version := cctx.Int("version"); version > 0 {
		return migration.Run(s.ctx, version)
	}

	s.migrateDB()
	return nil
}
