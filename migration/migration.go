package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/wastebounty/backend/internal/entity"
	"github.com/wastebounty/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// NOTE: Only append to this list. The position of a migrator is its version.
var migrators = []func(context.Context) error{
	migrate0001,
	migrate0002,
}

// Migrate applies every migrator newer than the recorded version, each in
// its own transaction.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	current, err := currentVersion(ctx)
	if err != nil {
		return err
	}

	for version := current + 1; version <= len(migrators); version++ {
		if err := apply(ctx, version); err != nil {
			return fmt.Errorf("migration %04d: %w", version, err)
		}

		xcontext.Logger(ctx).Infof("Applied migration %04d", version)
	}

	return nil
}

// Run re-applies a single migrator without touching the recorded version.
func Run(ctx context.Context, version int) error {
	if version < 1 || version > len(migrators) {
		return fmt.Errorf("not found version %d", version)
	}

	return migrators[version-1](ctx)
}

func apply(ctx context.Context, version int) error {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := migrators[version-1](ctx); err != nil {
		return err
	}

	err := xcontext.DB(ctx).Save(&entity.Migration{ID: 1, Version: version}).Error
	if err != nil {
		return err
	}

	_, err = xcontext.WithCommitDBTransaction(ctx)
	return err
}

func currentVersion(ctx context.Context) (int, error) {
	var m entity.Migration
	err := xcontext.DB(ctx).Take(&m, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	return m.Version, nil
}
