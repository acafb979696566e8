package migration

import (
	"context"
	"fmt"
	"strings"

	"github.com/wastebounty/backend/pkg/xcontext"
)

// Ledger sums filter by participant and status.
var indexes0002 = []struct {
	table   string
	name    string
	columns []string
}{
	{"bounties", "idx_bounties_status_reporter", []string{"status", "reporter_id"}},
	{"bounties", "idx_bounties_status_cleaner", []string{"status", "cleaner_id"}},
	{"reward_redemptions", "idx_redemptions_user_status", []string{"user_id", "status"}},
}

func migrate0002(ctx context.Context) error {
	db := xcontext.DB(ctx)
	for _, idx := range indexes0002 {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
