package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds lookup indexes not covered by AutoMigrate's tags.
// The (user_id, project_id) unique index on contributors is declared on the
// model itself because it is a correctness constraint, not a performance one.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"contributors", "idx_contributors_project_id", "project_id"},
		{"issues", "idx_issues_project_id", "project_id"},
		{"issues", "idx_issues_author_id", "author_id"},
		{"issues", "idx_issues_assignee_id", "assignee_id"},
		{"comments", "idx_comments_issue_id", "issue_id"},
		{"comments", "idx_comments_project_id", "project_id"},
		{"comments", "idx_comments_author_id", "author_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
