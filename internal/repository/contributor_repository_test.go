package repository

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestContributorRepository_Create_DuplicateMemberRejected(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Contributor{}))

	repo := NewContributorRepository(db)

	require.NoError(t, repo.Create(&models.Contributor{
		UserID:     2,
		ProjectID:  1,
		Permission: models.PermissionContributor,
		Role:       "Developer",
	}))

	// The composite unique index rejects a second row for the same pair.
	err = repo.Create(&models.Contributor{
		UserID:     2,
		ProjectID:  1,
		Permission: models.PermissionContributor,
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestRemoveWithCascade_RollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContributorRepository(db)

	contributor := &models.Contributor{
		UserID:     2,
		ProjectID:  1,
		Permission: models.PermissionContributor,
	}
	contributor.ID = 5

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `issues`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `comments`")).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.RemoveWithCascade(contributor)
	require.ErrorIs(t, err, ErrDeleteComments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveWithCascade_RunsAllStepsInOneTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContributorRepository(db)

	contributor := &models.Contributor{
		UserID:     2,
		ProjectID:  1,
		Permission: models.PermissionContributor,
	}
	contributor.ID = 5

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `issues`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `comments`")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `issues`")).
		WithArgs(uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `contributors`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RemoveWithCascade(contributor)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
