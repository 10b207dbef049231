package repository

import (
	"errors"
	"fmt"

	"github.com/softdesk/issue-tracker-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrReassignIssues is returned when handing issues back to their authors fails inside the removal transaction.
	ErrReassignIssues = errors.New("contributor repository: reassign issues failed")
	// ErrDeleteComments is returned when removing the departing user's comments fails inside the removal transaction.
	ErrDeleteComments = errors.New("contributor repository: delete comments failed")
	// ErrDeleteIssues is returned when removing the departing user's issues fails inside the removal transaction.
	ErrDeleteIssues = errors.New("contributor repository: delete issues failed")
	// ErrDeleteContributor is returned when removing the contributor row fails inside the removal transaction.
	ErrDeleteContributor = errors.New("contributor repository: delete contributor failed")
)

// GormContributorRepository is a GORM implementation of ContributorRepository
type GormContributorRepository struct {
	db *gorm.DB
}

// NewContributorRepository creates a new ContributorRepository
func NewContributorRepository(db *gorm.DB) ContributorRepository {
	return &GormContributorRepository{db: db}
}

// Create inserts a contributor row. The composite unique index on
// (user_id, project_id) makes the store reject concurrent duplicate invites
// that both passed the membership pre-check.
func (r *GormContributorRepository) Create(contributor *models.Contributor) error {
	return r.db.Create(contributor).Error
}

// FindByID finds a contributor by ID with optional preloading
func (r *GormContributorRepository) FindByID(id uint64, preload ...string) (*models.Contributor, error) {
	var contributor models.Contributor
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&contributor, id).Error; err != nil {
		return nil, err
	}

	return &contributor, nil
}

// FindMember finds the contributor row for a (project, user) pair
func (r *GormContributorRepository) FindMember(projectID, userID uint64) (*models.Contributor, error) {
	var contributor models.Contributor
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&contributor).Error; err != nil {
		return nil, err
	}
	return &contributor, nil
}

// ListByProject lists a project's contributors ordered by ID
func (r *GormContributorRepository) ListByProject(projectID uint64) ([]models.Contributor, error) {
	var contributors []models.Contributor
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&contributors).Error; err != nil {
		return nil, err
	}
	return contributors, nil
}

// RemoveWithCascade removes a contributor and cleans up the project behind
// them in one transaction:
//
//  1. Issues merely assigned to the departing user go back to their authors.
//  2. Every comment in the project authored by the user is removed, along
//     with comments by anyone on issues the user authored. Matching both in
//     a single statement means no ordering against step 3 can orphan one.
//  3. Issues authored by the user are removed.
//  4. The contributor row itself is removed.
//
// Any failure rolls the whole transaction back.
func (r *GormContributorRepository) RemoveWithCascade(contributor *models.Contributor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Issue{}).
			Where("project_id = ? AND assignee_id = ? AND author_id <> ?",
				contributor.ProjectID, contributor.UserID, contributor.UserID).
			Update("assignee_id", gorm.Expr("author_id")).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrReassignIssues, err)
		}

		authoredIssues := tx.Model(&models.Issue{}).
			Select("id").
			Where("project_id = ? AND author_id = ?", contributor.ProjectID, contributor.UserID)

		if err := tx.Where("project_id = ? AND (author_id = ? OR issue_id IN (?))",
			contributor.ProjectID, contributor.UserID, authoredIssues).
			Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteComments, err)
		}

		if err := tx.Where("project_id = ? AND author_id = ?",
			contributor.ProjectID, contributor.UserID).
			Delete(&models.Issue{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteIssues, err)
		}

		if err := tx.Delete(&models.Contributor{}, contributor.ID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteContributor, err)
		}

		return nil
	})
}
