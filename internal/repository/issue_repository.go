package repository

import (
	"github.com/softdesk/issue-tracker-api/internal/database"
	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/softdesk/issue-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// GormIssueRepository is a GORM implementation of IssueRepository
type GormIssueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new IssueRepository
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &GormIssueRepository{db: db}
}

// Create creates a new issue
func (r *GormIssueRepository) Create(issue *models.Issue) error {
	return r.db.Create(issue).Error
}

// FindByID finds an issue by ID with optional preloading
func (r *GormIssueRepository) FindByID(id uint64, preload ...string) (*models.Issue, error) {
	var issue models.Issue
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&issue, id).Error; err != nil {
		return nil, err
	}

	return &issue, nil
}

// ListByProject lists a project's issues, newest first
func (r *GormIssueRepository) ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Issue, int64, error) {
	query := r.db.Model(&models.Issue{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var issues []models.Issue
	if err := query.
		Scopes(database.Paginate(params)).
		Order("created_at DESC").
		Preload("Author").
		Preload("Assignee").
		Find(&issues).Error; err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}

// Update updates an issue
func (r *GormIssueRepository) Update(issue *models.Issue) error {
	return r.db.Save(issue).Error
}

// Delete removes an issue and its comments in one transaction
func (r *GormIssueRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Issue{}, id).Error
	})
}

// CountComments counts the comments of an issue
func (r *GormIssueRepository) CountComments(issueID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("issue_id = ?", issueID).Count(&count).Error
	return count, err
}
