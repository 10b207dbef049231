package repository

import (
	"github.com/softdesk/issue-tracker-api/internal/database"
	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/softdesk/issue-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID finds a comment by ID with optional preloading
func (r *GormCommentRepository) FindByID(id uint64, preload ...string) (*models.Comment, error) {
	var comment models.Comment
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&comment, id).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListByIssue lists an issue's comments, oldest first
func (r *GormCommentRepository) ListByIssue(issueID uint64, params utils.PaginationParams) ([]models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{}).Where("issue_id = ?", issueID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	if err := query.
		Scopes(database.Paginate(params)).
		Order("created_at ASC").
		Preload("Author").
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// Update updates a comment
func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete deletes a comment
func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
