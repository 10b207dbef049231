package repository

import (
	"errors"
	"fmt"

	"github.com/softdesk/issue-tracker-api/internal/database"
	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/softdesk/issue-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrCreateProject is returned when the project insert fails inside the creation transaction.
	ErrCreateProject = errors.New("project repository: create project failed")
	// ErrCreateAuthorContributor is returned when the author's contributor row fails inside the creation transaction.
	ErrCreateAuthorContributor = errors.New("project repository: create author contributor failed")
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithAuthor creates the project and its author contributor row
// atomically. A project without an Author contributor must never be
// observable, even across a crash.
func (r *GormProjectRepository) CreateWithAuthor(project *models.Project, contributor *models.Contributor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProject, err)
		}

		contributor.ProjectID = project.ID
		contributor.UserID = project.AuthorID

		if err := tx.Create(contributor).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateAuthorContributor, err)
		}

		return nil
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListByUserID lists projects the user has a contributor row for. The full
// project table is never exposed.
func (r *GormProjectRepository) ListByUserID(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	memberSubQuery := r.db.Model(&models.Contributor{}).
		Select("project_id").
		Where("user_id = ?", userID)

	query := r.db.Model(&models.Project{}).Where("id IN (?)", memberSubQuery)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := query.
		Scopes(database.Paginate(params)).
		Order("projects.id ASC").
		Preload("Author").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project and everything it owns in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Issue{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Contributor{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// CountIssues counts the issues of a project
func (r *GormProjectRepository) CountIssues(projectID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Issue{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}
