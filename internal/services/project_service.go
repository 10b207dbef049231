package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/softdesk/issue-tracker-api/internal/repository"
	"github.com/softdesk/issue-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrProjectTitleEmpty = errors.New("project title cannot be empty")
)

// ValidationError marks input errors the API surfaces as 422 responses,
// carrying the field-level reason verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo     repository.ProjectRepository
	contributorRepo repository.ContributorRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, contributorRepo repository.ContributorRepository) *ProjectService {
	return &ProjectService{
		projectRepo:     projectRepo,
		contributorRepo: contributorRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Title       string
	Description string
	Type        string
	AuthorID    uint64
}

// CreateProject creates a project and bootstraps its author as the single
// Author contributor, atomically.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrProjectTitleEmpty
	}

	projectType, err := models.ParseProjectType(input.Type)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		Type:        projectType,
		AuthorID:    input.AuthorID,
	}

	contributor := &models.Contributor{
		Permission: models.PermissionAuthor,
		Role:       models.RoleProjectLead,
	}

	if err := s.projectRepo.CreateWithAuthor(project, contributor); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjects returns the projects the user contributes to.
func (s *ProjectService) ListProjects(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.ListByUserID(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProjectDetail returns a project together with its contributors and
// issue count.
func (s *ProjectService) GetProjectDetail(projectID uint64) (*models.Project, []models.Contributor, int64, error) {
	project, err := s.projectRepo.FindByID(projectID, "Author")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, ErrProjectNotFound
		}
		return nil, nil, 0, fmt.Errorf("failed to find project: %w", err)
	}

	contributors, err := s.contributorRepo.ListByProject(projectID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to list contributors: %w", err)
	}

	issueCount, err := s.projectRepo.CountIssues(projectID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to count issues: %w", err)
	}

	return project, contributors, issueCount, nil
}

// UpdateProjectInput represents a full project update. Partial updates are
// not supported on this resource.
type UpdateProjectInput struct {
	Title       string
	Description string
	Type        string
}

// UpdateProject replaces a project's mutable fields. The author reference
// never changes.
func (s *ProjectService) UpdateProject(projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrProjectTitleEmpty
	}

	projectType, err := models.ParseProjectType(input.Type)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	project.Title = input.Title
	project.Description = input.Description
	project.Type = projectType

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project and everything it owns.
func (s *ProjectService) DeleteProject(projectID uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
