package dto

import (
	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/softdesk/issue-tracker-api/internal/utils"
)

// ProjectDTO represents a project in list responses
type ProjectDTO struct {
	ID          uint64             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        models.ProjectType `json:"type"`
	AuthorID    uint64             `json:"author_id"`
	Author      *UserDTO           `json:"author,omitempty"`
}

// ProjectDetailDTO represents a project with its contributors and issue count
type ProjectDetailDTO struct {
	ProjectDTO
	Contributors []ContributorDTO `json:"contributors"`
	Issues       int64            `json:"issues"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO             `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Type:        project.Type,
		AuthorID:    project.AuthorID,
	}

	// Include author if preloaded
	if project.Author.ID != 0 {
		author := ToUserDTO(project.Author)
		dto.Author = &author
	}

	return dto
}

// ToProjectDetailDTO converts a project with contributors to detailed DTO
func ToProjectDetailDTO(project models.Project, contributors []models.Contributor, issueCount int64) ProjectDetailDTO {
	contributorDTOs := make([]ContributorDTO, len(contributors))
	for i, contributor := range contributors {
		contributorDTOs[i] = ToContributorDTO(contributor)
	}

	return ProjectDetailDTO{
		ProjectDTO:   ToProjectDTO(project),
		Contributors: contributorDTOs,
		Issues:       issueCount,
	}
}

// ToProjectListResponse converts a slice of projects to ProjectListResponse
func ToProjectListResponse(projects []models.Project, params utils.PaginationParams, total int64) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}

	return ProjectListResponse{
		Projects: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
