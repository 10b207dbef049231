package dto

import (
	"time"

	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/softdesk/issue-tracker-api/internal/utils"
)

// IssueDTO represents an issue in list responses
type IssueDTO struct {
	ID          uint64               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Tag         models.IssueTag      `json:"tag"`
	Priority    models.IssuePriority `json:"priority"`
	Status      models.IssueStatus   `json:"status"`
	ProjectID   uint64               `json:"project_id"`
	Author      *UserDTO             `json:"author,omitempty"`
	Assignee    *UserDTO             `json:"assignee,omitempty"`
}

// IssueDetailDTO represents an issue with timestamps and comment count
type IssueDetailDTO struct {
	IssueDTO
	CreatedAt time.Time `json:"created_at"`
	Comments  int64     `json:"comments"`
}

// IssueListResponse represents a paginated list of issues
type IssueListResponse struct {
	Issues     []IssueDTO               `json:"issues"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToIssueDTO converts an Issue model to IssueDTO
func ToIssueDTO(issue models.Issue) IssueDTO {
	dto := IssueDTO{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Tag:         issue.Tag,
		Priority:    issue.Priority,
		Status:      issue.Status,
		ProjectID:   issue.ProjectID,
	}

	if issue.Author.ID != 0 {
		author := ToUserDTO(issue.Author)
		dto.Author = &author
	}

	if issue.Assignee.ID != 0 {
		assignee := ToUserDTO(issue.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToIssueDetailDTO converts an Issue model to IssueDetailDTO
func ToIssueDetailDTO(issue models.Issue, commentCount int64) IssueDetailDTO {
	return IssueDetailDTO{
		IssueDTO:  ToIssueDTO(issue),
		CreatedAt: issue.CreatedAt,
		Comments:  commentCount,
	}
}

// ToIssueListResponse converts a slice of issues to IssueListResponse
func ToIssueListResponse(issues []models.Issue, params utils.PaginationParams, total int64) IssueListResponse {
	items := make([]IssueDTO, len(issues))
	for i, issue := range issues {
		items[i] = ToIssueDTO(issue)
	}

	return IssueListResponse{
		Issues: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
