package dto

import (
	"time"

	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/softdesk/issue-tracker-api/internal/utils"
)

// CommentDTO represents a comment in list responses
type CommentDTO struct {
	ID          uint64   `json:"id"`
	Description string   `json:"description"`
	ProjectID   uint64   `json:"project_id"`
	IssueID     uint64   `json:"issue_id"`
	Author      *UserDTO `json:"author,omitempty"`
}

// CommentDetailDTO represents a comment with its timestamp
type CommentDetailDTO struct {
	CommentDTO
	CreatedAt time.Time `json:"created_at"`
}

// CommentListResponse represents a paginated list of comments
type CommentListResponse struct {
	Comments   []CommentDTO             `json:"comments"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:          comment.ID,
		Description: comment.Description,
		ProjectID:   comment.ProjectID,
		IssueID:     comment.IssueID,
	}

	if comment.Author.ID != 0 {
		author := ToUserDTO(comment.Author)
		dto.Author = &author
	}

	return dto
}

// ToCommentDetailDTO converts a Comment model to CommentDetailDTO
func ToCommentDetailDTO(comment models.Comment) CommentDetailDTO {
	return CommentDetailDTO{
		CommentDTO: ToCommentDTO(comment),
		CreatedAt:  comment.CreatedAt,
	}
}

// ToCommentListResponse converts a slice of comments to CommentListResponse
func ToCommentListResponse(comments []models.Comment, params utils.PaginationParams, total int64) CommentListResponse {
	items := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = ToCommentDTO(comment)
	}

	return CommentListResponse{
		Comments: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
