package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/softdesk/issue-tracker-api/internal/dto"
	apierrors "github.com/softdesk/issue-tracker-api/internal/errors"
	"github.com/softdesk/issue-tracker-api/internal/middleware"
	"github.com/softdesk/issue-tracker-api/internal/services"
	"github.com/softdesk/issue-tracker-api/internal/utils"
)

// CommentHandler coordinates comment HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateComment creates a comment authored by the caller on the issue in
// the URL.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	issueID, ok := parseIDParam(c, "issue_id")
	if !ok {
		return
	}

	type CreateCommentRequest struct {
		Description string `json:"description" binding:"required,max=256"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(services.CreateCommentInput{
		ProjectID:   project.ID,
		IssueID:     issueID,
		AuthorID:    userID,
		Description: req.Description,
	})
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments returns the issue's comments.
func (h *CommentHandler) ListComments(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	issueID, ok := parseIDParam(c, "issue_id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	comments, total, err := h.commentService.ListComments(project.ID, issueID, params)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentListResponse(comments, params, total))
}

// GetComment returns one comment of the issue.
func (h *CommentHandler) GetComment(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	issueID, ok := parseIDParam(c, "issue_id")
	if !ok {
		return
	}

	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.commentService.GetComment(project.ID, issueID, commentID)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDetailDTO(*comment))
}

// UpdateComment replaces the comment's description. Comment author only.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	issueID, ok := parseIDParam(c, "issue_id")
	if !ok {
		return
	}

	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	type UpdateCommentRequest struct {
		Description string `json:"description" binding:"required,max=256"`
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(project.ID, issueID, commentID, userID, req.Description)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDetailDTO(*comment))
}

// DeleteComment deletes a comment. Comment author only.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	issueID, ok := parseIDParam(c, "issue_id")
	if !ok {
		return
	}

	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(project.ID, issueID, commentID, userID); err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCommentNotFound), errors.Is(err, services.ErrIssueNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotCommentAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCommentDescriptionEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
