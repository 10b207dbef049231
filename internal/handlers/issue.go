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

// IssueHandler coordinates issue HTTP handlers.
type IssueHandler struct {
	issueService *services.IssueService
}

// NewIssueHandler creates a new IssueHandler.
func NewIssueHandler(issueService *services.IssueService) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
	}
}

// IssueRequest is the full payload for issue create and update.
type IssueRequest struct {
	Title         string `json:"title" binding:"required,max=64"`
	Description   string `json:"description" binding:"max=256"`
	Tag           string `json:"tag" binding:"required"`
	Priority      string `json:"priority" binding:"required"`
	Status        string `json:"status"`
	AssigneeEmail string `json:"assignee_email" binding:"omitempty,email"`
}

// CreateIssue creates an issue authored by the caller.
func (h *IssueHandler) CreateIssue(c *gin.Context) {
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

	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	issue, err := h.issueService.CreateIssue(services.CreateIssueInput{
		ProjectID:     project.ID,
		AuthorID:      userID,
		Title:         req.Title,
		Description:   req.Description,
		Tag:           req.Tag,
		Priority:      req.Priority,
		Status:        req.Status,
		AssigneeEmail: req.AssigneeEmail,
	})
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToIssueDTO(*issue))
}

// ListIssues returns the project's issues.
func (h *IssueHandler) ListIssues(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	params := utils.GetPaginationParams(c)

	issues, total, err := h.issueService.ListIssues(project.ID, params)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueListResponse(issues, params, total))
}

// GetIssue returns one issue with its comment count.
func (h *IssueHandler) GetIssue(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	issueID, ok := parseIDParam(c, "issue_id")
	if !ok {
		return
	}

	issue, commentCount, err := h.issueService.GetIssue(project.ID, issueID)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueDetailDTO(*issue, commentCount))
}

// UpdateIssue replaces an issue's mutable fields. Issue author only.
func (h *IssueHandler) UpdateIssue(c *gin.Context) {
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

	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	issue, err := h.issueService.UpdateIssue(project.ID, issueID, userID, services.UpdateIssueInput{
		Title:         req.Title,
		Description:   req.Description,
		Tag:           req.Tag,
		Priority:      req.Priority,
		Status:        req.Status,
		AssigneeEmail: req.AssigneeEmail,
	})
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueDTO(*issue))
}

// DeleteIssue removes an issue and its comments. Issue author only.
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
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

	if err := h.issueService.DeleteIssue(project.ID, issueID, userID); err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Issue deleted successfully",
	})
}

// PatchNotAllowed rejects partial updates on any resource.
func PatchNotAllowed(c *gin.Context) {
	apierrors.MethodNotAllowed(c, "Partial updates are not supported, use PUT")
}

func respondIssueError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrIssueNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotIssueAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrIssueTitleEmpty):
		apierrors.BadRequest(c, err.Error())
	case errors.As(err, &validationErr):
		apierrors.ValidationError(c, validationErr.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
