package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/softdesk/issue-tracker-api/internal/dto"
	apierrors "github.com/softdesk/issue-tracker-api/internal/errors"
	"github.com/softdesk/issue-tracker-api/internal/middleware"
	"github.com/softdesk/issue-tracker-api/internal/services"
)

// ContributorHandler coordinates contributor HTTP handlers.
type ContributorHandler struct {
	contributorService *services.ContributorService
}

// NewContributorHandler creates a new ContributorHandler.
func NewContributorHandler(contributorService *services.ContributorService) *ContributorHandler {
	return &ContributorHandler{
		contributorService: contributorService,
	}
}

// InviteContributor adds a registered user to the project by email.
// Project author only.
func (h *ContributorHandler) InviteContributor(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type InviteRequest struct {
		Email string `json:"email" binding:"required,email,max=140"`
		Role  string `json:"role" binding:"max=64"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	contributor, err := h.contributorService.Invite(services.InviteInput{
		ProjectID: project.ID,
		Email:     req.Email,
		Role:      req.Role,
	})
	if err != nil {
		respondContributorError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContributorDetailDTO(*contributor))
}

// ListContributors returns the project's contributors.
func (h *ContributorHandler) ListContributors(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	contributors, err := h.contributorService.ListContributors(project.ID)
	if err != nil {
		respondContributorError(c, err)
		return
	}

	items := make([]dto.ContributorDTO, len(contributors))
	for i, contributor := range contributors {
		items[i] = dto.ToContributorDTO(contributor)
	}

	c.JSON(http.StatusOK, gin.H{
		"contributors": items,
	})
}

// GetContributor returns one contributor of the project.
func (h *ContributorHandler) GetContributor(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	contributorID, ok := parseIDParam(c, "contributor_id")
	if !ok {
		return
	}

	contributor, err := h.contributorService.GetContributor(project.ID, contributorID)
	if err != nil {
		respondContributorError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContributorDetailDTO(*contributor))
}

// RemoveContributor deletes a contributor and cascades the cleanup of their
// authored content. Project author only; the Author row itself is protected.
func (h *ContributorHandler) RemoveContributor(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	contributorID, ok := parseIDParam(c, "contributor_id")
	if !ok {
		return
	}

	if err := h.contributorService.RemoveContributor(project.ID, contributorID); err != nil {
		respondContributorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contributor removed successfully",
	})
}

// UpdateContributor always reports method not allowed. Contributor records
// are immutable; delete and recreate instead.
func (h *ContributorHandler) UpdateContributor(c *gin.Context) {
	apierrors.MethodNotAllowed(c, "Contributors cannot be updated")
}

func respondContributorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvitedUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrContributorNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyContributor):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCannotRemoveAuthor):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// parseIDParam parses a numeric path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return value, true
}
