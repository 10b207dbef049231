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

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a project with the caller as author.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Title       string `json:"title" binding:"required,max=64"`
		Description string `json:"description" binding:"max=256"`
		Type        string `json:"type" binding:"required"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		AuthorID:    userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns the projects the caller contributes to.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.ListProjects(userID, params)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, params, total))
}

// GetProject returns project details with contributors and issue count.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	detail, contributors, issueCount, err := h.projectService.GetProjectDetail(project.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*detail, contributors, issueCount))
}

// UpdateProject replaces the project's mutable fields. Author only.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type UpdateProjectRequest struct {
		Title       string `json:"title" binding:"required,max=64"`
		Description string `json:"description" binding:"max=256"`
		Type        string `json:"type" binding:"required"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.UpdateProject(project.ID, services.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated))
}

// DeleteProject removes the project and everything it owns. Author only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.DeleteProject(project.ID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

func respondProjectError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectTitleEmpty):
		apierrors.BadRequest(c, err.Error())
	case errors.As(err, &validationErr):
		apierrors.ValidationError(c, validationErr.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
