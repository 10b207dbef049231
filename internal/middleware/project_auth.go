package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/softdesk/issue-tracker-api/internal/constants"
	"github.com/softdesk/issue-tracker-api/internal/database"
	apierrors "github.com/softdesk/issue-tracker-api/internal/errors"
	"github.com/softdesk/issue-tracker-api/internal/models"
)

// RequireProjectAccess checks that the caller is a contributor of the
// project in the URL. Non-contributors get 404, not 403, so project
// existence is never leaked.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("project_id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		var membership models.Contributor
		err = database.GetDB().
			Where("project_id = ? AND user_id = ?", projectID, userID).
			First(&membership).Error
		if err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Set(constants.ContextKeyMembership, membership)
		c.Next()
	}
}

// RequireProjectAuthor checks that the caller holds the Author permission on
// the project loaded by RequireProjectAccess.
func RequireProjectAuthor() gin.HandlerFunc {
	return func(c *gin.Context) {
		membership, ok := GetMembership(c)
		if !ok {
			apierrors.Forbidden(c, "Project access required")
			c.Abort()
			return
		}

		if membership.Permission != models.PermissionAuthor {
			apierrors.Forbidden(c, "Only the project author can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectAccess.
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := value.(models.Project)
	return project, ok
}

// GetMembership retrieves the caller's contributor row loaded by
// RequireProjectAccess.
func GetMembership(c *gin.Context) (models.Contributor, bool) {
	value, exists := c.Get(constants.ContextKeyMembership)
	if !exists {
		return models.Contributor{}, false
	}
	membership, ok := value.(models.Contributor)
	return membership, ok
}
