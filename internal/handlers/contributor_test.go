package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/softdesk/issue-tracker-api/internal/constants"
	"github.com/softdesk/issue-tracker-api/internal/dto"
	"github.com/softdesk/issue-tracker-api/internal/middleware"
	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestContributorHandler_InviteContributor(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	bob := createTestUser(t, env.db, "bob", "bob@example.com")
	project := createTestProject(t, env, alice.ID, "Bug Tracker")

	payload := map[string]string{"email": "bob@example.com", "role": "Developer"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/projects/1/contributors", body, alice.ID)
	withProject(c, *project)

	env.contributorHandler.InviteContributor(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ContributorDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	// An invite can only ever produce a plain contributor.
	require.Equal(t, models.PermissionContributor, response.Permission)
	require.Equal(t, "Developer", response.Role)
	require.Equal(t, bob.ID, response.User.ID)
}

func TestContributorHandler_InviteContributor_UnknownEmail(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	project := createTestProject(t, env, alice.ID, "Bug Tracker")

	payload := map[string]string{"email": "ghost@example.com"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/projects/1/contributors", body, alice.ID)
	withProject(c, *project)

	env.contributorHandler.InviteContributor(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestContributorHandler_InviteContributor_Duplicate(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	createTestUser(t, env.db, "bob", "bob@example.com")
	project := createTestProject(t, env, alice.ID, "Bug Tracker")
	inviteTestContributor(t, env, project.ID, "bob@example.com")

	payload := map[string]string{"email": "bob@example.com"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/projects/1/contributors", body, alice.ID)
	withProject(c, *project)

	env.contributorHandler.InviteContributor(c)

	require.Equal(t, http.StatusConflict, w.Code)

	// No second row was added.
	var count int64
	require.NoError(t, env.db.Model(&models.Contributor{}).
		Where("project_id = ?", project.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestContributorHandler_RemoveContributor_AuthorIsProtected(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	project := createTestProject(t, env, alice.ID, "Bug Tracker")

	var authorRow models.Contributor
	require.NoError(t, env.db.Where("project_id = ? AND user_id = ?", project.ID, alice.ID).
		First(&authorRow).Error)

	c, w := testContext(http.MethodDelete, "/api/projects/1/contributors/1", nil, alice.ID)
	withProject(c, *project)
	setParam(c, "contributor_id", fmt.Sprint(authorRow.ID))

	env.contributorHandler.RemoveContributor(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	// Nothing changed.
	var count int64
	require.NoError(t, env.db.Model(&models.Contributor{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestContributorHandler_RemoveContributor_WrongProject(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	bob := createTestUser(t, env.db, "bob", "bob@example.com")
	projectA := createTestProject(t, env, alice.ID, "Project A")
	projectB := createTestProject(t, env, bob.ID, "Project B")

	contributor := inviteTestContributor(t, env, projectB.ID, alice.Email)

	c, w := testContext(http.MethodDelete, "/api/projects/1/contributors/3", nil, alice.ID)
	withProject(c, *projectA)
	setParam(c, "contributor_id", fmt.Sprint(contributor.ID))

	env.contributorHandler.RemoveContributor(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

// Removing a contributor deletes their authored content, reassigns issues
// that were merely assigned to them, and drops their row, all atomically.
func TestContributorHandler_RemoveContributor_Cascade(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	bob := createTestUser(t, env.db, "bob", "bob@example.com")
	project := createTestProject(t, env, alice.ID, "Bug Tracker")
	bobRow := inviteTestContributor(t, env, project.ID, bob.Email)

	// Bob authors an issue; with no assignee given it defaults to him.
	bobIssue := createTestIssue(t, env, project.ID, bob.ID, "Crash on launch", "")
	require.Equal(t, bob.ID, bobIssue.AssigneeID)

	// Alice authors an issue and assigns it to Bob.
	aliceIssue := createTestIssue(t, env, project.ID, alice.ID, "Slow queries", bob.Email)
	require.Equal(t, bob.ID, aliceIssue.AssigneeID)

	// Comments: Bob on Alice's issue, Alice on Bob's issue.
	bobComment := createTestComment(t, env, project.ID, aliceIssue.ID, bob.ID, "Looking into it")
	aliceComment := createTestComment(t, env, project.ID, bobIssue.ID, alice.ID, "Can you add logs?")

	c, w := testContext(http.MethodDelete, "/api/projects/1/contributors/2", nil, alice.ID)
	withProject(c, *project)
	setParam(c, "contributor_id", fmt.Sprint(bobRow.ID))

	env.contributorHandler.RemoveContributor(c)

	require.Equal(t, http.StatusOK, w.Code)

	// Bob's contributor row is gone.
	var count int64
	require.NoError(t, env.db.Model(&models.Contributor{}).
		Where("user_id = ? AND project_id = ?", bob.ID, project.ID).Count(&count).Error)
	require.Zero(t, count)

	// Bob's authored issue is gone, including Alice's comment on it.
	require.NoError(t, env.db.Model(&models.Issue{}).
		Where("id = ?", bobIssue.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Comment{}).
		Where("id = ?", aliceComment.ID).Count(&count).Error)
	require.Zero(t, count)

	// Alice's issue survives, reassigned back to its author.
	var survived models.Issue
	require.NoError(t, env.db.First(&survived, aliceIssue.ID).Error)
	require.Equal(t, alice.ID, survived.AssigneeID)

	// Bob's comment on the surviving issue is gone.
	require.NoError(t, env.db.Model(&models.Comment{}).
		Where("id = ?", bobComment.ID).Count(&count).Error)
	require.Zero(t, count)

	// Nothing in the project remains authored by Bob.
	require.NoError(t, env.db.Model(&models.Issue{}).
		Where("project_id = ? AND author_id = ?", project.ID, bob.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&models.Comment{}).
		Where("project_id = ? AND author_id = ?", project.ID, bob.ID).Count(&count).Error)
	require.Zero(t, count)
}

// The contributors PUT route sits behind the membership guard like its
// siblings, so non-members see 404 and members see 405.
func TestContributorRoutes_UpdateContributor_Guarded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	bob := createTestUser(t, env.db, "bob", "bob@example.com")
	createTestProject(t, env, alice.ID, "Bug Tracker")

	callAs := func(userID uint64) int {
		r := gin.New()
		r.PUT("/api/projects/:project_id/contributors/:contributor_id", func(c *gin.Context) {
			c.Set(constants.ContextKeyUserID, userID)
		}, middleware.RequireProjectAccess(), env.contributorHandler.UpdateContributor)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/projects/1/contributors/1", strings.NewReader(`{}`))
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusNotFound, callAs(bob.ID))
	require.Equal(t, http.StatusMethodNotAllowed, callAs(alice.ID))
}

func TestContributorHandler_UpdateContributor_NotAllowed(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	project := createTestProject(t, env, alice.ID, "Bug Tracker")

	c, w := testContext(http.MethodPut, "/api/projects/1/contributors/1", []byte(`{}`), alice.ID)
	withProject(c, *project)
	setParam(c, "contributor_id", "1")

	env.contributorHandler.UpdateContributor(c)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
