package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/softdesk/issue-tracker-api/internal/dto"
	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCommentHandler_CreateComment(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	project := createTestProject(t, env, alice.ID, "Bug Tracker")
	issue := createTestIssue(t, env, project.ID, alice.ID, "Crash on launch", "")

	payload := map[string]string{"description": "Reproduced on staging"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/projects/1/issues/1/comments", body, alice.ID)
	withProject(c, *project)
	setParam(c, "issue_id", fmt.Sprint(issue.ID))

	env.commentHandler.CreateComment(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Reproduced on staging", response.Description)
	require.Equal(t, issue.ID, response.IssueID)
	// The project reference is taken from the issue, not the payload.
	require.Equal(t, project.ID, response.ProjectID)
}

func TestCommentHandler_CreateComment_IssueFromOtherProject(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	projectA := createTestProject(t, env, alice.ID, "Project A")
	projectB := createTestProject(t, env, alice.ID, "Project B")
	issue := createTestIssue(t, env, projectB.ID, alice.ID, "Crash on launch", "")

	payload := map[string]string{"description": "Reproduced on staging"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/projects/1/issues/1/comments", body, alice.ID)
	withProject(c, *projectA)
	setParam(c, "issue_id", fmt.Sprint(issue.ID))

	env.commentHandler.CreateComment(c)

	require.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCommentHandler_UpdateComment_AuthorOnly(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	bob := createTestUser(t, env.db, "bob", "bob@example.com")
	project := createTestProject(t, env, alice.ID, "Bug Tracker")
	inviteTestContributor(t, env, project.ID, bob.Email)

	issue := createTestIssue(t, env, project.ID, alice.ID, "Crash on launch", "")
	comment := createTestComment(t, env, project.ID, issue.ID, alice.ID, "Reproduced on staging")

	payload := map[string]string{"description": "Edited"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPut, "/api/projects/1/issues/1/comments/1", body, bob.ID)
	withProject(c, *project)
	setParam(c, "issue_id", fmt.Sprint(issue.ID))
	setParam(c, "comment_id", fmt.Sprint(comment.ID))

	env.commentHandler.UpdateComment(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	var unchanged models.Comment
	require.NoError(t, env.db.First(&unchanged, comment.ID).Error)
	require.Equal(t, "Reproduced on staging", unchanged.Description)
}

func TestCommentHandler_UpdateComment(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	project := createTestProject(t, env, alice.ID, "Bug Tracker")
	issue := createTestIssue(t, env, project.ID, alice.ID, "Crash on launch", "")
	comment := createTestComment(t, env, project.ID, issue.ID, alice.ID, "Reproduced on staging")

	payload := map[string]string{"description": "Reproduced on staging and production"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPut, "/api/projects/1/issues/1/comments/1", body, alice.ID)
	withProject(c, *project)
	setParam(c, "issue_id", fmt.Sprint(issue.ID))
	setParam(c, "comment_id", fmt.Sprint(comment.ID))

	env.commentHandler.UpdateComment(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.CommentDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Reproduced on staging and production", response.Description)
}

func TestCommentHandler_GetComment_WrongIssue(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	project := createTestProject(t, env, alice.ID, "Bug Tracker")
	issueA := createTestIssue(t, env, project.ID, alice.ID, "Crash on launch", "")
	issueB := createTestIssue(t, env, project.ID, alice.ID, "Slow queries", "")
	comment := createTestComment(t, env, project.ID, issueB.ID, alice.ID, "Reproduced on staging")

	c, w := testContext(http.MethodGet, "/api/projects/1/issues/1/comments/1", nil, alice.ID)
	withProject(c, *project)
	setParam(c, "issue_id", fmt.Sprint(issueA.ID))
	setParam(c, "comment_id", fmt.Sprint(comment.ID))

	env.commentHandler.GetComment(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentHandler_DeleteComment(t *testing.T) {
	env := setupTestEnv(t)

	alice := createTestUser(t, env.db, "alice", "alice@example.com")
	project := createTestProject(t, env, alice.ID, "Bug Tracker")
	issue := createTestIssue(t, env, project.ID, alice.ID, "Crash on launch", "")
	comment := createTestComment(t, env, project.ID, issue.ID, alice.ID, "Reproduced on staging")

	c, w := testContext(http.MethodDelete, "/api/projects/1/issues/1/comments/1", nil, alice.ID)
	withProject(c, *project)
	setParam(c, "issue_id", fmt.Sprint(issue.ID))
	setParam(c, "comment_id", fmt.Sprint(comment.ID))

	env.commentHandler.DeleteComment(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	require.Zero(t, count)
}
