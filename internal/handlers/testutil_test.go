package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/softdesk/issue-tracker-api/internal/constants"
	"github.com/softdesk/issue-tracker-api/internal/database"
	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/softdesk/issue-tracker-api/internal/repository"
	"github.com/softdesk/issue-tracker-api/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db                 *gorm.DB
	authHandler        *AuthHandler
	projectHandler     *ProjectHandler
	contributorHandler *ContributorHandler
	issueHandler       *IssueHandler
	commentHandler     *CommentHandler
	projectService     *services.ProjectService
	contributorService *services.ContributorService
	issueService       *services.IssueService
	commentService     *services.CommentService
	tokenService       *services.TokenService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Contributor{},
		&models.Issue{},
		&models.Comment{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	contributorRepo := repository.NewContributorRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	tokenService := services.NewTokenService("test-secret")
	authService := services.NewAuthService(userRepo, tokenService)
	projectService := services.NewProjectService(projectRepo, contributorRepo)
	contributorService := services.NewContributorService(contributorRepo, userRepo)
	issueService := services.NewIssueService(issueRepo, contributorRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, issueRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:                 db,
		authHandler:        NewAuthHandler(authService),
		projectHandler:     NewProjectHandler(projectService),
		contributorHandler: NewContributorHandler(contributorService),
		issueHandler:       NewIssueHandler(issueService),
		commentHandler:     NewCommentHandler(commentService),
		projectService:     projectService,
		contributorService: contributorService,
		issueService:       issueService,
		commentService:     commentService,
		tokenService:       tokenService,
	}
}

// testContext builds a gin context with an authenticated caller, mimicking
// what RequireAuth leaves behind.
func testContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

// withProject stores the project in context, mimicking RequireProjectAccess.
func withProject(c *gin.Context, project models.Project) {
	c.Set(constants.ContextKeyProject, project)
}

func setParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProject(t *testing.T, env testEnv, authorID uint64, title string) *models.Project {
	t.Helper()

	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Title:    title,
		Type:     "back-end",
		AuthorID: authorID,
	})
	require.NoError(t, err)
	return project
}

func inviteTestContributor(t *testing.T, env testEnv, projectID uint64, email string) *models.Contributor {
	t.Helper()

	contributor, err := env.contributorService.Invite(services.InviteInput{
		ProjectID: projectID,
		Email:     email,
		Role:      "Developer",
	})
	require.NoError(t, err)
	return contributor
}

func createTestIssue(t *testing.T, env testEnv, projectID, authorID uint64, title, assigneeEmail string) *models.Issue {
	t.Helper()

	issue, err := env.issueService.CreateIssue(services.CreateIssueInput{
		ProjectID:     projectID,
		AuthorID:      authorID,
		Title:         title,
		Tag:           "Bug",
		Priority:      "High",
		AssigneeEmail: assigneeEmail,
	})
	require.NoError(t, err)
	return issue
}

func createTestComment(t *testing.T, env testEnv, projectID, issueID, authorID uint64, description string) *models.Comment {
	t.Helper()

	comment, err := env.commentService.CreateComment(services.CreateCommentInput{
		ProjectID:   projectID,
		IssueID:     issueID,
		AuthorID:    authorID,
		Description: description,
	})
	require.NoError(t, err)
	return comment
}
