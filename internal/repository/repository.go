package repository

import (
	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/softdesk/issue-tracker-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithAuthor creates a project and the author's contributor row
	// within a single transaction.
	CreateWithAuthor(project *models.Project, contributor *models.Contributor) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListByUserID lists projects the user contributes to, paginated
	ListByUserID(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project and all owned rows in one transaction
	Delete(id uint64) error

	// CountIssues counts the issues of a project
	CountIssues(projectID uint64) (int64, error)
}

// ContributorRepository defines the interface for contributor data access.
// It doubles as the membership registry consulted by the authorization
// guards; FindMember reads the latest committed row, never a cache.
type ContributorRepository interface {
	// Create inserts a contributor row
	Create(contributor *models.Contributor) error

	// FindByID finds a contributor by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Contributor, error)

	// FindMember finds the contributor row for a (project, user) pair
	FindMember(projectID, userID uint64) (*models.Contributor, error)

	// ListByProject lists a project's contributors ordered by ID
	ListByProject(projectID uint64) ([]models.Contributor, error)

	// RemoveWithCascade deletes a contributor row and, in the same
	// transaction, reassigns and removes the departing user's content.
	RemoveWithCascade(contributor *models.Contributor) error
}

// IssueRepository defines the interface for issue data access
type IssueRepository interface {
	// Create creates a new issue
	Create(issue *models.Issue) error

	// FindByID finds an issue by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Issue, error)

	// ListByProject lists a project's issues, paginated
	ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Issue, int64, error)

	// Update updates an issue
	Update(issue *models.Issue) error

	// Delete removes an issue and its comments in one transaction
	Delete(id uint64) error

	// CountComments counts the comments of an issue
	CountComments(issueID uint64) (int64, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Comment, error)

	// ListByIssue lists an issue's comments, paginated
	ListByIssue(issueID uint64, params utils.PaginationParams) ([]models.Comment, int64, error)

	// Update updates a comment
	Update(comment *models.Comment) error

	// Delete deletes a comment
	Delete(id uint64) error
}
