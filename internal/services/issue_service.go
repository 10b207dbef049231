package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/softdesk/issue-tracker-api/internal/repository"
	"github.com/softdesk/issue-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrIssueNotFound   = errors.New("issue not found")
	ErrNotIssueAuthor  = errors.New("only the issue author can perform this action")
	ErrIssueTitleEmpty = errors.New("issue title cannot be empty")
)

const invalidAssigneeReason = "assignee_email must be a valid contributor email"

// IssueService provides business logic for issue operations.
type IssueService struct {
	issueRepo       repository.IssueRepository
	contributorRepo repository.ContributorRepository
	userRepo        repository.UserRepository
}

// NewIssueService creates a new IssueService.
func NewIssueService(issueRepo repository.IssueRepository, contributorRepo repository.ContributorRepository, userRepo repository.UserRepository) *IssueService {
	return &IssueService{
		issueRepo:       issueRepo,
		contributorRepo: contributorRepo,
		userRepo:        userRepo,
	}
}

// CreateIssueInput represents parameters to create a new issue.
type CreateIssueInput struct {
	ProjectID     uint64
	AuthorID      uint64
	Title         string
	Description   string
	Tag           string
	Priority      string
	Status        string
	AssigneeEmail string
}

// CreateIssue creates an issue authored by the caller. The assignee defaults
// to the author; an explicit assignee email must belong to a current
// contributor of the project.
func (s *IssueService) CreateIssue(input CreateIssueInput) (*models.Issue, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrIssueTitleEmpty
	}

	tag, err := models.ParseIssueTag(input.Tag)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	priority, err := models.ParseIssuePriority(input.Priority)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	status := models.IssueStatusToDo
	if input.Status != "" {
		status, err = models.ParseIssueStatus(input.Status)
		if err != nil {
			return nil, &ValidationError{Reason: err.Error()}
		}
	}

	assigneeID := input.AuthorID
	if input.AssigneeEmail != "" {
		assigneeID, err = s.resolveAssignee(input.ProjectID, input.AssigneeEmail)
		if err != nil {
			return nil, err
		}
	}

	issue := &models.Issue{
		Title:       input.Title,
		Description: input.Description,
		Tag:         tag,
		Priority:    priority,
		Status:      status,
		ProjectID:   input.ProjectID,
		AuthorID:    input.AuthorID,
		AssigneeID:  assigneeID,
	}

	if err := s.issueRepo.Create(issue); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	return s.issueRepo.FindByID(issue.ID, "Author", "Assignee")
}

// ListIssues returns a project's issues.
func (s *IssueService) ListIssues(projectID uint64, params utils.PaginationParams) ([]models.Issue, int64, error) {
	issues, total, err := s.issueRepo.ListByProject(projectID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}
	return issues, total, nil
}

// GetIssue returns one issue of the project with its comment count. An issue
// belonging to a different project reads as not found.
func (s *IssueService) GetIssue(projectID, issueID uint64) (*models.Issue, int64, error) {
	issue, err := s.issueRepo.FindByID(issueID, "Author", "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrIssueNotFound
		}
		return nil, 0, fmt.Errorf("failed to find issue: %w", err)
	}

	if issue.ProjectID != projectID {
		return nil, 0, ErrIssueNotFound
	}

	commentCount, err := s.issueRepo.CountComments(issueID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return issue, commentCount, nil
}

// UpdateIssueInput represents a full issue update. Partial updates are not
// supported on this resource.
type UpdateIssueInput struct {
	Title         string
	Description   string
	Tag           string
	Priority      string
	Status        string
	AssigneeEmail string
}

// UpdateIssue replaces an issue's mutable fields. Only the author may update;
// an assignee email, when given, is validated against current contributors
// the same way as on creation.
func (s *IssueService) UpdateIssue(projectID, issueID, actorID uint64, input UpdateIssueInput) (*models.Issue, error) {
	issue, _, err := s.GetIssue(projectID, issueID)
	if err != nil {
		return nil, err
	}

	if issue.AuthorID != actorID {
		return nil, ErrNotIssueAuthor
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrIssueTitleEmpty
	}

	tag, err := models.ParseIssueTag(input.Tag)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	priority, err := models.ParseIssuePriority(input.Priority)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	status, err := models.ParseIssueStatus(input.Status)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	if input.AssigneeEmail != "" {
		assigneeID, err := s.resolveAssignee(projectID, input.AssigneeEmail)
		if err != nil {
			return nil, err
		}
		issue.AssigneeID = assigneeID
	}

	issue.Title = input.Title
	issue.Description = input.Description
	issue.Tag = tag
	issue.Priority = priority
	issue.Status = status

	if err := s.issueRepo.Update(issue); err != nil {
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	return s.issueRepo.FindByID(issue.ID, "Author", "Assignee")
}

// DeleteIssue removes an issue and its comments. Only the author may delete.
func (s *IssueService) DeleteIssue(projectID, issueID, actorID uint64) error {
	issue, _, err := s.GetIssue(projectID, issueID)
	if err != nil {
		return err
	}

	if issue.AuthorID != actorID {
		return ErrNotIssueAuthor
	}

	if err := s.issueRepo.Delete(issueID); err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}

	return nil
}

// resolveAssignee maps an email to a user ID, requiring a current
// contributor row on the project. Validity is checked at assignment time
// only; later membership changes are repaired by the removal cascade.
func (s *IssueService) resolveAssignee(projectID uint64, email string) (uint64, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &ValidationError{Reason: invalidAssigneeReason}
		}
		return 0, fmt.Errorf("failed to resolve assignee email: %w", err)
	}

	if _, err := s.contributorRepo.FindMember(projectID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &ValidationError{Reason: invalidAssigneeReason}
		}
		return 0, fmt.Errorf("failed to verify assignee membership: %w", err)
	}

	return user.ID, nil
}
