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
	ErrCommentNotFound         = errors.New("comment not found")
	ErrNotCommentAuthor        = errors.New("only the comment author can perform this action")
	ErrCommentDescriptionEmpty = errors.New("comment description cannot be empty")
)

// CommentService provides business logic for comment operations.
type CommentService struct {
	commentRepo repository.CommentRepository
	issueRepo   repository.IssueRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, issueRepo repository.IssueRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		issueRepo:   issueRepo,
	}
}

// CreateCommentInput represents parameters to create a comment. Project and
// issue come from the URL context, never from the request body, so a comment
// cannot be injected into a foreign project.
type CreateCommentInput struct {
	ProjectID   uint64
	IssueID     uint64
	AuthorID    uint64
	Description string
}

// CreateComment creates a comment authored by the caller on the given issue.
func (s *CommentService) CreateComment(input CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrCommentDescriptionEmpty
	}

	issue, err := s.issueRepo.FindByID(input.IssueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	if issue.ProjectID != input.ProjectID {
		return nil, ErrIssueNotFound
	}

	comment := &models.Comment{
		Description: input.Description,
		ProjectID:   issue.ProjectID,
		IssueID:     issue.ID,
		AuthorID:    input.AuthorID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.commentRepo.FindByID(comment.ID, "Author")
}

// ListComments returns an issue's comments, verifying the issue belongs to
// the project first.
func (s *CommentService) ListComments(projectID, issueID uint64, params utils.PaginationParams) ([]models.Comment, int64, error) {
	issue, err := s.issueRepo.FindByID(issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrIssueNotFound
		}
		return nil, 0, fmt.Errorf("failed to find issue: %w", err)
	}

	if issue.ProjectID != projectID {
		return nil, 0, ErrIssueNotFound
	}

	comments, total, err := s.commentRepo.ListByIssue(issueID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, total, nil
}

// GetComment returns one comment of the issue. A comment belonging to a
// different issue or project reads as not found.
func (s *CommentService) GetComment(projectID, issueID, commentID uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID, "Author")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.IssueID != issueID || comment.ProjectID != projectID {
		return nil, ErrCommentNotFound
	}

	return comment, nil
}

// UpdateComment replaces a comment's description. Only the author may update.
func (s *CommentService) UpdateComment(projectID, issueID, commentID, actorID uint64, description string) (*models.Comment, error) {
	comment, err := s.GetComment(projectID, issueID, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != actorID {
		return nil, ErrNotCommentAuthor
	}

	if strings.TrimSpace(description) == "" {
		return nil, ErrCommentDescriptionEmpty
	}

	comment.Description = description

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteComment deletes a comment. Only the author may delete.
func (s *CommentService) DeleteComment(projectID, issueID, commentID, actorID uint64) error {
	comment, err := s.GetComment(projectID, issueID, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != actorID {
		return ErrNotCommentAuthor
	}

	if err := s.commentRepo.Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
