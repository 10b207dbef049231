package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/softdesk/issue-tracker-api/internal/models"
	"github.com/softdesk/issue-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvitedUserNotFound = errors.New("no user registered with this email")
	ErrAlreadyContributor  = errors.New("user is already a contributor of this project")
	ErrContributorNotFound = errors.New("contributor not found")
	ErrCannotRemoveAuthor  = errors.New("the project author cannot be removed")
)

// ContributorService provides business logic for contributor operations.
type ContributorService struct {
	contributorRepo repository.ContributorRepository
	userRepo        repository.UserRepository
}

// NewContributorService creates a new ContributorService.
func NewContributorService(contributorRepo repository.ContributorRepository, userRepo repository.UserRepository) *ContributorService {
	return &ContributorService{
		contributorRepo: contributorRepo,
		userRepo:        userRepo,
	}
}

// InviteInput represents parameters to invite a user onto a project by email.
type InviteInput struct {
	ProjectID uint64
	Email     string
	Role      string
}

// Invite adds a registered user to the project as a plain contributor.
// Invites can never mint an Author row; only project creation does that.
func (s *ContributorService) Invite(input InviteInput) (*models.Contributor, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitedUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve email: %w", err)
	}

	if _, err := s.contributorRepo.FindMember(input.ProjectID, user.ID); err == nil {
		return nil, ErrAlreadyContributor
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	contributor := &models.Contributor{
		UserID:     user.ID,
		ProjectID:  input.ProjectID,
		Permission: models.PermissionContributor,
		Role:       input.Role,
	}

	if err := s.contributorRepo.Create(contributor); err != nil {
		// Two concurrent invites can both pass the pre-check; the unique
		// (user_id, project_id) index decides the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyContributor
		}
		return nil, fmt.Errorf("failed to create contributor: %w", err)
	}

	contributor.User = *user
	return contributor, nil
}

// ListContributors returns a project's contributors ordered by ID.
func (s *ContributorService) ListContributors(projectID uint64) ([]models.Contributor, error) {
	contributors, err := s.contributorRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}
	return contributors, nil
}

// GetContributor returns one contributor of the project. A contributor
// belonging to a different project reads as not found.
func (s *ContributorService) GetContributor(projectID, contributorID uint64) (*models.Contributor, error) {
	contributor, err := s.contributorRepo.FindByID(contributorID, "User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContributorNotFound
		}
		return nil, fmt.Errorf("failed to find contributor: %w", err)
	}

	if contributor.ProjectID != projectID {
		return nil, ErrContributorNotFound
	}

	return contributor, nil
}

// RemoveContributor deletes a contributor and cascades the cleanup of their
// content. Removing the Author row is refused so the project cannot be
// orphaned.
func (s *ContributorService) RemoveContributor(projectID, contributorID uint64) error {
	contributor, err := s.GetContributor(projectID, contributorID)
	if err != nil {
		return err
	}

	if contributor.Permission == models.PermissionAuthor {
		return ErrCannotRemoveAuthor
	}

	if err := s.contributorRepo.RemoveWithCascade(contributor); err != nil {
		return fmt.Errorf("failed to remove contributor: %w", err)
	}

	return nil
}
