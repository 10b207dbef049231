package dto

import "github.com/softdesk/issue-tracker-api/internal/models"

// ContributorDTO represents a contributor in list responses. The author is
// recognizable by their role label rather than by exposing the permission.
type ContributorDTO struct {
	ID   uint64   `json:"id"`
	User *UserDTO `json:"user,omitempty"`
	Role string   `json:"role"`
}

// ContributorDetailDTO represents a contributor with full fields
type ContributorDetailDTO struct {
	ID         uint64            `json:"id"`
	User       *UserDTO          `json:"user,omitempty"`
	ProjectID  uint64            `json:"project_id"`
	Permission models.Permission `json:"permission"`
	Role       string            `json:"role"`
}

// ToContributorDTO converts a Contributor model to ContributorDTO
func ToContributorDTO(contributor models.Contributor) ContributorDTO {
	dto := ContributorDTO{
		ID:   contributor.ID,
		Role: contributor.Role,
	}

	if contributor.User.ID != 0 {
		user := ToUserDTO(contributor.User)
		dto.User = &user
	}

	return dto
}

// ToContributorDetailDTO converts a Contributor model to ContributorDetailDTO
func ToContributorDetailDTO(contributor models.Contributor) ContributorDetailDTO {
	dto := ContributorDetailDTO{
		ID:         contributor.ID,
		ProjectID:  contributor.ProjectID,
		Permission: contributor.Permission,
		Role:       contributor.Role,
	}

	if contributor.User.ID != 0 {
		user := ToUserDTO(contributor.User)
		dto.User = &user
	}

	return dto
}
