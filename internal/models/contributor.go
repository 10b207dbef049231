package models

import "time"

type Permission string

const (
	PermissionAuthor      Permission = "Author"
	PermissionContributor Permission = "Contributor"
)

// RoleProjectLead is the role label given to the author's own contributor
// row, created together with the project.
const RoleProjectLead = "Project Lead"

// Contributor binds a user to a project with a permission level. The
// composite unique index makes the store reject a second row for the same
// (user, project) pair, which closes the race between two concurrent invites.
type Contributor struct {
	ID         uint64     `gorm:"primarykey" json:"id"`
	UserID     uint64     `gorm:"not null;uniqueIndex:idx_contributors_user_project" json:"user_id"`
	ProjectID  uint64     `gorm:"not null;uniqueIndex:idx_contributors_user_project" json:"project_id"`
	Permission Permission `gorm:"type:varchar(16);not null" json:"permission"`
	Role       string     `gorm:"type:varchar(64)" json:"role"`
	CreatedAt  time.Time  `json:"created_at"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
