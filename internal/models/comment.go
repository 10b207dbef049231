package models

import "time"

// Comment carries a direct ProjectID next to its IssueID so project-wide
// cleanup can target comments without joining through issues. It must always
// match the issue's project; the comment service copies it from the issue.
type Comment struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Description string    `gorm:"type:varchar(256);not null" json:"description"`
	ProjectID   uint64    `gorm:"not null" json:"project_id"`
	IssueID     uint64    `gorm:"not null" json:"issue_id"`
	AuthorID    uint64    `gorm:"not null" json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Issue   Issue   `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
	Author  User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
