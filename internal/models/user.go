package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Contributions  []Contributor `gorm:"foreignKey:UserID" json:"-"`
	AuthoredIssues []Issue       `gorm:"foreignKey:AuthorID" json:"-"`
	AssignedIssues []Issue       `gorm:"foreignKey:AssigneeID" json:"-"`
	Comments       []Comment     `gorm:"foreignKey:AuthorID" json:"-"`
}
