package models

import "time"

type ProjectType string

const (
	ProjectTypeBackEnd  ProjectType = "back-end"
	ProjectTypeFrontEnd ProjectType = "front-end"
	ProjectTypeIOS      ProjectType = "iOS"
	ProjectTypeAndroid  ProjectType = "Android"
)

var projectTypes = []string{
	string(ProjectTypeBackEnd),
	string(ProjectTypeFrontEnd),
	string(ProjectTypeIOS),
	string(ProjectTypeAndroid),
}

// ParseProjectType normalizes a project type, accepting any casing.
func ParseProjectType(value string) (ProjectType, error) {
	canonical, err := parseChoice("type", value, projectTypes)
	if err != nil {
		return "", err
	}
	return ProjectType(canonical), nil
}

type Project struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	Title       string      `gorm:"type:varchar(64);not null" json:"title"`
	Description string      `gorm:"type:varchar(256)" json:"description"`
	Type        ProjectType `gorm:"type:varchar(16);not null" json:"type"`
	AuthorID    uint64      `gorm:"not null" json:"author_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Relations
	Author       User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Contributors []Contributor `gorm:"foreignKey:ProjectID" json:"contributors,omitempty"`
	Issues       []Issue       `gorm:"foreignKey:ProjectID" json:"issues,omitempty"`
}
