package models

import "time"

type IssueTag string

const (
	IssueTagBug      IssueTag = "Bug"
	IssueTagRefactor IssueTag = "Refactor"
	IssueTagTodo     IssueTag = "Todo"
)

type IssuePriority string

const (
	IssuePriorityLow    IssuePriority = "Low"
	IssuePriorityMedium IssuePriority = "Medium"
	IssuePriorityHigh   IssuePriority = "High"
)

type IssueStatus string

const (
	IssueStatusToDo       IssueStatus = "ToDo"
	IssueStatusInProgress IssueStatus = "InProgress"
	IssueStatusDone       IssueStatus = "Done"
)

var (
	issueTags       = []string{string(IssueTagBug), string(IssueTagRefactor), string(IssueTagTodo)}
	issuePriorities = []string{string(IssuePriorityLow), string(IssuePriorityMedium), string(IssuePriorityHigh)}
	issueStatuses   = []string{string(IssueStatusToDo), string(IssueStatusInProgress), string(IssueStatusDone)}
)

// ParseIssueTag normalizes an issue tag, accepting any casing.
func ParseIssueTag(value string) (IssueTag, error) {
	canonical, err := parseChoice("tag", value, issueTags)
	if err != nil {
		return "", err
	}
	return IssueTag(canonical), nil
}

// ParseIssuePriority normalizes an issue priority, accepting any casing.
func ParseIssuePriority(value string) (IssuePriority, error) {
	canonical, err := parseChoice("priority", value, issuePriorities)
	if err != nil {
		return "", err
	}
	return IssuePriority(canonical), nil
}

// ParseIssueStatus normalizes an issue status, accepting any casing.
func ParseIssueStatus(value string) (IssueStatus, error) {
	canonical, err := parseChoice("status", value, issueStatuses)
	if err != nil {
		return "", err
	}
	return IssueStatus(canonical), nil
}

type Issue struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	Title       string        `gorm:"type:varchar(64);not null" json:"title"`
	Description string        `gorm:"type:varchar(256)" json:"description"`
	Tag         IssueTag      `gorm:"type:varchar(16);not null" json:"tag"`
	Priority    IssuePriority `gorm:"type:varchar(16);not null" json:"priority"`
	Status      IssueStatus   `gorm:"type:varchar(16);not null;default:'ToDo'" json:"status"`
	ProjectID   uint64        `gorm:"not null" json:"project_id"`
	AuthorID    uint64        `gorm:"not null" json:"author_id"`
	AssigneeID  uint64        `gorm:"not null" json:"assignee_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Project  Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Assignee User      `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Comments []Comment `gorm:"foreignKey:IssueID" json:"comments,omitempty"`
}
