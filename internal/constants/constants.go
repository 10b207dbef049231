package constants

import "time"

// Context keys
const (
	ContextKeyUserID     = "user_id"
	ContextKeyProject    = "project"
	ContextKeyMembership = "project_membership"
	ContextKeyIssue      = "issue"
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
	AccessTokenTTL    = time.Hour
	RefreshTokenTTL   = 7 * 24 * time.Hour
)
