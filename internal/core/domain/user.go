package domain

// User is an API user able to authenticate against the backend. Identity and
// org membership are resolved at login; every subsequent request carries the
// org in its token.
type User struct {
	UserID       string    `json:"userID"` // Primary key (UUID)
	OrgID        string    `json:"orgID"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialized
	IsActive     bool      `json:"isActive"`
	Lifecycle    Lifecycle `json:"lifecycle"`
	AuditFields
}
