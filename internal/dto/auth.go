package dto

// RegisterUserRequest defines the data needed to register an API user.
type RegisterUserRequest struct {
	OrgID    string `json:"orgID" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userID"`
	OrgID  string `json:"orgID"`
}

// UserResponse defines the data returned for an API user.
type UserResponse struct {
	UserID string `json:"userID"`
	OrgID  string `json:"orgID"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
