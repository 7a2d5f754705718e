package users

import "time"

const (
	RoleUser      = "USER"
	RoleAppMaster = "APP_MASTER"
)

type User struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	PasswordHash           string    `json:"-"`
	Role                   string    `json:"role"`
	HasCompletedOnboarding bool      `json:"hasCompletedOnboarding"`
	WorkspaceName          string    `json:"workspaceName"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}
