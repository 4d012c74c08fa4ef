package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Markup rule permissions
	PermissionMarkupRead  = "markup:read"
	PermissionMarkupWrite = "markup:write"

	// Order tracking permissions
	PermissionOrderRead  = "order:read"
	PermissionOrderWrite = "order:write"

	// User management permissions
	PermissionUserRead       = "user:read"
	PermissionUserWrite      = "user:write"
	PermissionChangePassword = "user:change-password"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionMarkupRead,
			PermissionMarkupWrite,
			PermissionOrderRead,
			PermissionOrderWrite,
			PermissionUserRead,
			PermissionUserWrite,
			PermissionChangePassword,
		}
	case RoleAgent:
		return []string{
			PermissionMarkupRead,
			PermissionOrderRead,
			PermissionOrderWrite,
			PermissionUserRead,
			PermissionChangePassword,
		}
	case RoleUser:
		return []string{
			PermissionOrderRead,
			PermissionOrderWrite,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
