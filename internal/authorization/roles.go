package authorization

import "strings"

// UserRole is the role claim carried by access tokens.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
	RoleUser   UserRole = "user"
)

type Permission string

const (
	PermissionGeneratePages     Permission = "generate_pages"
	PermissionManagePages       Permission = "manage_pages"
	PermissionViewGenerations   Permission = "view_generations"
	PermissionManageAIProviders Permission = "manage_ai_providers"
)

var rolePermissions = map[UserRole]map[Permission]struct{}{
	RoleAdmin: {
		PermissionGeneratePages:     {},
		PermissionManagePages:       {},
		PermissionViewGenerations:   {},
		PermissionManageAIProviders: {},
	},
	RoleEditor: {
		PermissionGeneratePages:   {},
		PermissionManagePages:     {},
		PermissionViewGenerations: {},
	},
	RoleUser: {
		PermissionGeneratePages: {},
	},
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

func RoleHasPermission(role UserRole, permission Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = perms[permission]
	return ok
}

// ParseUserRole accepts the role forms found in token claims and gin contexts.
func ParseUserRole(value interface{}) (UserRole, bool) {
	var raw string
	switch v := value.(type) {
	case UserRole:
		raw = string(v)
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return "", false
	}
	role := UserRole(strings.ToLower(strings.TrimSpace(raw)))
	if !role.IsValid() {
		return "", false
	}
	return role, true
}
