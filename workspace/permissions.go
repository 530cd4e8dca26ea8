package workspace

import "sort"

// Permission is one capability on a single workspace.
type Permission string

const (
	PermissionViewBucketCredentials Permission = "VIEW_BUCKET_CREDENTIALS"
	PermissionViewMembers           Permission = "VIEW_MEMBERS"
	PermissionViewBuckets           Permission = "VIEW_BUCKETS"
	PermissionViewDatabases         Permission = "VIEW_DATABASES"
	PermissionManageMembers         Permission = "MANAGE_MEMBERS"
	PermissionManageBuckets         Permission = "MANAGE_BUCKETS"
)

// Workspace roles as they appear in the gateway claim.
const (
	RoleAccess = "ws_access"
	RoleAdmin  = "ws_admin"
)

// rolePermissions is the fixed role table. It is enumerated in full on
// purpose: no reflection, no per-deployment configuration.
var rolePermissions = map[string][]Permission{
	RoleAccess: {
		PermissionViewBucketCredentials,
		PermissionViewMembers,
		PermissionViewBuckets,
		PermissionViewDatabases,
	},
	RoleAdmin: {
		PermissionViewBucketCredentials,
		PermissionViewMembers,
		PermissionViewBuckets,
		PermissionViewDatabases,
		PermissionManageMembers,
		PermissionManageBuckets,
	},
}

// manageImplies maps each MANAGE_* permission to the VIEW_* permission it
// implies.
var manageImplies = map[Permission]Permission{
	PermissionManageMembers: PermissionViewMembers,
	PermissionManageBuckets: PermissionViewBuckets,
}

// WorkspaceUser is the request-scoped identity: a user name and the
// permission set derived for exactly one workspace. It is built fresh per
// request and never persisted.
type WorkspaceUser struct {
	Name        string
	permissions map[Permission]bool
}

// Has reports whether the user holds the permission on the workspace the
// user was mapped for.
func (u *WorkspaceUser) Has(p Permission) bool {
	return u.permissions[p]
}

// Permissions returns the sorted permission list, for logging and debugging.
func (u *WorkspaceUser) Permissions() []Permission {
	ps := make([]Permission, 0, len(u.permissions))
	for p := range u.permissions {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
	return ps
}

// IdentityClaim is the pre-validated claim forwarded by the gateway. No
// signature or expiry check happens here; the gateway already did both.
type IdentityClaim struct {
	PreferredUsername string `json:"preferred_username"`
	// WorkspaceRoles maps workspace object names to role lists.
	WorkspaceRoles map[string][]string `json:"workspace_roles"`
}

// NewUser builds a WorkspaceUser from an explicit permission list. Holding a
// MANAGE_* permission implies the corresponding VIEW_*, even when it was not
// granted independently.
func NewUser(name string, perms ...Permission) *WorkspaceUser {
	user := &WorkspaceUser{
		Name:        name,
		permissions: map[Permission]bool{},
	}
	for _, p := range perms {
		user.permissions[p] = true
	}
	for manage, view := range manageImplies {
		if user.permissions[manage] {
			user.permissions[view] = true
		}
	}
	return user
}

// MapClaim derives the WorkspaceUser for one target workspace from the
// claim. A claim without any role on the workspace yields a user with an
// empty permission set, not an error; mutation entry points then refuse with
// ErrForbidden.
func MapClaim(claim *IdentityClaim, workspaceName string) *WorkspaceUser {
	var perms []Permission
	for _, role := range claim.WorkspaceRoles[workspaceName] {
		perms = append(perms, rolePermissions[role]...)
	}
	return NewUser(claim.PreferredUsername, perms...)
}

// LocalUser returns a synthetic user holding every permission. Only the
// explicit `authMode: no` development configuration may use it; a missing or
// malformed claim never does.
func LocalUser() *WorkspaceUser {
	return NewUser("local", rolePermissions[RoleAdmin]...)
}
