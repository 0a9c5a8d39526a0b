package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/frontdesk/internal/persistence"
)

// RoleService manages roles, their permission matrix and membership.
// Membership is the store's single user -> role assignment; both the role's
// member list and a user's role are read from it.
type RoleService struct {
	store       RoleStore
	idGenerator func() string
	logger      *slog.Logger
}

// NewRoleService constructs a role service.
func NewRoleService(store RoleStore, idGenerator func() string) *RoleService {
	return NewRoleServiceWithLogger(store, idGenerator, nil)
}

// NewRoleServiceWithLogger constructs a role service with a specified logger.
func NewRoleServiceWithLogger(store RoleStore, idGenerator func() string, logger *slog.Logger) *RoleService {
	if idGenerator == nil {
		idGenerator = NewUUID
	}
	return &RoleService{store: store, idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *RoleService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoleService", operation, attrs...)
}

// CreateRole adds a role. Without explicit permissions every action starts
// denied.
func (s *RoleService) CreateRole(ctx context.Context, input RoleInput) (role persistence.Role, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("RoleService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateRole", "role_name", input.Name)
	defer func() {
		logOutcome(ctx, logger, err, "failed to create role", "role created", "role_id", role.ID)
	}()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		err = fieldError("name", "role name cannot be empty")
		return
	}

	permissions := persistence.EmptyPermissions()
	for module, actions := range input.Permissions {
		for action, allowed := range actions {
			if !persistence.Supports(module, action) {
				err = fieldError("permissions", fmt.Sprintf("%s does not support %s", module, action))
				return
			}
			permissions[module][action] = allowed
		}
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = "Newly created role."
	}
	candidate := persistence.Role{
		ID:          s.idGenerator(),
		Name:        name,
		Description: description,
		Permissions: permissions,
	}
	if err = mapStoreError(s.store.AddRole(ctx, candidate)); err != nil {
		return
	}
	role = candidate
	return
}

// DeleteRole removes a role; its members are left without a role.
func (s *RoleService) DeleteRole(ctx context.Context, roleID string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("RoleService is not configured")
	}
	logger := s.loggerWith(ctx, "DeleteRole", "role_id", roleID)
	err := mapStoreError(s.store.RemoveRole(ctx, roleID))
	logOutcome(ctx, logger, err, "failed to delete role", "role deleted")
	return err
}

// UpdatePermissions sets the given actions on module. Actions the module
// does not define are rejected.
func (s *RoleService) UpdatePermissions(ctx context.Context, roleID string, module persistence.PermissionModule, changes map[persistence.PermissionAction]bool) (role persistence.Role, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("RoleService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdatePermissions", "role_id", roleID, "module", string(module))
	defer func() {
		logOutcome(ctx, logger, err, "failed to update permissions", "permissions updated")
	}()

	if _, ok := persistence.ModuleActions[module]; !ok {
		err = fieldError("module", "unknown permission module")
		return
	}
	for action := range changes {
		if !persistence.Supports(module, action) {
			err = fieldError(string(action), "action not supported by module")
			return
		}
	}

	var current persistence.Role
	current, err = s.store.GetRole(ctx, roleID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	next := current
	next.Permissions = current.Permissions.Clone()
	if next.Permissions == nil {
		next.Permissions = persistence.EmptyPermissions()
	}
	if next.Permissions[module] == nil {
		next.Permissions[module] = make(map[persistence.PermissionAction]bool)
	}
	for action, allowed := range changes {
		next.Permissions[module][action] = allowed
	}

	if err = mapStoreError(s.store.UpdateRole(ctx, next)); err != nil {
		return
	}
	role = next
	return
}

// SetModule grants or revokes every action of module at once.
func (s *RoleService) SetModule(ctx context.Context, roleID string, module persistence.PermissionModule, allowed bool) (persistence.Role, error) {
	changes := make(map[persistence.PermissionAction]bool)
	for _, action := range persistence.ModuleActions[module] {
		changes[action] = allowed
	}
	return s.UpdatePermissions(ctx, roleID, module, changes)
}

// AssignUser moves a user into the role.
func (s *RoleService) AssignUser(ctx context.Context, roleID, userID string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("RoleService is not configured")
	}
	logger := s.loggerWith(ctx, "AssignUser", "role_id", roleID, "user_id", userID)
	err := mapStoreError(s.store.AssignUserToRole(ctx, roleID, userID))
	logOutcome(ctx, logger, err, "failed to assign user", "user assigned")
	return err
}

// RemoveUser takes a user out of the role.
func (s *RoleService) RemoveUser(ctx context.Context, roleID, userID string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("RoleService is not configured")
	}
	logger := s.loggerWith(ctx, "RemoveUser", "role_id", roleID, "user_id", userID)
	err := mapStoreError(s.store.RemoveUserFromRole(ctx, roleID, userID))
	logOutcome(ctx, logger, err, "failed to remove user", "user removed")
	return err
}

// Members lists the users holding the role.
func (s *RoleService) Members(ctx context.Context, roleID string) ([]persistence.User, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("RoleService is not configured")
	}
	members, err := s.store.RoleMembers(ctx, roleID)
	return members, mapStoreError(err)
}

// UsersNotInRole lists the users that could be assigned to the role.
func (s *RoleService) UsersNotInRole(ctx context.Context, roleID string) ([]persistence.User, error) {
	members, err := s.Members(ctx, roleID)
	if err != nil {
		return nil, err
	}
	inRole := make(map[string]struct{}, len(members))
	for _, member := range members {
		inRole[member.ID] = struct{}{}
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	var out []persistence.User
	for _, user := range users {
		if _, ok := inRole[user.ID]; !ok {
			out = append(out, user)
		}
	}
	return out, nil
}

// Roles lists every role with its member count.
func (s *RoleService) Roles(ctx context.Context) ([]RoleSummary, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("RoleService is not configured")
	}
	roles, err := s.store.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RoleSummary, 0, len(roles))
	for _, role := range roles {
		members, err := s.store.RoleMembers(ctx, role.ID)
		if err != nil {
			return nil, mapStoreError(err)
		}
		out = append(out, RoleSummary{Role: role, MemberCount: len(members)})
	}
	return out, nil
}

// RoleSummary is a role as shown on the roles screen.
type RoleSummary struct {
	Role        persistence.Role
	MemberCount int
}
