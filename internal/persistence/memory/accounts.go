package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/frontdesk/internal/persistence"
)

// --- UserRepository implementation ---

// AddUser stores a new user. Emails are unique regardless of case.
func (s *Store) AddUser(ctx context.Context, user persistence.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return fmt.Errorf("memory: user %s: %w", user.ID, persistence.ErrDuplicate)
	}
	if err := s.ensureUniqueEmailLocked(user.ID, user.Email); err != nil {
		return err
	}

	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)
	s.bumpLocked()
	return nil
}

// UpdateUser replaces an existing user.
func (s *Store) UpdateUser(ctx context.Context, user persistence.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return persistence.ErrNotFound
	}
	if err := s.ensureUniqueEmailLocked(user.ID, user.Email); err != nil {
		return err
	}

	s.users[user.ID] = user
	s.bumpLocked()
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

// UserByEmail retrieves a user by email address.
func (s *Store) UserByEmail(ctx context.Context, email string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(strings.TrimSpace(email))
	for _, id := range s.userOrder {
		if user := s.users[id]; strings.ToLower(user.Email) == lower {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers(ctx context.Context) ([]persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]persistence.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *Store) ensureUniqueEmailLocked(id, email string) error {
	lower := strings.ToLower(email)
	for existingID, user := range s.users {
		if existingID == id {
			continue
		}
		if strings.ToLower(user.Email) == lower {
			return fmt.Errorf("memory: email %s: %w", email, persistence.ErrDuplicate)
		}
	}
	return nil
}

// --- RoleRepository implementation ---

// AddRole stores a new role. Role names are unique.
func (s *Store) AddRole(ctx context.Context, role persistence.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[role.ID]; ok {
		return fmt.Errorf("memory: role %s: %w", role.ID, persistence.ErrDuplicate)
	}
	if err := s.ensureUniqueRoleNameLocked(role.ID, role.Name); err != nil {
		return err
	}

	s.roles[role.ID] = cloneRole(role)
	s.roleOrder = append(s.roleOrder, role.ID)
	s.bumpLocked()
	return nil
}

// UpdateRole replaces the name, description and permission matrix.
func (s *Store) UpdateRole(ctx context.Context, role persistence.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[role.ID]; !ok {
		return persistence.ErrNotFound
	}
	if err := s.ensureUniqueRoleNameLocked(role.ID, role.Name); err != nil {
		return err
	}

	s.roles[role.ID] = cloneRole(role)
	s.bumpLocked()
	return nil
}

// RemoveRole deletes a role and drops every assignment to it.
func (s *Store) RemoveRole(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[id]; !ok {
		return persistence.ErrNotFound
	}

	delete(s.roles, id)
	s.roleOrder = removeString(s.roleOrder, id)
	for userID, roleID := range s.assignments {
		if roleID == id {
			delete(s.assignments, userID)
		}
	}
	s.bumpLocked()
	return nil
}

// GetRole retrieves a role by ID.
func (s *Store) GetRole(ctx context.Context, id string) (persistence.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[id]
	if !ok {
		return persistence.Role{}, persistence.ErrNotFound
	}
	return cloneRole(role), nil
}

// RoleByName retrieves a role by its display name.
func (s *Store) RoleByName(ctx context.Context, name string) (persistence.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.roleOrder {
		if role := s.roles[id]; strings.EqualFold(role.Name, name) {
			return cloneRole(role), nil
		}
	}
	return persistence.Role{}, persistence.ErrNotFound
}

// ListRoles returns all roles in insertion order.
func (s *Store) ListRoles(ctx context.Context) ([]persistence.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roles := make([]persistence.Role, 0, len(s.roleOrder))
	for _, id := range s.roleOrder {
		roles = append(roles, cloneRole(s.roles[id]))
	}
	return roles, nil
}

// AssignUserToRole records the user's role. A user holds at most one role,
// so assigning moves them out of any previous role.
func (s *Store) AssignUserToRole(ctx context.Context, roleID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[roleID]; !ok {
		return persistence.ErrNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return persistence.ErrNotFound
	}
	if s.assignments[userID] == roleID {
		return nil
	}

	s.assignments[userID] = roleID
	s.bumpLocked()
	return nil
}

// RemoveUserFromRole clears the assignment when the user holds roleID.
func (s *Store) RemoveUserFromRole(ctx context.Context, roleID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.assignments[userID]; !ok || current != roleID {
		return persistence.ErrNotFound
	}

	delete(s.assignments, userID)
	s.bumpLocked()
	return nil
}

// RoleMembers lists the users assigned to the role in user insertion order.
func (s *Store) RoleMembers(ctx context.Context, roleID string) ([]persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.roles[roleID]; !ok {
		return nil, persistence.ErrNotFound
	}

	members := make([]persistence.User, 0)
	for _, id := range s.userOrder {
		if s.assignments[id] == roleID {
			members = append(members, s.users[id])
		}
	}
	return members, nil
}

// RoleOfUser returns the role assigned to the user.
func (s *Store) RoleOfUser(ctx context.Context, userID string) (persistence.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roleID, ok := s.assignments[userID]
	if !ok {
		return persistence.Role{}, persistence.ErrNotFound
	}
	return cloneRole(s.roles[roleID]), nil
}

func (s *Store) ensureUniqueRoleNameLocked(id, name string) error {
	for existingID, role := range s.roles {
		if existingID != id && strings.EqualFold(role.Name, name) {
			return fmt.Errorf("memory: role name %s: %w", name, persistence.ErrDuplicate)
		}
	}
	return nil
}

func cloneRole(role persistence.Role) persistence.Role {
	clone := role
	clone.Permissions = role.Permissions.Clone()
	return clone
}

// --- ApprovalRepository implementation ---

// AddPendingApproval stores a registration request.
func (s *Store) AddPendingApproval(ctx context.Context, approval persistence.PendingApproval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.approvals[approval.ID]; ok {
		return fmt.Errorf("memory: approval %s: %w", approval.ID, persistence.ErrDuplicate)
	}

	s.approvals[approval.ID] = approval
	s.approvalOrder = append(s.approvalOrder, approval.ID)
	s.bumpLocked()
	return nil
}

// GetPendingApproval retrieves a registration request by ID.
func (s *Store) GetPendingApproval(ctx context.Context, id string) (persistence.PendingApproval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	approval, ok := s.approvals[id]
	if !ok {
		return persistence.PendingApproval{}, persistence.ErrNotFound
	}
	return approval, nil
}

// ListPendingApprovals returns the requests in arrival order.
func (s *Store) ListPendingApprovals(ctx context.Context) ([]persistence.PendingApproval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	approvals := make([]persistence.PendingApproval, 0, len(s.approvalOrder))
	for _, id := range s.approvalOrder {
		approvals = append(approvals, s.approvals[id])
	}
	return approvals, nil
}

// RemovePendingApproval deletes a request once it is approved or rejected.
func (s *Store) RemovePendingApproval(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.approvals[id]; !ok {
		return persistence.ErrNotFound
	}

	delete(s.approvals, id)
	s.approvalOrder = removeString(s.approvalOrder, id)
	s.bumpLocked()
	return nil
}
