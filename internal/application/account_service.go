package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/frontdesk/internal/persistence"
)

// NeverLoggedIn is the last-login value of accounts that have not signed in.
const NeverLoggedIn = "Never"

const lastLoginLayout = "2006-01-02 15:04"

// AccountService manages staff accounts: invitations, first password,
// password changes and self-registration approvals.
type AccountService struct {
	store       AccountStore
	idGenerator func() string
	now         func() time.Time
	params      Argon2idParams
	logger      *slog.Logger
}

// NewAccountService constructs an account service with the provided dependencies.
func NewAccountService(store AccountStore, idGenerator func() string, now func() time.Time) *AccountService {
	return NewAccountServiceWithLogger(store, idGenerator, now, DefaultArgon2idParams, nil)
}

// NewAccountServiceWithLogger constructs an account service with explicit
// hash parameters and logger.
func NewAccountServiceWithLogger(store AccountStore, idGenerator func() string, now func() time.Time, params Argon2idParams, logger *slog.Logger) *AccountService {
	if idGenerator == nil {
		idGenerator = NewUUID
	}
	if now == nil {
		now = time.Now
	}
	if params.KeyLength == 0 {
		params = DefaultArgon2idParams
	}
	return &AccountService{store: store, idGenerator: idGenerator, now: now, params: params, logger: defaultLogger(logger)}
}

func (s *AccountService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AccountService", operation, attrs...)
}

// InviteUser creates a Pending Invite account and assigns it to a role.
func (s *AccountService) InviteUser(ctx context.Context, input InviteUserInput) (user persistence.User, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("AccountService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "InviteUser", "role_id", input.RoleID)
	defer func() {
		logOutcome(ctx, logger, err, "failed to invite user", "user invited", "user_id", user.ID)
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "full name is required")
	}
	if !validEmail(input.Email) {
		vErr.add("email", "email address is invalid")
	}
	if strings.TrimSpace(input.RoleID) == "" {
		vErr.add("role", "role is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if _, err = s.store.GetRole(ctx, input.RoleID); err != nil {
		err = mapStoreError(err)
		return
	}

	candidate := persistence.User{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Status:    persistence.UserPendingInvite,
		LastLogin: NeverLoggedIn,
	}
	if err = mapStoreError(s.store.AddUser(ctx, candidate)); err != nil {
		return
	}
	if err = mapStoreError(s.store.AssignUserToRole(ctx, input.RoleID, candidate.ID)); err != nil {
		return
	}
	user = candidate
	return
}

// ActivateAccount sets the first password of an invited account and marks
// it Active. The password must rate at least Fair.
func (s *AccountService) ActivateAccount(ctx context.Context, userID string, change PasswordChange) (user persistence.User, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("AccountService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "ActivateAccount", "user_id", userID)
	defer func() {
		logOutcome(ctx, logger, err, "failed to activate account", "account activated")
	}()

	var current persistence.User
	current, err = s.store.GetUser(ctx, userID)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	if current.Status != persistence.UserPendingInvite {
		err = fieldError("status", "account is not awaiting activation")
		return
	}

	if vErr := checkNewPassword(change, StrengthFair, "password must be at least 8 characters long"); vErr != nil {
		err = vErr
		return
	}

	next := current
	if next.PasswordHash, err = HashPassword(change.New, s.params); err != nil {
		return
	}
	next.Status = persistence.UserActive
	next.LastLogin = s.now().UTC().Format(lastLoginLayout)

	if err = mapStoreError(s.store.UpdateUser(ctx, next)); err != nil {
		return
	}
	user = next
	return
}

// ChangePassword replaces the password of an active account after checking
// the current one. The new password must rate at least Good.
func (s *AccountService) ChangePassword(ctx context.Context, userID string, change PasswordChange) (err error) {
	if s == nil || s.store == nil {
		return fmt.Errorf("AccountService is not configured")
	}

	logger := s.loggerWith(ctx, "ChangePassword", "user_id", userID)
	defer func() {
		logOutcome(ctx, logger, err, "failed to change password", "password changed")
	}()

	var current persistence.User
	current, err = s.store.GetUser(ctx, userID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	if vErr := checkNewPassword(change, StrengthGood, "new password is not strong enough"); vErr != nil {
		err = vErr
		return
	}
	if current.PasswordHash == "" {
		err = ErrInvalidCredentials
		return
	}
	if err = VerifyPassword(current.PasswordHash, change.Current); err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			err = fmt.Errorf("stored hash: %w", err)
		}
		return
	}

	next := current
	if next.PasswordHash, err = HashPassword(change.New, s.params); err != nil {
		return
	}
	err = mapStoreError(s.store.UpdateUser(ctx, next))
	return
}

func checkNewPassword(change PasswordChange, minimum Strength, weakMessage string) *ValidationError {
	if change.New != change.Confirm {
		return fieldError("confirm", "passwords do not match")
	}
	if PasswordStrength(change.New) < minimum {
		return fieldError("password", weakMessage)
	}
	return nil
}

// SetUserStatus changes the lifecycle status of an account.
func (s *AccountService) SetUserStatus(ctx context.Context, userID string, status persistence.UserStatus) (user persistence.User, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("AccountService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "SetUserStatus", "user_id", userID, "status", string(status))
	defer func() {
		logOutcome(ctx, logger, err, "failed to change user status", "user status changed")
	}()

	var current persistence.User
	current, err = s.store.GetUser(ctx, userID)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	next := current
	if vErr := setEnum("status", string(status), &next.Status, persistence.UserActive, persistence.UserPendingInvite, persistence.UserInactive); vErr != nil {
		err = vErr
		return
	}
	if err = mapStoreError(s.store.UpdateUser(ctx, next)); err != nil {
		return
	}
	user = next
	return
}

// ApprovePending turns a self-registration request into an Active account
// holding the requested role and removes the request.
func (s *AccountService) ApprovePending(ctx context.Context, approvalID string) (user persistence.User, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("AccountService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "ApprovePending", "approval_id", approvalID)
	defer func() {
		logOutcome(ctx, logger, err, "failed to approve request", "request approved", "user_id", user.ID)
	}()

	var approval persistence.PendingApproval
	approval, err = s.store.GetPendingApproval(ctx, approvalID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	var role persistence.Role
	role, err = s.store.RoleByName(ctx, approval.RequestedRole)
	if err != nil {
		err = fmt.Errorf("role %q: %w", approval.RequestedRole, mapStoreError(err))
		return
	}

	candidate := persistence.User{
		ID:        s.idGenerator(),
		Name:      approval.UserName,
		Email:     approval.Email,
		Status:    persistence.UserActive,
		LastLogin: NeverLoggedIn,
	}
	if err = mapStoreError(s.store.AddUser(ctx, candidate)); err != nil {
		return
	}
	if err = mapStoreError(s.store.AssignUserToRole(ctx, role.ID, candidate.ID)); err != nil {
		return
	}
	if err = mapStoreError(s.store.RemovePendingApproval(ctx, approvalID)); err != nil {
		return
	}
	user = candidate
	return
}

// RejectPending discards a self-registration request.
func (s *AccountService) RejectPending(ctx context.Context, approvalID string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("AccountService is not configured")
	}

	logger := s.loggerWith(ctx, "RejectPending", "approval_id", approvalID)
	err := mapStoreError(s.store.RemovePendingApproval(ctx, approvalID))
	logOutcome(ctx, logger, err, "failed to reject request", "request rejected")
	return err
}
