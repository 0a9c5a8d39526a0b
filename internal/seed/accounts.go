package seed

import (
	"fmt"
	"time"

	"github.com/example/frontdesk/internal/dates"
	"github.com/example/frontdesk/internal/persistence"
)

// TotalUsers is the number of seeded staff accounts.
const TotalUsers = 20

const (
	roleSuperAdmin   = "ROLE_SUPER_ADMIN"
	roleManager      = "ROLE_MANAGER"
	roleReceptionist = "ROLE_RECEPTIONIST"
	roleCleaner      = "ROLE_CLEANER"
	roleAccountant   = "ROLE_ACCOUNTANT"
)

var (
	firstNames = []string{"John", "Jane", "Alex", "Emily", "Chris", "Katie", "Michael", "Sarah", "David", "Laura", "James", "Linda", "Robert", "Patricia"}
	lastNames  = []string{"Smith", "Doe", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Wilson", "Moore"}
)

// Assignment places a user in a role.
type Assignment struct {
	RoleID string
	UserID string
}

func buildUsers(now time.Time) ([]persistence.User, []Assignment) {
	const layout = "2006-01-02 15:04"
	morning := time.Date(now.Year(), now.Month(), now.Day(), 9, 41, 0, 0, time.UTC)

	users := []persistence.User{{
		ID:        "U100",
		Name:      "Admin User",
		Email:     "admin@horizon.com",
		Status:    persistence.UserActive,
		LastLogin: morning.Format(layout),
	}}
	assignments := []Assignment{{RoleID: roleSuperAdmin, UserID: "U100"}}

	statuses := []persistence.UserStatus{persistence.UserActive, persistence.UserPendingInvite, persistence.UserInactive}
	roles := []string{roleManager, roleReceptionist, roleCleaner, roleAccountant}

	for i := 0; len(users) < TotalUsers; i++ {
		status := statuses[i%len(statuses)]
		lastLogin := "Never"
		if status == persistence.UserActive {
			lastLogin = morning.AddDate(0, 0, -(i%3 + 1)).Format(layout)
		}
		user := persistence.User{
			ID:        fmt.Sprintf("U%d", 101+i),
			Name:      firstNames[i%len(firstNames)] + " " + lastNames[i%len(lastNames)],
			Email:     fmt.Sprintf("user%d@hotel.com", i+1),
			Status:    status,
			LastLogin: lastLogin,
		}
		users = append(users, user)
		assignments = append(assignments, Assignment{RoleID: roles[i%len(roles)], UserID: user.ID})
	}
	return users, assignments
}

func grant(p persistence.Permissions, module persistence.PermissionModule, actions ...persistence.PermissionAction) {
	for _, action := range actions {
		p[module][action] = true
	}
}

func grantAll(p persistence.Permissions) {
	for module, actions := range persistence.ModuleActions {
		grant(p, module, actions...)
	}
}

func buildRoles() []persistence.Role {
	superAdmin := persistence.EmptyPermissions()
	grantAll(superAdmin)

	manager := persistence.EmptyPermissions()
	grantAll(manager)

	receptionist := persistence.EmptyPermissions()
	grant(receptionist, persistence.ModuleBookingManagement, persistence.ActionView, persistence.ActionCreate, persistence.ActionEdit)
	grant(receptionist, persistence.ModuleRoomManagement, persistence.ActionView)
	grant(receptionist, persistence.ModuleCustomerList, persistence.ActionView, persistence.ActionCreate, persistence.ActionEdit)
	grant(receptionist, persistence.ModuleTM30Verification, persistence.ActionView, persistence.ActionSubmit)

	cleaner := persistence.EmptyPermissions()
	grant(cleaner, persistence.ModuleRoomManagement, persistence.ActionView, persistence.ActionEditStatus)

	accountant := persistence.EmptyPermissions()
	grant(accountant, persistence.ModuleBookingManagement, persistence.ActionView)
	grant(accountant, persistence.ModuleCustomerList, persistence.ActionView, persistence.ActionExport)

	return []persistence.Role{
		{ID: roleSuperAdmin, Name: "Super Admin", Description: "Has god-mode access to everything.", Permissions: superAdmin},
		{ID: roleManager, Name: "Manager", Description: "Has full access to all system features.", Permissions: manager},
		{ID: roleReceptionist, Name: "Receptionist", Description: "Handles bookings, customers, and TM.30 submissions.", Permissions: receptionist},
		{ID: roleCleaner, Name: "Cleaner", Description: "Can view rooms and update their cleaning status.", Permissions: cleaner},
		{ID: roleAccountant, Name: "Accountant", Description: "Views booking data for financial reporting.", Permissions: accountant},
	}
}

func buildApprovals(today string) []persistence.PendingApproval {
	return []persistence.PendingApproval{
		{ID: "PA1", UserName: "Sarah Conner", Email: "s.conner@test.com", RequestedRole: "Receptionist", DateApplied: dates.AddDays(today, -1), Status: persistence.ApprovalPending},
		{ID: "PA2", UserName: "John Doe", Email: "j.doe@example.net", RequestedRole: "Manager", DateApplied: dates.AddDays(today, -2), Status: persistence.ApprovalPending},
		{ID: "PA3", UserName: "Peter Jones", Email: "p.jones@web.co", RequestedRole: "Cleaner", DateApplied: dates.AddDays(today, -2), Status: persistence.ApprovalPending},
	}
}
