package persistence

import "github.com/shopspring/decimal"

// RoomStatus describes the housekeeping state recorded on a room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomCleaning    RoomStatus = "Cleaning"
	RoomMaintenance RoomStatus = "Maintenance"
)

// RoomStatuses lists every room status in display order.
var RoomStatuses = []RoomStatus{RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance}

// RoomType is the sellable category of a room.
type RoomType string

const (
	RoomStandard   RoomType = "Standard"
	RoomSuperior   RoomType = "Superior"
	RoomDeluxe     RoomType = "Deluxe"
	RoomConnecting RoomType = "Connecting"
)

// RoomTypes lists every room type in display order.
var RoomTypes = []RoomType{RoomStandard, RoomSuperior, RoomDeluxe, RoomConnecting}

// BedType describes the bed configuration of a room.
type BedType string

const (
	BedKing   BedType = "King Bed"
	BedQueen  BedType = "Queen Bed"
	BedTwin   BedType = "Twin Bed"
	BedSingle BedType = "Single Bed"
)

// Room is a physical room in the hotel inventory.
type Room struct {
	ID            string
	RoomCode      string
	Floor         string
	FloorAndView  string
	Type          RoomType
	BedType       BedType
	Price         decimal.Decimal
	Status        RoomStatus
	MaxOccupancy  int
	Description   string
	InternalNotes string
}

// BookingStatus is the lifecycle state of a single room stay.
type BookingStatus string

const (
	BookingPending    BookingStatus = "Pending"
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingCheckedIn  BookingStatus = "Checked-In"
	BookingCheckedOut BookingStatus = "Checked-Out"
	BookingCancelled  BookingStatus = "Cancelled"
)

// BookingStatuses lists every booking status in display order.
var BookingStatuses = []BookingStatus{BookingConfirmed, BookingPending, BookingCheckedIn, BookingCheckedOut, BookingCancelled}

// Active reports whether the status claims its room.
func (s BookingStatus) Active() bool {
	return s == BookingConfirmed || s == BookingCheckedIn
}

// RoomStay is one room's occupancy record within a booking. RoomNumber holds
// the room code, not the room id.
type RoomStay struct {
	RoomNumber    string
	BookingStatus BookingStatus
}

type (
	PaymentStatus  string
	EmailStatus    string
	Gender         string
	GuestType      string
	TM30Status     string
	CustomerStatus string
	ActivityStatus string
)

const (
	PaymentPaid        PaymentStatus = "Paid"
	PaymentPending     PaymentStatus = "Pending"
	PaymentDepositPaid PaymentStatus = "Deposit Paid"

	EmailSent    EmailStatus = "Sent"
	EmailNotSent EmailStatus = "Not Sent"

	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"

	GuestAdult  GuestType = "Adult"
	GuestChild  GuestType = "Child"
	GuestInfant GuestType = "Infant"

	TM30Pending      TM30Status = "Pending Submission"
	TM30Submitted    TM30Status = "Submitted"
	TM30Acknowledged TM30Status = "Acknowledged"

	CustomerRegular     CustomerStatus = "Regular"
	CustomerVIP         CustomerStatus = "VIP"
	CustomerBlacklisted CustomerStatus = "Blacklisted"

	ActivityActive   ActivityStatus = "Active"
	ActivityInactive ActivityStatus = "Inactive"
)

// Guest is an accompanying traveler nested inside a booking.
type Guest struct {
	ID                string
	Name              string
	PassportID        string
	Nationality       string
	Gender            Gender
	DOB               string
	Phone             string
	GuestType         GuestType
	DateOfArrival     string
	VisaType          string
	PortOfEntry       string
	ArrivalCardNumber string
	ExpireDateOfStay  string
	Relationship      string
	Occupation        string
	CurrentAddress    string
	ArrivingFrom      string
	GoingTo           string
	IssuedBy          string
	Remarks           string
}

// Customer is a single booking transaction. The same person appears once per
// booking and is only linked across bookings by Email.
type Customer struct {
	ID                string
	BookingID         string
	FullName          string
	Email             string
	PassportID        string
	Nationality       string
	Gender            Gender
	DOB               string
	Phone             string
	GuestType         GuestType
	CustomerStatus    CustomerStatus
	ActivityStatus    ActivityStatus
	CurrentAddress    string
	CheckInDate       string
	CheckOutDate      string
	RoomStays         []RoomStay
	PaymentStatus     PaymentStatus
	EmailStatus       EmailStatus
	Adults            int
	Children          int
	GuestList         []Guest
	TotalPrice        decimal.Decimal
	VisaType          string
	ExpireDateOfStay  string
	PortOfEntry       string
	ArrivalCardNumber string
	Relationship      string
	TM30Status        TM30Status
	Occupation        string
	ArrivingFrom      string
	GoingTo           string
	IssuedBy          string
	Remarks           string
}

// UserStatus describes the lifecycle of an administrative account.
type UserStatus string

const (
	UserActive        UserStatus = "Active"
	UserPendingInvite UserStatus = "Pending Invite"
	UserInactive      UserStatus = "Inactive"
)

// User is an administrative account. Role assignment lives in the store, not
// on the user.
type User struct {
	ID           string
	Name         string
	Email        string
	Status       UserStatus
	LastLogin    string
	PasswordHash string
}

// PermissionModule names a screen guarded by role permissions.
type PermissionModule string

const (
	ModuleBookingManagement   PermissionModule = "bookingManagement"
	ModuleRoomManagement      PermissionModule = "roomManagement"
	ModuleCustomerList        PermissionModule = "customerList"
	ModuleTM30Verification    PermissionModule = "tm30Verification"
	ModuleRolesAndPermissions PermissionModule = "rolesAndPermissions"
)

// PermissionAction names an operation within a module.
type PermissionAction string

const (
	ActionView       PermissionAction = "view"
	ActionCreate     PermissionAction = "create"
	ActionEdit       PermissionAction = "edit"
	ActionDelete     PermissionAction = "delete"
	ActionEditStatus PermissionAction = "editStatus"
	ActionSubmit     PermissionAction = "submit"
	ActionVerify     PermissionAction = "verify"
	ActionExport     PermissionAction = "export"
)

// PermissionModules lists the guarded screens in display order.
var PermissionModules = []PermissionModule{
	ModuleBookingManagement,
	ModuleRoomManagement,
	ModuleCustomerList,
	ModuleTM30Verification,
	ModuleRolesAndPermissions,
}

// ModuleActions lists the actions each module supports.
var ModuleActions = map[PermissionModule][]PermissionAction{
	ModuleBookingManagement:   {ActionView, ActionCreate, ActionEdit, ActionDelete},
	ModuleRoomManagement:      {ActionView, ActionCreate, ActionEdit, ActionDelete, ActionEditStatus},
	ModuleCustomerList:        {ActionView, ActionCreate, ActionEdit, ActionDelete, ActionExport},
	ModuleTM30Verification:    {ActionView, ActionSubmit, ActionVerify},
	ModuleRolesAndPermissions: {ActionView, ActionCreate, ActionEdit, ActionDelete},
}

// EmptyPermissions returns a matrix with every supported action denied.
func EmptyPermissions() Permissions {
	out := make(Permissions, len(ModuleActions))
	for module, actions := range ModuleActions {
		row := make(map[PermissionAction]bool, len(actions))
		for _, action := range actions {
			row[action] = false
		}
		out[module] = row
	}
	return out
}

// Supports reports whether action is defined for module.
func Supports(module PermissionModule, action PermissionAction) bool {
	for _, candidate := range ModuleActions[module] {
		if candidate == action {
			return true
		}
	}
	return false
}

// Permissions is the module -> action matrix held by a role.
type Permissions map[PermissionModule]map[PermissionAction]bool

// Allows reports whether the matrix grants action on module.
func (p Permissions) Allows(module PermissionModule, action PermissionAction) bool {
	return p[module][action]
}

// Clone returns a deep copy of the matrix.
func (p Permissions) Clone() Permissions {
	if p == nil {
		return nil
	}
	out := make(Permissions, len(p))
	for module, actions := range p {
		copied := make(map[PermissionAction]bool, len(actions))
		for action, allowed := range actions {
			copied[action] = allowed
		}
		out[module] = copied
	}
	return out
}

// Role is a named permission bundle. Members are derived from the store's
// assignments and are never stored on the role itself.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions Permissions
}

// ApprovalStatus tracks a self-registration request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// PendingApproval is a self-registration request awaiting a role grant.
type PendingApproval struct {
	ID            string
	UserName      string
	Email         string
	RequestedRole string
	DateApplied   string
	Status        ApprovalStatus
}

// Snapshot is a consistent copy of the booking-related collections used by
// projections.
type Snapshot struct {
	Revision  uint64
	Rooms     []Room
	Customers []Customer
}
