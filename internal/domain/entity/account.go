package entity

import "time"

type Role string

const (
	RoleTenant    Role = "TENANT"
	RoleLandlord  Role = "LANDLORD"
	RoleAdmin     Role = "ADMIN"
	RoleTourGuide Role = "TOUR_GUIDE"
	RoleStaff     Role = "STAFF"
)

type StaffPosition string

const (
	PositionComplianceOfficer   StaffPosition = "COMPLIANCE_OFFICER"
	PositionOperationsManager   StaffPosition = "OPERATIONS_MANAGER"
	PositionFinancialController StaffPosition = "FINANCIAL_CONTROLLER"
	PositionSupportLead         StaffPosition = "SUPPORT_LEAD"
)

func (p StaffPosition) Valid() bool {
	switch p {
	case PositionComplianceOfficer, PositionOperationsManager, PositionFinancialController, PositionSupportLead:
		return true
	}
	return false
}

const (
	AccountStatusActive    = "ACTIVE"
	AccountStatusSuspended = "SUSPENDED"
	AccountStatusPending   = "PENDING"
)

type Account struct {
	ID       string        `json:"id" firestore:"id"`
	Name     string        `json:"name" firestore:"name"`
	Email    string        `json:"email" firestore:"email"`
	Role     Role          `json:"role" firestore:"role"`
	Position StaffPosition `json:"position,omitempty" firestore:"position,omitempty"` // staff only
	PinHash  string        `json:"-" firestore:"pinHash"`
	Status   string        `json:"status" firestore:"status"`
	JoinedAt time.Time     `json:"joined_at" firestore:"joinedAt"`
}

func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// Actor converts the account into its role-specific variant. Accounts with
// an unknown role yield nil.
func (a *Account) Actor() Actor {
	party := Party{ID: a.ID, Name: a.Name}
	switch a.Role {
	case RoleTenant:
		return Renter{Party: party}
	case RoleLandlord:
		return Owner{Party: party}
	case RoleAdmin:
		return Administrator{Party: party}
	case RoleStaff:
		return Staff{Party: party, Position: a.Position}
	case RoleTourGuide:
		return FieldAgent{Party: party}
	}
	return nil
}
