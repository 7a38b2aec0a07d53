package entity

// Party is the identity every actor variant carries.
type Party struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (p Party) PartyID() string     { return p.ID }
func (p Party) DisplayName() string { return p.Name }

// Actor is a party acting in one of the five marketplace roles. The
// concrete type decides what the actor may do; callers switch on it rather
// than on a role string.
type Actor interface {
	PartyID() string
	DisplayName() string
	Role() Role
}

type Renter struct{ Party }

type Owner struct{ Party }

type Administrator struct{ Party }

type Staff struct {
	Party
	Position StaffPosition
}

type FieldAgent struct{ Party }

func (Renter) Role() Role        { return RoleTenant }
func (Owner) Role() Role         { return RoleLandlord }
func (Administrator) Role() Role { return RoleAdmin }
func (Staff) Role() Role         { return RoleStaff }
func (FieldAgent) Role() Role    { return RoleTourGuide }

// IsPlatformOperator reports whether the actor speaks for the platform
// (administrators and internal staff).
func IsPlatformOperator(a Actor) bool {
	switch a.(type) {
	case Administrator, Staff:
		return true
	}
	return false
}
