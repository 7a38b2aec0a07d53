package entity

import "time"

type LeaseStatus string

const (
	LeaseSignedByLandlord LeaseStatus = "SIGNED_BY_LANDLORD"
	LeasePendingAdmin     LeaseStatus = "PENDING_ADMIN"
	LeaseFullySigned      LeaseStatus = "FULLY_SIGNED"
)

// Rank orders statuses along the signing path. Unknown statuses rank -1.
func (s LeaseStatus) Rank() int {
	switch s {
	case LeaseSignedByLandlord:
		return 0
	case LeasePendingAdmin:
		return 1
	case LeaseFullySigned:
		return 2
	}
	return -1
}

func (s LeaseStatus) Valid() bool {
	return s.Rank() >= 0
}

type PartyRef struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name" firestore:"name"`
}

type Lease struct {
	ID             string      `json:"id" firestore:"id"`
	Property       PartyRef    `json:"property" firestore:"property"`
	Tenant         PartyRef    `json:"tenant" firestore:"tenant"`
	Landlord       PartyRef    `json:"landlord" firestore:"landlord"`
	Content        string      `json:"content" firestore:"content"`
	Status         LeaseStatus `json:"status" firestore:"status"`
	CreatedAt      time.Time   `json:"created_at" firestore:"createdAt"`
	TenantSignedAt *time.Time  `json:"tenant_signed_at,omitempty" firestore:"tenantSignedAt,omitempty"`
	AdminSignature string      `json:"admin_signature,omitempty" firestore:"adminSignature,omitempty"`
	AdminSignedAt  *time.Time  `json:"admin_signed_at,omitempty" firestore:"adminSignedAt,omitempty"`
}

// Clone returns a copy that shares no pointers with l.
func (l Lease) Clone() Lease {
	out := l
	if l.TenantSignedAt != nil {
		t := *l.TenantSignedAt
		out.TenantSignedAt = &t
	}
	if l.AdminSignedAt != nil {
		t := *l.AdminSignedAt
		out.AdminSignedAt = &t
	}
	return out
}
