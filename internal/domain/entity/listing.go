package entity

const (
	ListingStatusActive   = "ACTIVE"
	ListingStatusPending  = "PENDING"
	ListingStatusArchived = "ARCHIVED"
)

type Listing struct {
	ID              string   `json:"id" firestore:"id"`
	OwnerID         string   `json:"owner_id" firestore:"ownerId"`
	Title           string   `json:"title" firestore:"title"`
	Description     string   `json:"description,omitempty" firestore:"description,omitempty"`
	Category        string   `json:"category" firestore:"category"` // RESIDENTIAL, COMMERCIAL, EVENT_CENTER, LAND, SHORTLET
	Address         string   `json:"address" firestore:"address"`
	Price           float64  `json:"price" firestore:"price"`
	Features        []string `json:"features,omitempty" firestore:"features,omitempty"`
	Status          string   `json:"status" firestore:"status"` // ACTIVE, PENDING, ARCHIVED
	AssignedAgentID string   `json:"assigned_agent_id,omitempty" firestore:"assignedAgentId,omitempty"`
	IsVerified      bool     `json:"is_verified" firestore:"isVerified"`
}
