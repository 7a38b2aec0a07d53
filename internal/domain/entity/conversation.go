package entity

import "time"

const (
	// SupportListingID marks a conversation held directly with the platform
	// rather than about a listing.
	SupportListingID    = "SUPPORT"
	SupportListingTitle = "Direct Support"
)

type Message struct {
	ID                  string    `json:"id" firestore:"id"`
	SenderID            string    `json:"sender_id" firestore:"senderId"`
	Text                string    `json:"text" firestore:"text"`
	Timestamp           time.Time `json:"timestamp" firestore:"timestamp"`
	Read                bool      `json:"is_read" firestore:"isRead"`
	IsAdminIntervention bool      `json:"is_admin_intervention" firestore:"isAdminIntervention"`
}

type ConversationSession struct {
	ID              string    `json:"id" firestore:"id"`
	ListingID       string    `json:"listing_id" firestore:"listingId"`
	ListingTitle    string    `json:"listing_title" firestore:"listingTitle"`
	RenterID        string    `json:"renter_id" firestore:"renterId"`
	OwnerID         string    `json:"owner_id" firestore:"ownerId"`
	AssignedAgentID string    `json:"assigned_agent_id,omitempty" firestore:"assignedAgentId,omitempty"`
	Messages        []Message `json:"messages" firestore:"messages"`
	LastUpdated     time.Time `json:"last_updated" firestore:"lastUpdated"`
}

func (s *ConversationSession) IsSupport() bool {
	return s.ListingID == SupportListingID
}

// Clone copies the session so the message slice of the copy can be
// appended to without touching the original.
func (s ConversationSession) Clone() ConversationSession {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return out
}

// SessionParticipants names the renter and owner of a conversation
// explicitly when it is first materialized.
type SessionParticipants struct {
	RenterID string
	OwnerID  string
}
