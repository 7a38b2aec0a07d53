package service

import (
	"strings"
	"time"

	"rentory/internal/domain/entity"
)

const (
	sessionPrefix        = "chat_"
	supportSessionPrefix = "chat_support_"
)

// SessionKey is the pair a conversation id is derived from.
type SessionKey struct {
	ListingID string
	PartyID   string
}

func (k SessionKey) IsSupport() bool {
	return k.ListingID == entity.SupportListingID
}

func (k SessionKey) ID() string {
	return DeriveSessionID(k.ListingID, k.PartyID)
}

// DeriveSessionID maps (listing, party) to the one conversation id for that
// pair. Passing entity.SupportListingID as the listing gives the party's
// direct support conversation.
func DeriveSessionID(listingID, partyID string) string {
	if listingID == entity.SupportListingID {
		return supportSessionPrefix + partyID
	}
	return sessionPrefix + listingID + "_" + partyID
}

// ParseSessionID inverts DeriveSessionID. Party ids never contain an
// underscore, so the party is whatever follows the last one.
func ParseSessionID(id string) (SessionKey, bool) {
	if party, ok := strings.CutPrefix(id, supportSessionPrefix); ok {
		if party == "" || strings.Contains(party, "_") {
			return SessionKey{}, false
		}
		return SessionKey{ListingID: entity.SupportListingID, PartyID: party}, true
	}

	rest, ok := strings.CutPrefix(id, sessionPrefix)
	if !ok {
		return SessionKey{}, false
	}
	idx := strings.LastIndex(rest, "_")
	if idx <= 0 || idx == len(rest)-1 {
		return SessionKey{}, false
	}
	return SessionKey{ListingID: rest[:idx], PartyID: rest[idx+1:]}, true
}

// ComposeMessage builds the message viewer sends. actingAs, when set,
// replaces the viewer as sender; such a message is unread unless actingAs
// is the viewer. Anything an administrator or staff member sends is
// flagged as an intervention, whoever it is attributed to.
func ComposeMessage(viewer entity.Actor, actingAs, text, id string, at time.Time) entity.Message {
	sender := viewer.PartyID()
	if actingAs != "" {
		sender = actingAs
	}
	return entity.Message{
		ID:                  id,
		SenderID:            sender,
		Text:                text,
		Timestamp:           at,
		Read:                sender == viewer.PartyID(),
		IsAdminIntervention: entity.IsPlatformOperator(viewer),
	}
}

// NewSession materializes the empty conversation for key. The renter is
// always the party embedded in the id. Listing conversations take owner,
// title and assigned field agent from the listing; support conversations
// are held with supportOwnerID unless participants names another owner.
func NewSession(key SessionKey, listing *entity.Listing, participants *entity.SessionParticipants, supportOwnerID string) entity.ConversationSession {
	session := entity.ConversationSession{
		ID:           key.ID(),
		ListingID:    entity.SupportListingID,
		ListingTitle: entity.SupportListingTitle,
		RenterID:     key.PartyID,
		OwnerID:      supportOwnerID,
		Messages:     []entity.Message{},
	}

	if !key.IsSupport() {
		if listing != nil {
			session.ListingID = listing.ID
			session.ListingTitle = listing.Title
			session.OwnerID = listing.OwnerID
			session.AssignedAgentID = listing.AssignedAgentID
		}
		return session
	}

	if participants != nil && participants.OwnerID != "" {
		session.OwnerID = participants.OwnerID
	}
	return session
}

// AppendMessage returns a copy of session with msg at the end. A message
// stamped earlier than the session's latest activity is moved up to it, so
// timestamps never decrease along the thread.
func AppendMessage(session entity.ConversationSession, msg entity.Message) entity.ConversationSession {
	next := session.Clone()
	latest := next.LastUpdated
	if n := len(next.Messages); n > 0 && next.Messages[n-1].Timestamp.After(latest) {
		latest = next.Messages[n-1].Timestamp
	}
	if msg.Timestamp.Before(latest) {
		msg.Timestamp = latest
	}
	next.Messages = append(next.Messages, msg)
	next.LastUpdated = msg.Timestamp
	return next
}

// UnreadCount counts messages viewerID has not read: unread and sent by
// someone else. Every role uses this rule.
func UnreadCount(session entity.ConversationSession, viewerID string) int {
	count := 0
	for _, m := range session.Messages {
		if !m.Read && m.SenderID != viewerID {
			count++
		}
	}
	return count
}

// CanSeeSession decides whether a session belongs in actor's inbox.
func CanSeeSession(actor entity.Actor, session entity.ConversationSession) bool {
	switch a := actor.(type) {
	case entity.Renter:
		return session.RenterID == a.PartyID()
	case entity.Owner:
		return session.OwnerID == a.PartyID()
	case entity.FieldAgent:
		return session.AssignedAgentID == a.PartyID()
	case entity.Administrator, entity.Staff:
		return true
	}
	return false
}
