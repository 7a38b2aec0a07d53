package websocket

import (
	"encoding/json"
	"time"

	"rentory/internal/domain/entity"
	"rentory/pkg/logger"
)

const (
	EventPing           = "ping"
	EventPong           = "pong"
	EventMessage        = "message"
	EventSessionCreated = "session_created"
	EventLeaseUpdated   = "lease_updated"
)

// WSMessage is the envelope of every frame pushed to clients.
type WSMessage struct {
	Type      string      `json:"type"`
	ChatID    string      `json:"chat_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func encode(msg WSMessage) ([]byte, bool) {
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	b, err := json.Marshal(msg)
	if err != nil {
		logger.Error("failed to encode websocket event %s: %v", msg.Type, err)
		return nil, false
	}
	return b, true
}

func handleClientFrame(frame []byte) ([]byte, bool) {
	var in WSMessage
	if err := json.Unmarshal(frame, &in); err != nil {
		return nil, false
	}
	if in.Type != EventPing {
		return nil, false
	}
	return encode(WSMessage{Type: EventPong})
}

// Notifier pushes registry and lease events to the parties they concern.
type Notifier struct {
	manager *Manager
}

func NewNotifier(manager *Manager) *Notifier {
	return &Notifier{manager: manager}
}

func (n *Notifier) publish(recipients []string, msg WSMessage) {
	payload, ok := encode(msg)
	if !ok {
		return
	}
	seen := make(map[string]struct{}, len(recipients))
	for _, id := range recipients {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		n.manager.SendToUser(id, payload)
	}
}

// MessageAppended tells every participant of session about msg. created is
// true when the append materialized the session.
func (n *Notifier) MessageAppended(session entity.ConversationSession, msg entity.Message, created bool) {
	recipients := []string{session.RenterID, session.OwnerID, session.AssignedAgentID, msg.SenderID}
	if created {
		n.publish(recipients, WSMessage{Type: EventSessionCreated, ChatID: session.ID, Data: session})
		return
	}
	n.publish(recipients, WSMessage{Type: EventMessage, ChatID: session.ID, Data: msg})
}

// LeaseUpdated tells the tenant and landlord that lease changed.
func (n *Notifier) LeaseUpdated(lease entity.Lease) {
	n.publish([]string{lease.Tenant.ID, lease.Landlord.ID}, WSMessage{Type: EventLeaseUpdated, Data: lease})
}
