package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentory/internal/domain/entity"
	"rentory/internal/domain/repository"
	"rentory/internal/domain/service"
	"rentory/internal/infrastructure/ratelimit"
	"rentory/pkg/errors"
	"rentory/pkg/logger"
	"rentory/pkg/utils"
)

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	listingRepo      repository.ListingRepository
	accountRepo      repository.AccountRepository
	notifier         EventNotifier
	rateLimiter      RateLimiter
	supportAccountID string
	now              func() time.Time
	newID            func() string
}

func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	listingRepo repository.ListingRepository,
	accountRepo repository.AccountRepository,
	notifier EventNotifier,
	rateLimiter RateLimiter,
	supportAccountID string,
) *ChatUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &ChatUseCase{
		conversationRepo: conversationRepo,
		listingRepo:      listingRepo,
		accountRepo:      accountRepo,
		notifier:         notifier,
		rateLimiter:      rateLimiter,
		supportAccountID: supportAccountID,
		now:              time.Now,
		newID:            func() string { return "msg_" + uuid.New().String() },
	}
}

type SendMessageInput struct {
	SessionID string
	Text      string
	// ActingAs attributes the message to another party. Only administrators
	// and staff may use it for anyone but themselves.
	ActingAs string
	// Participants, when set, names the owner of a support session created
	// by this send. Only administrators and staff may set it.
	Participants *entity.SessionParticipants
}

// SessionView is a session as one viewer sees it.
type SessionView struct {
	Session     *entity.ConversationSession `json:"session"`
	UnreadCount int                         `json:"unread_count"`
}

type Inbox struct {
	Sessions    []SessionView `json:"sessions"`
	Total       int           `json:"total"`
	TotalUnread int           `json:"total_unread"`
}

// SendMessage appends a message from viewerID to the session, creating the
// session on first send.
func (uc *ChatUseCase) SendMessage(ctx context.Context, viewerID string, input SendMessageInput) (*entity.ConversationSession, error) {
	session, _, err := uc.send(ctx, viewerID, input)
	return session, err
}

func (uc *ChatUseCase) send(ctx context.Context, viewerID string, input SendMessageInput) (*entity.ConversationSession, bool, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, false, errors.BadRequest("Message text is required", nil)
	}

	viewer, err := loadActor(ctx, uc.accountRepo, viewerID)
	if err != nil {
		return nil, false, err
	}

	if input.ActingAs != "" && input.ActingAs != viewer.PartyID() {
		if !entity.IsPlatformOperator(viewer) {
			return nil, false, errors.Forbidden("Only platform staff can send on behalf of another party", nil)
		}
		if _, err := uc.accountRepo.GetByID(ctx, input.ActingAs); err != nil {
			return nil, false, errors.NotFound("Account", err)
		}
	}

	if err := uc.allow(viewerID, ratelimit.ActionSendMessage); err != nil {
		return nil, false, err
	}

	key, ok := service.ParseSessionID(input.SessionID)
	if !ok {
		return nil, false, errors.NotFound("Conversation", nil)
	}

	if err := uc.checkParticipants(ctx, viewer, key, input.Participants); err != nil {
		return nil, false, err
	}

	existing, err := uc.conversationRepo.GetByID(ctx, input.SessionID)
	switch {
	case err == nil:
		if !service.CanSeeSession(viewer, *existing) {
			return nil, false, errors.Forbidden("You are not a participant in this conversation", nil)
		}
	case !errors.Is(err, errors.CodeNotFound):
		return nil, false, errors.Internal("Failed to load conversation", err)
	}

	msg := service.ComposeMessage(viewer, input.ActingAs, input.Text, uc.newID(), uc.now())

	create := func() (entity.ConversationSession, error) {
		var listing *entity.Listing
		if !key.IsSupport() {
			l, err := uc.listingRepo.GetByID(ctx, key.ListingID)
			if err != nil {
				return entity.ConversationSession{}, errors.NotFound("Listing", err)
			}
			listing = l
		}
		session := service.NewSession(key, listing, input.Participants, uc.supportAccountID)
		if !service.CanSeeSession(viewer, session) {
			return entity.ConversationSession{}, errors.Forbidden("You are not a participant in this conversation", nil)
		}
		return session, nil
	}

	session, created, err := uc.conversationRepo.Append(ctx, input.SessionID, msg, create)
	if err != nil {
		return nil, false, err
	}

	if created {
		logger.Info("Conversation %s opened by %s", session.ID, viewer.PartyID())
	}
	uc.notifier.MessageAppended(*session, session.Messages[len(session.Messages)-1], created)

	return session, created, nil
}

// checkParticipants keeps every derived id bound to its party. Listing
// conversations always belong to the embedded party and the listing owner;
// only support conversations may be routed to another owner, and only by
// platform staff.
func (uc *ChatUseCase) checkParticipants(ctx context.Context, viewer entity.Actor, key service.SessionKey, participants *entity.SessionParticipants) error {
	if participants == nil {
		return nil
	}
	if !entity.IsPlatformOperator(viewer) {
		return errors.Forbidden("Only platform staff can name conversation participants", nil)
	}
	if !key.IsSupport() {
		return errors.BadRequest("Participants can only be named on support conversations", nil)
	}
	if participants.RenterID != "" && participants.RenterID != key.PartyID {
		return errors.BadRequest("Renter must be the party the conversation belongs to", nil)
	}
	if participants.OwnerID != "" {
		if _, err := uc.accountRepo.GetByID(ctx, participants.OwnerID); err != nil {
			return errors.NotFound("Account", err)
		}
	}
	return nil
}

// StartListingConversation opens (or returns) the viewer's conversation about
// a listing. text, when given, is sent as a message; a brand-new
// conversation without text gets a greeting.
func (uc *ChatUseCase) StartListingConversation(ctx context.Context, viewerID, listingID, text string) (*entity.ConversationSession, bool, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, false, errors.NotFound("Listing", err)
	}

	id, err := uc.DeriveSessionID(listing.ID, viewerID)
	if err != nil {
		return nil, false, err
	}

	greeting := fmt.Sprintf("Hello, I'm interested in %s.", listing.Title)
	return uc.start(ctx, viewerID, SendMessageInput{SessionID: id, Text: text}, greeting)
}

// StartSupportConversation opens the direct support conversation of
// partyID. Only platform staff may open one for somebody else; everyone
// else always gets their own.
func (uc *ChatUseCase) StartSupportConversation(ctx context.Context, viewerID, partyID, text string) (*entity.ConversationSession, bool, error) {
	viewer, err := loadActor(ctx, uc.accountRepo, viewerID)
	if err != nil {
		return nil, false, err
	}

	target := viewer.PartyID()
	if partyID != "" && partyID != target {
		if !entity.IsPlatformOperator(viewer) {
			return nil, false, errors.Forbidden("Only platform staff can open support for another party", nil)
		}
		if _, err := uc.accountRepo.GetByID(ctx, partyID); err != nil {
			return nil, false, errors.NotFound("Account", err)
		}
		target = partyID
	}

	id, err := uc.DeriveSessionID(entity.SupportListingID, target)
	if err != nil {
		return nil, false, err
	}

	return uc.start(ctx, viewerID, SendMessageInput{SessionID: id, Text: text}, "Hello, I need help with my account.")
}

func (uc *ChatUseCase) start(ctx context.Context, viewerID string, input SendMessageInput, greeting string) (*entity.ConversationSession, bool, error) {
	if err := uc.allow(viewerID, ratelimit.ActionStartChat); err != nil {
		return nil, false, err
	}

	existing, err := uc.conversationRepo.GetByID(ctx, input.SessionID)
	if err == nil && strings.TrimSpace(input.Text) == "" {
		viewer, err := loadActor(ctx, uc.accountRepo, viewerID)
		if err != nil {
			return nil, false, err
		}
		if !service.CanSeeSession(viewer, *existing) {
			return nil, false, errors.Forbidden("You are not a participant in this conversation", nil)
		}
		return existing, false, nil
	}
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, false, errors.Internal("Failed to load conversation", err)
	}

	if strings.TrimSpace(input.Text) == "" {
		input.Text = greeting
	}

	return uc.send(ctx, viewerID, input)
}

// GetSession returns the session with viewerID's unread count.
func (uc *ChatUseCase) GetSession(ctx context.Context, viewerID, sessionID string) (*SessionView, error) {
	viewer, err := loadActor(ctx, uc.accountRepo, viewerID)
	if err != nil {
		return nil, err
	}

	session, err := uc.conversationRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !service.CanSeeSession(viewer, *session) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return &SessionView{
		Session:     session,
		UnreadCount: service.UnreadCount(*session, viewer.PartyID()),
	}, nil
}

// ListInbox returns the page of sessions visible to viewerID, most recently
// updated first. TotalUnread covers every visible session, not only the page.
func (uc *ChatUseCase) ListInbox(ctx context.Context, viewerID string, page utils.PaginationParams) (*Inbox, error) {
	viewer, err := loadActor(ctx, uc.accountRepo, viewerID)
	if err != nil {
		return nil, err
	}

	sessions, err := uc.conversationRepo.List(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to list conversations", err)
	}

	views := []SessionView{}
	totalUnread := 0
	for _, session := range sessions {
		if !service.CanSeeSession(viewer, *session) {
			continue
		}
		unread := service.UnreadCount(*session, viewer.PartyID())
		totalUnread += unread
		views = append(views, SessionView{Session: session, UnreadCount: unread})
	}

	return &Inbox{
		Sessions:    utils.Slice(views, page),
		Total:       len(views),
		TotalUnread: totalUnread,
	}, nil
}

// DeriveSessionID validates the pair and returns its conversation id.
func (uc *ChatUseCase) DeriveSessionID(listingID, partyID string) (string, error) {
	if listingID == "" || partyID == "" {
		return "", errors.BadRequest("listing_id and party_id are required", nil)
	}
	if strings.Contains(partyID, "_") {
		return "", errors.BadRequest("party_id must not contain '_'", nil)
	}
	return service.DeriveSessionID(listingID, partyID), nil
}

func (uc *ChatUseCase) allow(viewerID, action string) error {
	if uc.rateLimiter == nil {
		return nil
	}
	if ok, wait := uc.rateLimiter.Allow(viewerID, action); !ok {
		logger.Warn("Rate limited %s for %s, retry in %v", action, viewerID, wait)
		return errors.TooManyRequests("Too many requests, slow down", wait)
	}
	return nil
}
