package handler

import (
	"github.com/labstack/echo/v4"

	"rentory/internal/domain/entity"
	"rentory/internal/usecase"
	"rentory/pkg/errors"
	"rentory/pkg/response"
	"rentory/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type sendMessageRequest struct {
	Text     string `json:"text" validate:"required,max=4000"`
	ActingAs string `json:"acting_as,omitempty" validate:"omitempty,excludes=_"`
	// Used only when this message opens the conversation.
	RenterID string `json:"renter_id,omitempty" validate:"omitempty,excludes=_"`
	OwnerID  string `json:"owner_id,omitempty"`
}

type startConversationRequest struct {
	Text string `json:"text" validate:"max=4000"`
}

type startSupportRequest struct {
	Text    string `json:"text" validate:"max=4000"`
	PartyID string `json:"party_id,omitempty" validate:"omitempty,excludes=_"`
}

type inboxResponse struct {
	Items       []usecase.SessionView `json:"items"`
	Total       int                   `json:"total"`
	TotalUnread int                   `json:"total_unread"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"pageSize"`
}

type startConversationResponse struct {
	Session *entity.ConversationSession `json:"session"`
	Created bool                        `json:"created"`
}

func (h *ChatHandler) GetInbox(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	inbox, err := h.chatUseCase.ListInbox(c.Request().Context(), currentUserID(c), pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, inboxResponse{
		Items:       inbox.Sessions,
		Total:       inbox.Total,
		TotalUnread: inbox.TotalUnread,
		Page:        pagination.Page,
		PageSize:    pagination.PageSize,
	})
}

func (h *ChatHandler) DeriveSessionID(c echo.Context) error {
	id, err := h.chatUseCase.DeriveSessionID(c.QueryParam("listing_id"), c.QueryParam("party_id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"id": id})
}

func (h *ChatHandler) GetSession(c echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return response.Error(c, errors.BadRequest("Chat ID is required", nil))
	}

	view, err := h.chatUseCase.GetSession(c.Request().Context(), currentUserID(c), sessionID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return response.Error(c, errors.BadRequest("Chat ID is required", nil))
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.SendMessageInput{
		SessionID: sessionID,
		Text:      req.Text,
		ActingAs:  req.ActingAs,
	}
	if req.RenterID != "" || req.OwnerID != "" {
		input.Participants = &entity.SessionParticipants{RenterID: req.RenterID, OwnerID: req.OwnerID}
	}

	session, err := h.chatUseCase.SendMessage(c.Request().Context(), currentUserID(c), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, session)
}

func (h *ChatHandler) StartListingConversation(c echo.Context) error {
	listingID := c.Param("id")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session, created, err := h.chatUseCase.StartListingConversation(c.Request().Context(), currentUserID(c), listingID, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return startResponse(c, session, created)
}

func (h *ChatHandler) StartSupportConversation(c echo.Context) error {
	var req startSupportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session, created, err := h.chatUseCase.StartSupportConversation(c.Request().Context(), currentUserID(c), req.PartyID, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return startResponse(c, session, created)
}

func startResponse(c echo.Context, session *entity.ConversationSession, created bool) error {
	body := startConversationResponse{Session: session, Created: created}
	if created {
		return response.Created(c, body)
	}
	return response.Success(c, body)
}
