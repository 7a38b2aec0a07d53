package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rentory/internal/adapter/api"
	"rentory/internal/adapter/api/handler"
	"rentory/internal/adapter/api/middleware"
	"rentory/internal/adapter/repository"
	"rentory/internal/domain/entity"
	"rentory/internal/infrastructure/ratelimit"
	"rentory/internal/infrastructure/token"
	"rentory/internal/infrastructure/websocket"
	"rentory/internal/usecase"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	e         *echo.Echo
	limiter   *ratelimit.RateLimiter
	wsManager *websocket.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	pins := []struct {
		account entity.Account
		pin     string
	}{
		{entity.Account{ID: "u1", Name: "Demo Tenant", Role: entity.RoleTenant}, "1111"},
		{entity.Account{ID: "u2", Name: "Demo Landlord", Role: entity.RoleLandlord}, "5555"},
		{entity.Account{ID: "u3", Name: "Super Admin", Role: entity.RoleAdmin}, "1414"},
		{entity.Account{ID: "s2", Name: "John Okoro", Role: entity.RoleStaff, Position: entity.PositionOperationsManager}, "2020"},
	}
	var accounts []entity.Account
	for _, p := range pins {
		hash, err := usecase.HashPIN(p.pin, bcrypt.MinCost)
		require.NoError(t, err)
		a := p.account
		a.PinHash = hash
		a.Status = entity.AccountStatusActive
		accounts = append(accounts, a)
	}

	accountRepo := repository.NewMemoryAccountRepository(accounts)
	listingRepo := repository.NewMemoryListingRepository([]entity.Listing{
		{ID: "p1", OwnerID: "u2", Title: "Luxury VI Executive Loft", AssignedAgentID: "g2"},
		{ID: "p2", OwnerID: "u2", Title: "Maitama Diplomatic Villa"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)
	notifier := websocket.NewNotifier(wsManager)
	limiter := ratelimit.NewRateLimiter(100)
	issuer := token.NewIssuer("test-secret", time.Hour)

	historyUseCase := usecase.NewHistoryUseCase(repository.NewMemoryPartyListRepository(), listingRepo, 10)
	handler.Setup(
		usecase.NewAuthUseCase(accountRepo, issuer),
		usecase.NewListingUseCase(listingRepo, historyUseCase),
		historyUseCase,
		usecase.NewFavoriteUseCase(repository.NewMemoryPartyListRepository(), listingRepo),
		usecase.NewLeaseUseCase(repository.NewMemoryLeaseRepository(), listingRepo, accountRepo, notifier),
		usecase.NewAdminUseCase(accountRepo, listingRepo),
	)
	handler.SetupHealthHandler("memory")
	chatUseCase := usecase.NewChatUseCase(repository.NewMemoryConversationRepository(), listingRepo, accountRepo, notifier, limiter, "u3")

	e := echo.New()
	e.Validator = api.NewValidator()
	Setup(e, middleware.NewAuthMiddleware(issuer), middleware.NewAdminMiddleware(accountRepo), limiter, handler.NewChatHandler(chatUseCase), handler.NewWebSocketHandler(wsManager))

	return &testServer{e: e, limiter: limiter, wsManager: wsManager}
}

func (s *testServer) do(t *testing.T, method, path, bearer string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func (s *testServer) login(t *testing.T, pin string) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"pin": pin})
	require.Equal(t, http.StatusOK, code)

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"pin": "9876"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	code, env = s.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"pin": "ab"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, _ = s.do(t, http.MethodGet, "/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodGet, "/v1/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	tok := s.login(t, "5555")
	code, env = s.do(t, http.MethodGet, "/v1/me", tok, nil)
	require.Equal(t, http.StatusOK, code)
	me := decode[entity.Account](t, env)
	assert.Equal(t, "u2", me.ID)
	assert.NotContains(t, string(env.Data), "pin")
}

func TestLoginIsRateLimitedPerIP(t *testing.T) {
	s := newTestServer(t)
	s.limiter.SetPolicy(ratelimit.ActionLogin, ratelimit.Policy{Every: time.Hour, Burst: 1})

	s.login(t, "1111")
	code, env := s.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"pin": "1111"})
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Error.Code)
}

func TestLeaseRoutes(t *testing.T) {
	s := newTestServer(t)
	tenant, landlord, admin, ops := s.login(t, "1111"), s.login(t, "5555"), s.login(t, "1414"), s.login(t, "2020")

	code, env := s.do(t, http.MethodPost, "/v1/leases", tenant, map[string]string{
		"listing_id": "p1", "tenant_id": "u1", "content": "Twelve months.",
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(t, http.MethodPost, "/v1/leases", landlord, map[string]string{
		"listing_id": "p1", "tenant_id": "u1", "content": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodPost, "/v1/leases", landlord, map[string]string{
		"listing_id": "p1", "tenant_id": "u1", "content": "Twelve months.",
	})
	require.Equal(t, http.StatusCreated, code)
	lease := decode[entity.Lease](t, env)
	assert.Equal(t, entity.LeaseSignedByLandlord, lease.Status)

	sign := func(bearer string) entity.Lease {
		code, env := s.do(t, http.MethodPost, "/v1/leases/"+lease.ID+"/sign", bearer, nil)
		require.Equal(t, http.StatusOK, code)
		return decode[entity.Lease](t, env)
	}

	assert.Equal(t, entity.LeaseSignedByLandlord, sign(admin).Status)
	assert.Equal(t, entity.LeasePendingAdmin, sign(tenant).Status)

	code, env = s.do(t, http.MethodGet, "/v1/leases", admin, nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[usecase.LeaseList](t, env)
	assert.Len(t, list.Leases, 1)
	assert.Equal(t, 1, list.PendingActions)

	assert.Equal(t, entity.LeasePendingAdmin, sign(ops).Status)
	final := sign(admin)
	assert.Equal(t, entity.LeaseFullySigned, final.Status)
	assert.Equal(t, "Super Admin", final.AdminSignature)

	code, env = s.do(t, http.MethodGet, "/v1/leases/"+lease.ID, tenant, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, entity.LeaseFullySigned, decode[entity.Lease](t, env).Status)

	code, env = s.do(t, http.MethodPost, "/v1/leases/lease_missing/sign", admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestChatRoutes(t *testing.T) {
	s := newTestServer(t)
	tenant, landlord, admin := s.login(t, "1111"), s.login(t, "5555"), s.login(t, "1414")

	code, env := s.do(t, http.MethodGet, "/v1/chats/derive?listing_id=p1&party_id=u1", tenant, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "chat_p1_u1", decode[map[string]string](t, env)["id"])

	code, env = s.do(t, http.MethodPost, "/v1/listings/p1/chat", tenant, map[string]string{})
	require.Equal(t, http.StatusCreated, code)
	started := decode[struct {
		Session entity.ConversationSession `json:"session"`
		Created bool                       `json:"created"`
	}](t, env)
	assert.True(t, started.Created)
	assert.Equal(t, "chat_p1_u1", started.Session.ID)

	code, _ = s.do(t, http.MethodPost, "/v1/listings/p1/chat", tenant, map[string]string{})
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodPost, "/v1/chats/chat_p1_u1/messages", landlord, map[string]string{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodPost, "/v1/chats/chat_p1_u1/messages", admin, map[string]string{
		"text": "Landlord confirms Saturday.", "acting_as": "u2",
	})
	require.Equal(t, http.StatusCreated, code)
	session := decode[entity.ConversationSession](t, env)
	last := session.Messages[len(session.Messages)-1]
	assert.Equal(t, "u2", last.SenderID)
	assert.False(t, last.Read)
	assert.True(t, last.IsAdminIntervention)

	code, env = s.do(t, http.MethodGet, "/v1/chats/chat_p1_u1", tenant, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, decode[usecase.SessionView](t, env).UnreadCount)

	code, env = s.do(t, http.MethodGet, "/v1/chats", tenant, nil)
	require.Equal(t, http.StatusOK, code)
	inbox := decode[struct {
		Items       []usecase.SessionView `json:"items"`
		Total       int                   `json:"total"`
		TotalUnread int                   `json:"total_unread"`
	}](t, env)
	assert.Equal(t, 1, inbox.Total)
	assert.Equal(t, 1, inbox.TotalUnread)

	code, env = s.do(t, http.MethodPost, "/v1/support/chat", admin, map[string]string{"party_id": "u1", "text": "Checking in."})
	require.Equal(t, http.StatusCreated, code)

	code, _ = s.do(t, http.MethodPost, "/v1/chats/thread-42/messages", tenant, map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHistoryAndFavoriteRoutes(t *testing.T) {
	s := newTestServer(t)
	tenant := s.login(t, "1111")

	code, _ := s.do(t, http.MethodGet, "/v1/listings/p2", tenant, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, "/v1/history/p1", tenant, nil)
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodGet, "/v1/history", tenant, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"p1", "p2"}, decode[map[string][]string](t, env)["listing_ids"])

	code, env = s.do(t, http.MethodPost, "/v1/favorites/p1", tenant, nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decode[usecase.FavoriteToggle](t, env).Favorite)

	code, env = s.do(t, http.MethodPost, "/v1/favorites/p1", tenant, nil)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, decode[usecase.FavoriteToggle](t, env).Favorite)

	code, _ = s.do(t, http.MethodPost, "/v1/favorites/p404", tenant, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWebSocketReceivesMessages(t *testing.T) {
	s := newTestServer(t)
	server := httptest.NewServer(s.e)
	defer server.Close()

	landlord := s.login(t, "5555")
	tenant := s.login(t, "1111")

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=" + landlord
	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.wsManager.IsOnline("u2") }, time.Second, 10*time.Millisecond)

	code, _ := s.do(t, http.MethodPost, "/v1/chats/chat_p1_u1/messages", tenant, map[string]string{"text": "Is the loft free?"})
	require.Equal(t, http.StatusCreated, code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame websocket.WSMessage
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, websocket.EventSessionCreated, frame.Type)
	assert.Equal(t, "chat_p1_u1", frame.ChatID)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	s.limiter.SetPolicy(ratelimit.ActionLogin, ratelimit.Policy{Every: time.Millisecond, Burst: 20})
	tenant, admin, ops := s.login(t, "1111"), s.login(t, "1414"), s.login(t, "2020")

	code, _ := s.do(t, http.MethodGet, "/v1/admin/accounts", tenant, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := s.do(t, http.MethodGet, "/v1/admin/accounts", ops, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]entity.Account](t, env), 4)

	code, _ = s.do(t, http.MethodPatch, "/v1/admin/accounts/u1/status", ops, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(t, http.MethodPatch, "/v1/admin/accounts/u1/status", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, entity.AccountStatusSuspended, decode[entity.Account](t, env).Status)

	// Suspension applies to tokens issued before it.
	code, _ = s.do(t, http.MethodGet, "/v1/leases", tenant, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"pin": "1111"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.do(t, http.MethodPatch, "/v1/admin/accounts/u1/status", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, entity.AccountStatusActive, decode[entity.Account](t, env).Status)

	code, _ = s.do(t, http.MethodPost, "/v1/admin/staff", admin, map[string]string{"name": "Bola Adeyemi", "position": "JANITOR"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodPost, "/v1/admin/staff", admin, map[string]string{
		"name": "Bola Adeyemi", "email": "bola@rentory.com", "position": "SUPPORT_LEAD",
	})
	require.Equal(t, http.StatusCreated, code)
	created := decode[usecase.StaffAccount](t, env)
	assert.Len(t, created.PIN, 4)
	assert.Equal(t, entity.PositionSupportLead, created.Account.Position)

	code, env = s.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"pin": created.PIN})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, created.Account.ID, decode[usecase.AuthResult](t, env).Account.ID)

	code, env = s.do(t, http.MethodPost, "/v1/admin/listings/p2/approve", ops, nil)
	require.Equal(t, http.StatusOK, code)
	approved := decode[entity.Listing](t, env)
	assert.Equal(t, entity.ListingStatusActive, approved.Status)
	assert.True(t, approved.IsVerified)
}
