package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"rentory/internal/adapter/api"
	"rentory/internal/adapter/api/handler"
	apimiddleware "rentory/internal/adapter/api/middleware"
	"rentory/internal/adapter/api/router"
	"rentory/internal/adapter/repository"
	domainrepo "rentory/internal/domain/repository"
	"rentory/internal/infrastructure/firebase"
	"rentory/internal/infrastructure/ratelimit"
	"rentory/internal/infrastructure/token"
	"rentory/internal/infrastructure/websocket"
	"rentory/internal/usecase"
	"rentory/pkg/config"
	"rentory/pkg/logger"
)

type stores struct {
	leases        domainrepo.LeaseRepository
	conversations domainrepo.ConversationRepository
	favorites     domainrepo.PartyListRepository
	history       domainrepo.PartyListRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	now := time.Now()
	accountRepo := repository.NewMemoryAccountRepository(seedAccounts(now))
	listingRepo := repository.NewMemoryListingRepository(seedListings())

	var s stores
	switch cfg.StoreBackend {
	case "firestore":
		firestoreClient, err := firebase.NewFirestoreClient(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to initialize Firestore: %v", err)
		}
		defer firestoreClient.Close()
		s = firestoreStores(firestoreClient)
		logger.Info("Using Firestore store for project %s", cfg.FirebaseProject)
	default:
		s = stores{
			leases:        repository.NewMemoryLeaseRepository(),
			conversations: repository.NewMemoryConversationRepository(seedConversations(now)...),
			favorites:     repository.NewMemoryPartyListRepository(),
			history:       repository.NewMemoryPartyListRepository(),
		}
		logger.Info("Using in-memory store")
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)
	notifier := websocket.NewNotifier(wsManager)

	limiter := ratelimit.NewRateLimiter(cfg.MessageRatePerMinute)
	limiter.StartCleanupRoutine(10*time.Minute, ctx.Done())

	issuer := token.NewIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)

	authUseCase := usecase.NewAuthUseCase(accountRepo, issuer)
	historyUseCase := usecase.NewHistoryUseCase(s.history, listingRepo, cfg.RecencyCapacity)
	listingUseCase := usecase.NewListingUseCase(listingRepo, historyUseCase)
	favoriteUseCase := usecase.NewFavoriteUseCase(s.favorites, listingRepo)
	leaseUseCase := usecase.NewLeaseUseCase(s.leases, listingRepo, accountRepo, notifier)
	chatUseCase := usecase.NewChatUseCase(s.conversations, listingRepo, accountRepo, notifier, limiter, cfg.SupportAccountID)
	adminUseCase := usecase.NewAdminUseCase(accountRepo, listingRepo)

	handler.Setup(authUseCase, listingUseCase, historyUseCase, favoriteUseCase, leaseUseCase, adminUseCase)
	handler.SetupHealthHandler(cfg.StoreBackend)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(issuer)
	chatHandler := handler.NewChatHandler(chatUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager)

	adminMiddleware := apimiddleware.NewAdminMiddleware(accountRepo)

	router.Setup(e, authMiddleware, adminMiddleware, limiter, chatHandler, wsHandler)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

func firestoreStores(client *firestore.Client) stores {
	return stores{
		leases:        repository.NewFirestoreLeaseRepository(client),
		conversations: repository.NewFirestoreConversationRepository(client),
		favorites:     repository.NewFirestorePartyListRepository(client, repository.FavoritesCollection),
		history:       repository.NewFirestorePartyListRepository(client, repository.ViewHistoryCollection),
	}
}
