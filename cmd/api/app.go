package main

import (
	"context"
	"errors"
	"net/http"

	"go-tawk/cmd/api/router/v1"
	"go-tawk/config"
	"go-tawk/internal/infrastructure/auth"
	cacheadapter "go-tawk/internal/infrastructure/cache/adapter"
	cacheport "go-tawk/internal/infrastructure/cache/port"
	"go-tawk/internal/infrastructure/database"
	queueadapter "go-tawk/internal/infrastructure/queue/adapter"
	"go-tawk/internal/infrastructure/realtime"
	chatusecase "go-tawk/internal/pkg/chat/application/usecase"
	chatrepo "go-tawk/internal/pkg/chat/persistence/repository/adapter"
	chatport "go-tawk/internal/pkg/chat/persistence/repository/port"
	chatctl "go-tawk/internal/pkg/chat/presentation/controller"
	session "go-tawk/internal/pkg/session/application"
	sessionctl "go-tawk/internal/pkg/session/presentation/controller"
	"go-tawk/internal/pkg/social/application/task"
	socialusecase "go-tawk/internal/pkg/social/application/usecase"
	socialrepo "go-tawk/internal/pkg/social/persistence/repository/adapter"
	socialport "go-tawk/internal/pkg/social/persistence/repository/port"
	socialctl "go-tawk/internal/pkg/social/presentation/controller"
	socialhttp "go-tawk/internal/pkg/social/presentation/http"
	"go-tawk/pkg/logger"

	"github.com/gin-gonic/gin"
)

// app holds everything serve needs to run and to tear down.
type app struct {
	engine   *gin.Engine
	registry *realtime.Registry
	worker   *queueadapter.AsynqServer
	closers  []func() error
}

// buildApp wires storage, presence and the HTTP surface from cfg. When
// embeddedWorker is set and Redis is configured, presence tasks are consumed
// in process.
func buildApp(ctx context.Context, cfg *config.Config, log *logger.Logger, embeddedWorker bool) (*app, error) {
	if log == nil {
		log = &logger.Logger{}
	}
	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	chats, social, err := a.openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	cache, statusStore, err := a.openPresence(ctx, cfg, log, social, embeddedWorker)
	if err != nil {
		return nil, err
	}

	a.registry = realtime.NewRegistry(realtime.NewCachedStatusStore(cache, statusStore), log)
	router := realtime.NewRouter(a.registry, log)

	getMessages := chatusecase.NewGetMessageUseCase(chats)
	chatSocket := chatctl.NewChatSocketController(
		chatusecase.NewStartConversationUseCase(chats),
		chatusecase.NewListConversationsUseCase(chats),
		getMessages,
		chatusecase.NewSendMessageUseCase(chats, router),
	)
	socialSocket := socialctl.NewSocialSocketController(
		socialusecase.NewCreateFriendRequestUseCase(social, router),
		socialusecase.NewAcceptFriendRequestUseCase(social, router, cfg.Social.AcceptMaxRetries),
	)

	manager := session.NewManager(a.registry, log)
	dispatcher := session.NewDispatcher(cfg.Realtime.HandlerTimeout, log)
	manager.RegisterEnd(dispatcher)
	chatSocket.Register(dispatcher)
	socialSocket.Register(dispatcher)

	authn := auth.New(cfg)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.engine = gin.New()
	a.engine.Use(gin.Recovery())
	if cfg.IsDevelopment() {
		a.engine.Use(gin.Logger())
	}
	a.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(a.engine, authn, v1.Handlers{
		Socket:      sessionctl.NewSocketController(manager, dispatcher, authn, cfg.Realtime, log),
		GetMessages: chatctl.NewGetMessageController(getMessages),
		User: socialhttp.Controllers{
			UpdateMe:          socialctl.NewUpdateMeController(socialusecase.NewUpdateProfileUseCase(social)),
			GetUsers:          socialctl.NewGetUsersController(socialusecase.NewListCandidateUsersUseCase(social)),
			GetFriends:        socialctl.NewGetFriendsController(socialusecase.NewListFriendsUseCase(social)),
			GetFriendRequests: socialctl.NewGetFriendRequestsController(socialusecase.NewListPendingRequestsUseCase(social)),
			GetStatus:         socialctl.NewGetStatusController(socialusecase.NewGetPresenceUseCase(cache, social)),
		},
	})

	ok = true
	return a, nil
}

func (a *app) openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (chatport.ChatRepository, socialport.SocialRepository, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("using in-memory storage, data is lost on exit")
		return chatrepo.NewMemChatRepository(), socialrepo.NewMemSocialRepository(), nil
	}

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, func() error { pool.Close(); return nil })

	db, err := database.OpenBun(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, db.Close)

	return chatrepo.NewPgChatRepository(pool), socialrepo.NewBunSocialRepository(db, log), nil
}

// openPresence picks the presence cache and the durable status store. With
// Redis, status changes travel through the presence queue; without it they
// are written directly and cached in process.
func (a *app) openPresence(ctx context.Context, cfg *config.Config, log *logger.Logger, social socialport.SocialRepository, embeddedWorker bool) (cacheport.Cache, realtime.StatusStore, error) {
	if cfg.Redis.URL == "" {
		return cacheadapter.NewMemoryCache(), task.DirectStatusStore(social), nil
	}

	cache, err := cacheadapter.NewRedisAdapter(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, cache.Close)

	client, err := queueadapter.NewAsynqClient(cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, client.Close)

	if embeddedWorker || cfg.Database.Driver == config.DriverMemory {
		srv, err := queueadapter.NewAsynqServer(cfg.Redis.URL, cfg.Queue, log)
		if err != nil {
			return nil, nil, err
		}
		task.RegisterSetPresenceTask(srv, social)
		a.worker = srv
	}
	return cache, task.NewQueueStatusStore(client), nil
}

// close releases resources in reverse acquisition order.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
