package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikorail/user-notification-ts/internal/config"
	dbpkg "github.com/mikorail/user-notification-ts/internal/db"
	httpserver "github.com/mikorail/user-notification-ts/internal/http"
	"github.com/mikorail/user-notification-ts/internal/http/handler"
	"github.com/mikorail/user-notification-ts/internal/notifier"
	"github.com/mikorail/user-notification-ts/internal/repository/postgres"
	"github.com/mikorail/user-notification-ts/internal/scheduler"
	"github.com/mikorail/user-notification-ts/internal/service"
	"github.com/mikorail/user-notification-ts/internal/timezone"
	"github.com/mikorail/user-notification-ts/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	database, err := dbpkg.Connect(cfg.Postgres)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer database.Close()

	if err := dbpkg.RunMigrations(ctx, database, migrations.FS()); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(database)
	messageRepo := postgres.NewMessageRepository(database)

	sender := notifier.NewEmailSender(notifier.EmailSenderOptions{
		Endpoint: cfg.Email.Endpoint,
		Timeout:  cfg.Email.Timeout,
	})

	greetingService := service.NewGreetingService(service.GreetingDependencies{
		Users:    userRepo,
		Messages: messageRepo,
		Zones:    timezone.NewTableResolver(),
		Sender:   sender,
		Redis:    redisClient,
	})
	userService := service.NewUserService(userRepo, messageRepo, nil)

	schedLogger := log.New(os.Stdout, "scheduler ", log.LstdFlags)
	sched := scheduler.New(greetingService, cfg.Scheduler.Interval, schedLogger)

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sched.Start(appCtx); err != nil {
		log.Fatalf("start scheduler: %v", err)
	}

	userHandler := handler.NewUserHandler(userService)
	greetingHandler := handler.NewGreetingHandler(greetingService, greetingService)
	controlHandler := handler.NewControlHandler(sched)
	router := httpserver.NewRouter(userHandler, greetingHandler, controlHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if err := sched.Stop(); err != nil && err != scheduler.ErrNotRunning {
		log.Printf("scheduler stop error: %v", err)
	}
}
