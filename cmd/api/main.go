package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"ikigai-engine/internal/catalog"
	"ikigai-engine/internal/config"
	"ikigai-engine/internal/db"
	"ikigai-engine/internal/domain"
	"ikigai-engine/internal/email"
	"ikigai-engine/internal/event"
	apihttp "ikigai-engine/internal/http"
	"ikigai-engine/internal/repository"
	"ikigai-engine/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	questionRepo := repository.NewPgQuestionRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	answerRepo := repository.NewPgAnswerRepository(pool)
	resultRepo := repository.NewPgResultRepository(pool)

	// Sembrar los bancos del catalogo para que la DB refleje la fuente de
	// verdad vigente.
	for _, kind := range []domain.AssessmentKind{domain.KindQuick, domain.KindFull} {
		if bank, ok := cat.Bank(kind); ok {
			if err := questionRepo.UpsertBank(ctx, kind, bank); err != nil {
				logger.Fatal("seed question bank", zap.Error(err), zap.String("kind", string(kind)))
			}
		}
	}

	resultCache := service.NewMemoryResultCache()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			resultCache = service.NewRedisResultCache(redisClient)
		}
		cancel()
	}

	var events event.Publisher = event.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher, err := event.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("amqp publisher init failed", zap.Error(err))
		} else {
			events = publisher
			defer publisher.Close()
		}
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	access := service.NewTierAccess(cat)
	assessmentSvc := service.NewAssessmentService(cat, sessionRepo, answerRepo, resultRepo, resultCache, events, logger)
	purchaseSvc := service.NewPurchaseService(sessionRepo, access, events, emailSender, logger)

	assessmentHandler := apihttp.NewAssessmentHandler(logger, assessmentSvc, access)
	accessHandler := apihttp.NewAccessHandler(logger, purchaseSvc, access, assessmentSvc)
	router := apihttp.NewRouter(logger, jwtSvc, assessmentHandler, accessHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
