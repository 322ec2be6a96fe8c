package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordsrecord/internal/audit"
	editorhandler "wordsrecord/internal/editor/handler"
	editorservice "wordsrecord/internal/editor/service"
	editorstore "wordsrecord/internal/editor/store"
	"wordsrecord/internal/editor/token"
	incidenthandler "wordsrecord/internal/incident/handler"
	incidentservice "wordsrecord/internal/incident/service"
	incidentstore "wordsrecord/internal/incident/store"
	nathandler "wordsrecord/internal/nationality/handler"
	natmetrics "wordsrecord/internal/nationality/metrics"
	natservice "wordsrecord/internal/nationality/service"
	natstore "wordsrecord/internal/nationality/store"
	personhandler "wordsrecord/internal/person/handler"
	personservice "wordsrecord/internal/person/service"
	personstore "wordsrecord/internal/person/store"
	"wordsrecord/internal/platform/config"
	"wordsrecord/internal/platform/httpserver"
	kafkaproducer "wordsrecord/internal/platform/kafka/producer"
	"wordsrecord/internal/platform/logger"
	"wordsrecord/internal/platform/metrics"
	"wordsrecord/internal/platform/postgres"
	platformredis "wordsrecord/internal/platform/redis"
	profilehandler "wordsrecord/internal/profile/handler"
	profileservice "wordsrecord/internal/profile/service"
	ratelimitmw "wordsrecord/internal/ratelimit/middleware"
	ratelimitstore "wordsrecord/internal/ratelimit/store"
	sourcehandler "wordsrecord/internal/source/handler"
	sourceservice "wordsrecord/internal/source/service"
	sourcestore "wordsrecord/internal/source/store"
	statementhandler "wordsrecord/internal/statement/handler"
	statementservice "wordsrecord/internal/statement/service"
	statementstore "wordsrecord/internal/statement/store"
	httptransport "wordsrecord/internal/transport/http"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in each module's service package.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Audit events go to Kafka when brokers are configured, otherwise to the
	// structured log.
	var auditSink audit.Sink = audit.NewLogSink(log)
	if cfg.Kafka.Brokers != "" {
		prod, err := kafkaproducer.New(cfg.Kafka, log)
		if err != nil {
			log.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer prod.Close()
		auditSink = audit.NewKafkaSink(prod, cfg.Kafka.AuditTopic)
	}
	publisher := audit.NewPublisher(auditSink, audit.WithLogger(log), audit.WithAsyncBuffer(256))
	defer publisher.Close()

	appMetrics := metrics.New()

	// Rate limiting backs onto Redis when configured, otherwise a
	// per-process window.
	var limiter ratelimitmw.Limiter = ratelimitstore.NewMemory()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		limiter = ratelimitstore.NewRedis(redisClient.Client)
	}
	rateLimit := ratelimitmw.New(limiter, log, cfg.Server.PublicRateLimit, time.Minute,
		ratelimitmw.WithDisabled(cfg.Server.PublicRateLimit <= 0))

	tokens := token.NewService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTIssuer)

	persons := personstore.NewPostgres(db)
	facts := natstore.NewPostgres(db)
	incidents := incidentstore.NewPostgres(db)
	sources := sourcestore.NewPostgres(db)
	statements := statementstore.NewPostgres(db)
	editors := editorstore.NewPostgres(db)

	personSvc := personservice.New(persons,
		personservice.WithLogger(log),
		personservice.WithAuditPublisher(publisher),
	)
	natSvc := natservice.New(newNationalityPostgresTx(db), facts, persons,
		natservice.WithLogger(log),
		natservice.WithAuditPublisher(publisher),
		natservice.WithMetrics(natmetrics.New()),
	)
	incidentSvc := incidentservice.New(incidents,
		incidentservice.WithLogger(log),
		incidentservice.WithAuditPublisher(publisher),
	)
	sourceSvc := sourceservice.New(sources,
		sourceservice.WithLogger(log),
		sourceservice.WithAuditPublisher(publisher),
	)
	statementSvc := statementservice.New(statements,
		statementservice.WithLogger(log),
		statementservice.WithAuditPublisher(publisher),
	)
	editorSvc := editorservice.New(editors, tokens,
		editorservice.WithLogger(log),
		editorservice.WithAuditPublisher(publisher),
		editorservice.WithTokenTTL(cfg.Auth.TokenTTL),
	)
	profileSvc := profileservice.New(persons, facts, statements,
		profileservice.WithLogger(log),
	)

	personH := personhandler.New(personSvc, log)
	natH := nathandler.New(natSvc, log)
	incidentH := incidenthandler.New(incidentSvc, log)
	sourceH := sourcehandler.New(sourceSvc, log)
	statementH := statementhandler.New(statementSvc, log)
	editorH := editorhandler.New(editorSvc, log)
	profileH := profilehandler.New(profileSvc, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		Metrics:      appMetrics,
		JWTValidator: token.NewServiceAdapter(tokens),
		RateLimit:    rateLimit,
		Timeout:      cfg.Server.RequestTimeout,
		Admin: []httptransport.Registrar{
			personH, natH, incidentH, sourceH, statementH, editorH,
		},
		Public: []httptransport.PublicRegistrar{
			profileH, incidentH, editorH,
		},
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting wordsrecord", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
