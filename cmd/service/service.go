package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	configs "redacao_service/config"
	"redacao_service/internal/cache"
	"redacao_service/internal/handler"
	"redacao_service/internal/middleware"
	"redacao_service/internal/repository"
	"redacao_service/internal/service"
	"redacao_service/pkg/db"
	"redacao_service/pkg/kafka"
	"redacao_service/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	log := logger.New()
	defer log.Sync()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Classes.Timezone)
	if err != nil {
		log.Fatalf("Failed to load classes timezone: %v", err)
	}

	dbConfig := db.Config{
		Host:           cfg.DB.Host,
		Port:           cfg.DB.Port,
		User:           cfg.DB.User,
		Password:       cfg.DB.Password,
		DBName:         cfg.DB.DBName,
		SSLMode:        cfg.DB.SSLMode,
		MigrationsPath: "file://migrations",
	}

	pg, err := db.NewPostgres(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()

	submissionRepo := repository.NewSubmissionRepository(pg.DB())
	correctorRepo := repository.NewCorrectorRepository(pg.DB())
	studentRepo := repository.NewStudentRepository(pg.DB())
	classRepo := repository.NewLiveClassRepository(pg.DB())
	attendanceRepo := repository.NewAttendanceRepository(pg.DB())
	annotationRepo := repository.NewAnnotationRepository(pg.DB())

	kafkaProducer, err := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
	if err != nil {
		log.Fatalf("Failed to create Kafka producer: %v", err)
	}
	defer kafkaProducer.Close()

	redisConn := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})
	redisCache := cache.NewRedisCache(redisConn)

	submissionService := service.NewSubmissionService(submissionRepo, cfg.Grading.DivergenceThreshold)
	gradingService := service.NewGradingService(submissionRepo, correctorRepo, kafkaProducer, redisCache, log, cfg.Grading.DivergenceThreshold)
	correctorService := service.NewCorrectorService(correctorRepo, studentRepo)
	annotationService := service.NewAnnotationService(annotationRepo, submissionRepo, correctorRepo)
	classService := service.NewLiveClassService(classRepo, studentRepo, log, loc)
	attendanceService := service.NewAttendanceService(attendanceRepo, classRepo, studentRepo, kafkaProducer, log, loc)
	rankingService := service.NewRankingService(submissionRepo, redisCache, cfg.Redis.LeaderboardTTL)

	submissionHandler := handler.NewSubmissionHandler(submissionService, gradingService, annotationService)
	annotationHandler := handler.NewAnnotationHandler(annotationService)
	correctorHandler := handler.NewCorrectorHandler(correctorService)
	studentHandler := handler.NewStudentHandler(correctorService)
	classHandler := handler.NewLiveClassHandler(classService, attendanceService)
	rankingHandler := handler.NewRankingHandler(rankingService)

	r := chi.NewRouter()
	r.Use(middleware.NewLoggingMiddleware(log))
	r.Use(middleware.NewIdentityMiddleware())
	r.Use(func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, 10<<20) // 10 MB
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/submissions", func(r chi.Router) {
		submissionHandler.RegisterRoutes(r)
	})
	r.Route("/annotations", func(r chi.Router) {
		annotationHandler.RegisterRoutes(r)
	})
	r.Route("/correctors", func(r chi.Router) {
		correctorHandler.RegisterRoutes(r)
	})
	r.Route("/students", func(r chi.Router) {
		studentHandler.RegisterRoutes(r)
	})
	r.Route("/classes", func(r chi.Router) {
		classHandler.RegisterRoutes(r)
	})
	r.Route("/leaderboard", func(r chi.Router) {
		rankingHandler.RegisterRoutes(r)
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.Timeout,
		WriteTimeout: cfg.HTTP.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := NewReminderWorker(classRepo, kafkaProducer, log, loc, cfg.Classes.ReminderLead)
	go worker.Start(ctx)

	go func() {
		log.Infof("Starting HTTP server on %s", cfg.HTTP.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Info("Server stopped")
}
