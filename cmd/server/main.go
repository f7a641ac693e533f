package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitrek/fitrek-app/internal/api"
	"fitrek/fitrek-app/internal/auth"
	"fitrek/fitrek-app/internal/catalog"
	"fitrek/fitrek-app/internal/config"
	"fitrek/fitrek-app/internal/export"
	"fitrek/fitrek-app/internal/logging"
	"fitrek/fitrek-app/internal/prefs"
	"fitrek/fitrek-app/internal/repository/mongo"
	"fitrek/fitrek-app/internal/storage"
	"fitrek/fitrek-app/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}
	logging.Setup(cfg.Logging)
	log := logrus.WithField("component", "server")
	log.Info("starting FiTrek server")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureAccountIndexes(ctx, appDB.Collection("accounts"))
		mongo.EnsureCustomExerciseIndexes(ctx, appDB.Collection("custom_exercises"))
		mongo.EnsureProgramIndexes(ctx, appDB.Collection("workout_programs"))
		mongo.EnsureWorkoutLogIndexes(ctx, appDB.Collection("workout_logs"))
		log.Info("index creation process completed")
	}()

	// --- Initialize Repositories ---
	accountRepo := mongo.NewMongoAccountRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	exerciseRepo := mongo.NewMongoCustomExerciseRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	logRepo := mongo.NewMongoWorkoutLogRepository(appDB)

	// --- Auth Gateway ---
	gateway, err := auth.NewService(accountRepo, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration, cfg.Auth.RequireEmailConfirmation)
	if err != nil {
		log.WithError(err).Fatal("could not initialize auth gateway")
	}

	// --- Exercise Catalog ---
	cat, err := catalog.Load()
	if err != nil {
		log.WithError(err).Fatal("could not load exercise catalog")
	}

	// --- Local Preferences ---
	prefsPath := cfg.Prefs.Path
	if prefsPath == "" {
		prefsPath, err = prefs.DefaultPath()
		if err != nil {
			log.WithError(err).Fatal("could not resolve preferences path")
		}
	}
	userPrefs, err := prefs.Open(prefsPath)
	if err != nil {
		log.WithError(err).Fatal("could not open preferences file")
	}

	// --- State Store ---
	appStore := store.New(store.Backend{
		Gateway:   gateway,
		Profiles:  profileRepo,
		Exercises: exerciseRepo,
		Programs:  programRepo,
		Logs:      logRepo,
	}, cat, userPrefs, cfg.BackendConfigured())
	appStore.Start()
	defer appStore.Close()

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	onboarding, err := appStore.Bootstrap(bootCtx)
	bootCancel()
	if err != nil {
		log.WithError(err).Error("session bootstrap failed")
	} else if onboarding {
		log.Info("restored session requires onboarding")
	}

	// --- Optional Data Export ---
	var exporter *export.Service
	if cfg.ExportConfigured() {
		objectStorage, err := storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.WithError(err).Fatal("could not initialize S3 storage")
		}
		exporter = export.NewService(objectStorage)
	} else {
		log.Info("no export bucket configured, data export disabled")
	}

	// --- Initialize Gin Engine ---
	router := gin.Default()
	api.SetupRoutes(router, appStore, gateway, exporter, cfg.BackendConfigured())

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.WithField("address", cfg.Server.Address).Info("server starting")

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen and serve error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exiting")
}
