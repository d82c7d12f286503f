package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardioconsult/config"
	"cardioconsult/cron"
	"cardioconsult/database"
	doctorRepo "cardioconsult/database/repository/doctor"
	"cardioconsult/handlers"
	"cardioconsult/middleware"
	"cardioconsult/models"
	"cardioconsult/routes"
	"cardioconsult/services/booking"
	"cardioconsult/services/notification"
	"cardioconsult/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func runServer() error {
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database.InitDB()
	utils.InitLockClient()
	utils.StartHealthMonitor(ctx, utils.GetLockClient(), database.MongoClient)

	// repositories.
	doctors := doctorRepo.NewMongoDoctorRepo(database.Database())
	seedDefaultDoctor(ctx, doctors)

	// notifications.
	telegram := notification.NewTelegramClient(cfg.TelegramAPIURL, cfg.TelegramBotToken, nil)
	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()
	worker := cron.InitNotificationWorker(ctx, telegram)

	notificationService := &notification.DefaultNotificationService{
		Doctors:         doctors,
		Sender:          telegram,
		DefaultDoctorID: cfg.DoctorID,
	}

	// scheduling.
	cal, err := newCalendar(ctx)
	if err != nil {
		return err
	}
	engine, err := newEngine(cal)
	if err != nil {
		return err
	}
	meetingService := &booking.DefaultMeetingService{
		Doctors:         doctors,
		Engine:          engine,
		Scheduler:       newScheduler(cal),
		Locker:          booking.NewRedisLocker(utils.GetLockClient(), cfg.BookingLockTTL, cfg.BookingLockWait),
		Notifier:        notification.NewQueuedSender(queueClient),
		DefaultDoctorID: cfg.DoctorID,
		Recheck:         cfg.BookingRecheck,
	}

	meetingHandler := handlers.NewMeetingHandler(meetingService, cfg.Location())
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	doctorHandler := handlers.NewDoctorHandler(doctors)

	handlerBundle := &handlers.HandlerBundle{
		GetAvailableSlots: meetingHandler.GetAvailableSlots,
		GetNextSlot:       meetingHandler.GetNextSlot,
		CreateMeeting:     meetingHandler.CreateMeeting,
		SendNotification:  notificationHandler.SendNotification,
		GetDoctorByID:     doctorHandler.GetDoctorByID,
		UpsertDoctor:      doctorHandler.UpsertDoctor,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
	return nil
}

// seedDefaultDoctor stores the configured doctor so the default lookup resolves.
func seedDefaultDoctor(ctx context.Context, doctors doctorRepo.DoctorRepository) {
	cfg := config.AppConfig
	if cfg.DoctorEmail == "" {
		return
	}
	doc := &models.Doctor{
		ID:     cfg.DoctorID,
		Name:   cfg.DoctorName,
		Email:  cfg.DoctorEmail,
		ChatID: cfg.DoctorChatID,
	}
	if err := doctors.Upsert(ctx, doc); err != nil {
		utils.GetLogger().Error("main: failed to seed default doctor", zap.Error(err))
		os.Exit(1)
	}
	utils.GetLogger().Info("main: default doctor ready", zap.String("id", doc.ID), zap.String("email", doc.Email))
}
