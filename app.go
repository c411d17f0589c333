package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/levomgrup/sales-api/config"
	"github.com/levomgrup/sales-api/logging"
	"github.com/levomgrup/sales-api/repository"
	"github.com/levomgrup/sales-api/repository/gormstore"
	"github.com/levomgrup/sales-api/repository/mongostore"
	"github.com/levomgrup/sales-api/routes"
	"github.com/levomgrup/sales-api/services"
	"github.com/sirupsen/logrus"
)

type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	store repository.Store

	customers   *services.CustomerService
	products    *services.ProductService
	visits      *services.VisitService
	scheduler   *services.VisitScheduler
	suggestions *services.SuggestionService
	reminders   *services.ReminderService
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:         cfg,
		log:         log,
		store:       store,
		customers:   services.NewCustomerService(store, log),
		products:    services.NewProductService(store, log),
		visits:      services.NewVisitService(store, log, time.Now),
		scheduler:   services.NewVisitScheduler(store, log, time.Now),
		suggestions: services.NewSuggestionService(store, log, time.Now),
	}
	if cfg.RemindersEnabled() {
		sender := services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken,
			cfg.TwilioPhoneNumber, cfg.TwilioWhatsAppNumber)
		a.reminders = services.NewReminderService(store, sender, cfg.ReminderTemplate, log, time.Now)
	} else {
		log.Info("Twilio credentials not set, visit reminders disabled")
	}
	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (repository.Store, error) {
	if cfg.DBDriver == config.DriverMongo {
		client, err := config.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.WithField("database", cfg.MongoDatabase).Info("Connected to MongoDB")
		return mongostore.New(client, cfg.MongoDatabase), nil
	}

	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		return nil, err
	}
	log.WithField("driver", cfg.DBDriver).Info("Connected to database")
	return gormstore.New(db), nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.store.Close(ctx); err != nil {
		a.log.WithError(err).Warn("Failed to close store")
	}
}

func runServe(ctx context.Context, configPath string) error {
	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Migrate(ctx); err != nil {
		return err
	}

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	scheduler, err := services.NewScheduler(a.scheduler, a.cfg.RolloverSchedule,
		a.reminders, a.cfg.ReminderSchedule, a.log)
	if err != nil {
		return err
	}
	scheduler.Start()

	r := routes.SetupRouter(routes.Dependencies{
		Config:      a.cfg,
		Log:         a.log,
		Customers:   a.customers,
		Products:    a.products,
		Visits:      a.visits,
		Scheduler:   a.scheduler,
		Suggestions: a.suggestions,
	})
	printRoutes(a.log, r)

	srv := &http.Server{
		Addr:    ":" + a.cfg.Port,
		Handler: r,
	}
	serveErr := make(chan error, 1)
	go func() {
		a.log.WithField("port", a.cfg.Port).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		<-scheduler.Stop().Done()
		return err
	case sig := <-quit:
		a.log.WithField("signal", sig.String()).Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.WithError(err).Error("Server shutdown failed")
	}
	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		a.log.Warn("Scheduler jobs still running at shutdown")
	}
	return nil
}

func runRollover(ctx context.Context, configPath string) error {
	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.scheduler.Rollover(ctx)
	if err != nil {
		return fmt.Errorf("visit rollover: %w", err)
	}
	if result.Failed > 0 {
		return fmt.Errorf("visit rollover: %d visits failed", result.Failed)
	}
	return nil
}

func runMigrate(ctx context.Context, configPath string) error {
	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Migrate(ctx); err != nil {
		return err
	}
	a.log.Info("Migration completed")
	return nil
}

func printRoutes(log *logrus.Logger, r *gin.Engine) {
	for _, route := range r.Routes() {
		log.Debugf("%-6s %s", route.Method, route.Path)
	}
}
