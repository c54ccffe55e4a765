package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"inovatrust/api"
	"inovatrust/config"
	"inovatrust/database"
	"inovatrust/domain/events"
	"inovatrust/domain/services"
	"inovatrust/notification"
	"inovatrust/realtime"
	"inovatrust/repository"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting InovaTrust platform server...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	databaseURL := database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName)
	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	if err := seedAdminUser(ctx, db, cfg); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	// Initialize event bus and realtime hub
	eventBus := events.NewBus()
	hub := realtime.NewHub()

	// Committed chat messages fan out to their conversation's room
	eventBus.Subscribe(events.EventTypeMessageCreated, hub.HandleMessageCreated)

	// Ledger and withdrawal events are audit-logged
	eventBus.Subscribe(events.EventTypeBalanceChange, logBalanceChange)
	eventBus.Subscribe(events.EventTypeWithdrawalStateChange, logWithdrawalStateChange)

	// Initialize unit of work factory and services
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	mailer := notification.NewMailer(cfg)

	svcs := api.Services{
		Auth:         services.NewAuthService(uowFactory),
		Withdrawals:  services.NewWithdrawalService(uowFactory, mailer),
		Chat:         services.NewChatService(uowFactory),
		Investments:  services.NewInvestmentService(uowFactory),
		Staking:      services.NewStakingService(uowFactory),
		Users:        services.NewUserService(uowFactory),
		Transactions: services.NewTransactionService(uowFactory),
		Settings:     services.NewSettingsService(uowFactory),
	}

	// Initialize the HTTP server
	server := api.NewServer(cfg, svcs, hub)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	log.WithField("environment", cfg.Environment).Info("Server is running")

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

// seedAdminUser ensures the configured admin account exists. Reruns are
// no-ops; an existing username is left untouched, including its password.
func seedAdminUser(ctx context.Context, db *database.DB, cfg *config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	return db.WithTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO users (username, password, full_name, email, is_admin)
			VALUES ($1, $2, 'Administrator', '', TRUE)
			ON CONFLICT (username) DO NOTHING
		`, cfg.AdminUsername, string(hashed))
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			log.WithField("username", cfg.AdminUsername).Info("Admin account created")
		}
		return nil
	})
}

func logBalanceChange(_ context.Context, event events.Event) {
	e, ok := event.(events.BalanceChangeEvent)
	if !ok {
		return
	}
	log.WithFields(log.Fields{
		"userId":     e.UserID,
		"oldBalance": e.OldBalance,
		"newBalance": e.NewBalance,
		"type":       e.TransactionType,
	}).Info("Balance changed")
}

func logWithdrawalStateChange(_ context.Context, event events.Event) {
	e, ok := event.(events.WithdrawalStateChangeEvent)
	if !ok {
		return
	}
	log.WithFields(log.Fields{
		"withdrawalId": e.WithdrawalID,
		"userId":       e.UserID,
		"oldStatus":    e.OldStatus,
		"newStatus":    e.NewStatus,
	}).Info("Withdrawal state changed")
}
