// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reimburse-desk/backend/config"
	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/application/usecase/approval"
	"github.com/reimburse-desk/backend/internal/application/usecase/event"
	"github.com/reimburse-desk/backend/internal/application/usecase/expense"
	"github.com/reimburse-desk/backend/internal/application/usecase/notification"
	"github.com/reimburse-desk/backend/internal/application/usecase/report"
	"github.com/reimburse-desk/backend/internal/application/usecase/tier"
	"github.com/reimburse-desk/backend/internal/application/usecase/wallet"
	"github.com/reimburse-desk/backend/internal/infra/server/router"
	"github.com/reimburse-desk/backend/internal/integration/adapters"
	"github.com/reimburse-desk/backend/internal/integration/cache"
	"github.com/reimburse-desk/backend/internal/integration/email"
	"github.com/reimburse-desk/backend/internal/integration/email/templates"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/controller"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/middleware"
	"github.com/reimburse-desk/backend/internal/integration/export"
	"github.com/reimburse-desk/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Redis        *redis.Client
	Router       *router.Router
	EmailWorker  *email.Worker
	RateLimiter  *middleware.RateLimiter
	TokenService adapter.TokenService
}

// Options overrides collaborators that tests replace.
type Options struct {
	Clock       adapter.Clock
	EmailSender adapter.EmailSender
	Analyzer    adapter.ReceiptAnalyzer
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case tiers are read straight from the
// database and report numbers come from the database sequence.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts Options) (*Injector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	adminRepo := persistence.NewAdminRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	reportRepo := persistence.NewReportRepository(db)
	eventRepo := persistence.NewEventRepository(db)
	deductionRepo := persistence.NewDeductionRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	notificationRepo := persistence.NewNotificationRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	var tierRepo adapter.TierRepository = persistence.NewTierRepository(db)
	if redisClient != nil {
		tierRepo = cache.NewTierCache(tierRepo, redisClient, cfg.Redis.TierTTL)
	}

	var sequence adapter.ReportSequence
	switch cfg.Sequence.Backend {
	case config.SequenceBackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("report sequence backend %q requires a redis client", cfg.Sequence.Backend)
		}
		sequence = cache.NewReportSequence(redisClient, reportRepo)
	default:
		sequence = persistence.NewReportSequence(db)
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	directory := adapters.NewPrincipalDirectory(userRepo, adminRepo)

	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = adapters.NewGeminiReceiptAnalyzer(cfg.Gemini.APIKey, cfg.Gemini.Model)
	}

	sender := opts.EmailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey != "" {
			resendClient, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.ResendBaseURL)
			if err != nil {
				return nil, err
			}
			sender = resendClient
		} else {
			zap.L().Warn("RESEND_API_KEY not set, emails are recorded but not delivered")
			sender = email.NewMockEmailSender()
		}
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		Retention:    cfg.Email.Retention,
	})

	notifier := notification.NewEmitter(notificationRepo, directory, emailService)
	exporter := export.NewExcelExporter(zap.L())

	// Create use cases
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, userRepo, analyzer, clock)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)

	createReportUseCase := report.NewCreateReportUseCase(expenseRepo, reportRepo, userRepo, tierRepo, eventRepo, sequence, notifier, clock)
	getReportUseCase := report.NewGetReportUseCase(reportRepo, expenseRepo, eventRepo, clock)
	listReportsUseCase := report.NewListReportsUseCase(reportRepo)
	updateReportUseCase := report.NewUpdateReportUseCase(expenseRepo, reportRepo, userRepo, tierRepo, eventRepo, sequence, notifier, clock)
	listApprovalsUseCase := report.NewListApprovalsUseCase(reportRepo, userRepo)
	exportUseCase := report.NewExportReimbursementsUseCase(reportRepo, userRepo, deductionRepo, exporter)

	decideUseCase := approval.NewDecideApprovalUseCase(reportRepo, userRepo, notifier, clock)
	reimburseUseCase := approval.NewReimburseUseCase(reportRepo, notifier, clock)

	getWalletUseCase := wallet.NewGetWalletUseCase(transactionRepo, deductionRepo, clock)
	getWalletUsedUseCase := wallet.NewGetWalletUsedUseCase(deductionRepo, clock)
	recordAdvanceUseCase := wallet.NewRecordAdvanceUseCase(transactionRepo, userRepo, clock)
	settleAdvanceUseCase := wallet.NewSettleAdvanceUseCase(transactionRepo, clock)
	recordDeductionUseCase := wallet.NewRecordDeductionUseCase(deductionRepo, userRepo, clock)

	createEventUseCase := event.NewCreateEventUseCase(eventRepo, clock)
	listEventsUseCase := event.NewListEventsUseCase(eventRepo, clock)

	listNotificationsUseCase := notification.NewListNotificationsUseCase(notificationRepo)
	markReadUseCase := notification.NewMarkReadUseCase(notificationRepo)

	getTierUseCase := tier.NewGetTierUseCase(tierRepo)
	upsertTierUseCase := tier.NewUpsertTierUseCase(tierRepo, clock)

	// Create controllers
	var cacheHealthChecker func() bool
	if redisClient != nil {
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker)

	controllers := router.Controllers{
		Health:       healthController,
		Expense:      controller.NewExpenseController(createExpenseUseCase, listExpensesUseCase),
		Report:       controller.NewReportController(createReportUseCase, getReportUseCase, listReportsUseCase, updateReportUseCase, exportUseCase),
		Approval:     controller.NewApprovalController(listApprovalsUseCase, decideUseCase, reimburseUseCase),
		Wallet:       controller.NewWalletController(getWalletUseCase, getWalletUsedUseCase, recordAdvanceUseCase, settleAdvanceUseCase, recordDeductionUseCase),
		Event:        controller.NewEventController(createEventUseCase, listEventsUseCase),
		Notification: controller.NewNotificationController(listNotificationsUseCase, markReadUseCase),
		Tier:         controller.NewTierController(getTierUseCase, upsertTierUseCase),
	}

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	rateLimit := cfg.Server.RateLimit
	if cfg.IsTestEnvironment() {
		rateLimit = 1000
	}
	rateLimiter := middleware.NewRateLimiter(rateLimit, time.Minute)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(controllers, rateLimiter, authMiddleware)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Redis:        redisClient,
		Router:       r,
		EmailWorker:  emailWorker,
		RateLimiter:  rateLimiter,
		TokenService: tokenService,
	}, nil
}
