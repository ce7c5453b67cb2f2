// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/config"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/infra/dependency"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
	"github.com/reimburse-desk/backend/test/integration/mock"
)

// account is a user or admin created by a scenario.
type account struct {
	id   uuid.UUID
	role entity.Role
}

// testContext holds the state of one scenario.
type testContext struct {
	db       *mock.Db
	redis    *mock.Redis
	clock    *mock.Time
	resend   *mock.ApiMock
	injector *dependency.Injector
	server   *httptest.Server

	token        string
	status       int
	responseBody []byte

	accounts map[string]account
	tiers    map[string]*entity.Tier
	saved    map[string]string
}

type contextKey struct{}

func getTestContext(ctx context.Context) (*testContext, error) {
	if tc, ok := ctx.Value(contextKey{}).(*testContext); ok {
		return tc, nil
	}
	return nil, fmt.Errorf("test context not found")
}

// Suite-wide fakes, shared by every scenario and reset between them.
var (
	sharedDB     *mock.Db
	sharedRedis  *mock.Redis
	sharedResend *mock.ApiMock
)

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		sharedDB = mock.NewDb(model.All()...)
		sharedRedis = mock.NewRedis()
		sharedResend = mock.NewApiServer()
	})

	ctx.AfterSuite(func() {
		sharedResend.Close()
		sharedRedis.Close()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return context.WithValue(ctx, contextKey{}, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc, lookupErr := getTestContext(ctx); lookupErr == nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerFixtureSteps(ctx)
	registerRequestSteps(ctx)
	registerResponseSteps(ctx)
	registerStorageSteps(ctx)
}

func newTestContext() (*testContext, error) {
	if err := sharedDB.Clear(); err != nil {
		return nil, err
	}
	sharedRedis.Clear()
	sharedResend.Reset()

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	clock := mock.NewTime()
	injector, err := dependency.NewInjector(cfg, sharedDB.Conn, sharedRedis.Client, dependency.Options{
		Clock: clock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wire application: %w", err)
	}

	return &testContext{
		db:       sharedDB,
		redis:    sharedRedis,
		clock:    clock,
		resend:   sharedResend,
		injector: injector,
		server:   httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
		accounts: map[string]account{},
		tiers:    map[string]*entity.Tier{},
		saved:    map[string]string{},
	}, nil
}

// loadConfig goes through the regular configuration loader so the environment
// bindings are covered too.
func loadConfig() (*config.Config, error) {
	env := map[string]string{
		"ENV":                     "test",
		"DATABASE_DRIVER":         config.DriverSQLite,
		"JWT_SECRET":              "integration-secret",
		"REDIS_URL":               sharedRedis.URL(),
		"REPORT_SEQUENCE_BACKEND": config.SequenceBackendRedis,
		"RESEND_API_KEY":          "re_test",
		"RESEND_BASE_URL":         sharedResend.URL(),
		"RESEND_FROM_EMAIL":       "noreply@reimburse.test",
		"GEMINI_API_KEY":          "",
	}
	for key, value := range env {
		if err := os.Setenv(key, value); err != nil {
			return nil, err
		}
	}
	return config.Load()
}
