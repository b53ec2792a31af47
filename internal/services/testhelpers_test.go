package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/repos"
	"github.com/clearbridge/clearbridge-backend/internal/strategy"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

type testEnv struct {
	db          *gorm.DB
	log         *logger.Logger
	clientRepo  repos.ClientRepo
	planRepo    repos.ActionPlanRepo
	seriesRepo  repos.PlanSeriesRepo
	diffRepo    repos.ActionPlanDiffRepo
	eventRepo   repos.DomainEventRepo
	events      DomainEventService
	provider    ClientContextProvider
	locks       *ClientLocks
	recommender PlanRecommenderService
	activation  ActivationService
	plans       PlanService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.Client{},
		&types.ActionPlan{},
		&types.PlanSeries{},
		&types.ActionPlanDiff{},
		&types.DomainEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{db: db, log: log}
	env.clientRepo = repos.NewClientRepo(db, log)
	env.planRepo = repos.NewActionPlanRepo(db, log)
	env.seriesRepo = repos.NewPlanSeriesRepo(db, log)
	env.diffRepo = repos.NewActionPlanDiffRepo(db, log)
	env.eventRepo = repos.NewDomainEventRepo(db, log)
	env.events = NewDomainEventService(db, log, env.eventRepo, nil)
	env.provider = NewClientContextProvider(db, log, env.clientRepo)
	env.locks = NewClientLocks()

	rules, err := strategy.LoadRules("")
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	env.recommender = NewPlanRecommenderService(db, log, env.planRepo, env.events, env.provider, strategy.NewRuleBasedBaseline(rules), env.locks)
	env.activation = NewActivationService(db, log, env.planRepo, env.seriesRepo, env.diffRepo, env.events, env.locks)
	env.plans = NewPlanService(db, log, env.planRepo, env.diffRepo)
	return env
}

func (e *testEnv) createClient(t *testing.T, riskScore, readiness float64) *types.Client {
	t.Helper()
	client := &types.Client{
		ID:               uuid.New(),
		Name:             "Test Client",
		Industry:         "manufacturing",
		RiskScore:        riskScore,
		ReadinessPercent: readiness,
	}
	if _, err := e.clientRepo.Create(context.Background(), nil, []*types.Client{client}); err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func (e *testEnv) countEvents(t *testing.T, eventType string) int {
	t.Helper()
	var count int64
	if err := e.db.Model(&types.DomainEvent{}).Where("event_type = ?", eventType).Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return int(count)
}

func (e *testEnv) countPlans(t *testing.T) int {
	t.Helper()
	var count int64
	if err := e.db.Model(&types.ActionPlan{}).Count(&count).Error; err != nil {
		t.Fatalf("count plans: %v", err)
	}
	return int(count)
}

type fakeStrategy struct {
	err      error
	proposal *types.PlanProposal
	calls    int
}

func (f *fakeStrategy) Name() string { return "fake" }

func (f *fakeStrategy) GeneratePlan(ctx context.Context, clientContext map[string]any) (*types.PlanProposal, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.proposal, nil
}

type fakeContextProvider struct {
	err     error
	context map[string]any
}

func (f *fakeContextProvider) LoadContext(ctx context.Context, clientID uuid.UUID) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.context, nil
}
