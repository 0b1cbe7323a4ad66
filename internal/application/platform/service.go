package platform

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/domain/shared"
)

// FanOutSettings bounds multi-account publishing
type FanOutSettings struct {
	// Parallelism caps concurrent per-account publishes
	Parallelism int
	// AccountTimeout bounds each account's publish attempt
	AccountTimeout time.Duration
}

const (
	defaultParallelism    = 4
	defaultAccountTimeout = 60 * time.Second
)

// normalized returns the settings with defaults applied
func (s FanOutSettings) normalized() FanOutSettings {
	if s.Parallelism <= 0 {
		s.Parallelism = defaultParallelism
	}
	if s.AccountTimeout <= 0 {
		s.AccountTimeout = defaultAccountTimeout
	}
	return s
}

// OrchestrationService coordinates platform adapters, local persistence and
// notifications. It performs no retries: transient failures surface to the
// caller, who owns retry policy.
type OrchestrationService struct {
	accounts  platform.AccountRepository
	contents  content.ContentItemRepository
	messages  content.DirectMessageRepository
	snapshots content.EngagementSnapshotRepository
	registry  platform.ClientRegistry
	events    shared.EventPublisher
	fanOut    FanOutSettings
	logger    *zap.Logger
}

// NewOrchestrationService creates a new OrchestrationService
func NewOrchestrationService(
	accounts platform.AccountRepository,
	contents content.ContentItemRepository,
	messages content.DirectMessageRepository,
	snapshots content.EngagementSnapshotRepository,
	registry platform.ClientRegistry,
	events shared.EventPublisher,
	fanOut FanOutSettings,
	logger *zap.Logger,
) *OrchestrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrchestrationService{
		accounts:  accounts,
		contents:  contents,
		messages:  messages,
		snapshots: snapshots,
		registry:  registry,
		events:    events,
		fanOut:    fanOut.normalized(),
		logger:    logger,
	}
}

// resolveClient loads the account and its cached platform client
func (s *OrchestrationService) resolveClient(ctx context.Context, accountID uuid.UUID) (*platform.Account, platform.Client, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if account == nil {
		return nil, nil, platform.ErrAccountNotFound
	}
	client, err := s.registry.GetOrCreate(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	return account, client, nil
}

// notify publishes events best-effort. A notification failure is logged
// and never propagated to the operation outcome.
func (s *OrchestrationService) notify(ctx context.Context, events ...shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("event_type", events[0].EventType()),
			zap.Error(err),
		)
	}
}
