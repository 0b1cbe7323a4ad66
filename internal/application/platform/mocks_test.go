package platform

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/domain/shared"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*platform.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platform.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]platform.Account, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]platform.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByKind(ctx context.Context, kind platform.Kind) ([]platform.Account, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]platform.Account), args.Error(1)
}

func (m *MockAccountRepository) FindActive(ctx context.Context) ([]platform.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]platform.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *platform.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockContentItemRepository is a mock implementation of ContentItemRepository
type MockContentItemRepository struct {
	mock.Mock
}

func (m *MockContentItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.ContentItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.ContentItem), args.Error(1)
}

func (m *MockContentItemRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]content.ContentItem, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.ContentItem), args.Error(1)
}

func (m *MockContentItemRepository) FindPublishedByAccount(ctx context.Context, accountID uuid.UUID) ([]content.ContentItem, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.ContentItem), args.Error(1)
}

func (m *MockContentItemRepository) Save(ctx context.Context, item *content.ContentItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockDirectMessageRepository is a mock implementation of DirectMessageRepository
type MockDirectMessageRepository struct {
	mock.Mock
}

func (m *MockDirectMessageRepository) Upsert(ctx context.Context, msg *content.DirectMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockDirectMessageRepository) Insert(ctx context.Context, msg *content.DirectMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockDirectMessageRepository) FindByExternalID(ctx context.Context, kind platform.Kind, externalID string) (*content.DirectMessage, error) {
	args := m.Called(ctx, kind, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.DirectMessage), args.Error(1)
}

func (m *MockDirectMessageRepository) FindByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]content.DirectMessage, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.DirectMessage), args.Error(1)
}

func (m *MockDirectMessageRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEngagementSnapshotRepository is a mock implementation of EngagementSnapshotRepository
type MockEngagementSnapshotRepository struct {
	mock.Mock
}

func (m *MockEngagementSnapshotRepository) Append(ctx context.Context, snapshot *content.EngagementSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockEngagementSnapshotRepository) FindByContent(ctx context.Context, contentID uuid.UUID) ([]content.EngagementSnapshot, error) {
	args := m.Called(ctx, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.EngagementSnapshot), args.Error(1)
}

func (m *MockEngagementSnapshotRepository) CountByContent(ctx context.Context, contentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, contentID)
	return args.Get(0).(int64), args.Error(1)
}

// stubRegistry serves preassigned clients per account
type stubRegistry struct {
	mu      sync.Mutex
	clients map[uuid.UUID]platform.Client
	errs    map[uuid.UUID]error
	evicted []uuid.UUID
}

func newStubRegistry() *stubRegistry {
	return &stubRegistry{
		clients: make(map[uuid.UUID]platform.Client),
		errs:    make(map[uuid.UUID]error),
	}
}

func (r *stubRegistry) put(accountID uuid.UUID, client platform.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[accountID] = client
}

func (r *stubRegistry) fail(accountID uuid.UUID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[accountID] = err
}

func (r *stubRegistry) GetOrCreate(_ context.Context, account *platform.Account) (platform.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.errs[account.ID]; ok {
		return nil, err
	}
	client, ok := r.clients[account.ID]
	if !ok {
		return nil, platform.ErrAccountNotFound
	}
	return client, nil
}

func (r *stubRegistry) Evict(accountID uuid.UUID, _ platform.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evicted = append(r.evicted, accountID)
}

func (r *stubRegistry) EvictAll() {}

// capturingPublisher records published events and can be scripted to fail
type capturingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) published() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

func (p *capturingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}
