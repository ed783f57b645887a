package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/omaradel73/zamazon-v2/internal/cache"
	"github.com/omaradel73/zamazon-v2/internal/domain"
	"github.com/omaradel73/zamazon-v2/internal/events"
	"github.com/omaradel73/zamazon-v2/internal/mailer"
	"github.com/omaradel73/zamazon-v2/internal/repository"
)

type mockProductRepo struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	seq      int
	err      error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]domain.Product)}
}

func (m *mockProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepo) Get(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductRepo) Insert(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.seq++
	p.ID = fmt.Sprintf("prod-%d", m.seq)
	m.products[p.ID] = *p
	return nil
}

func (m *mockProductRepo) InsertMany(ctx context.Context, products []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, p := range products {
		m.seq++
		p.ID = fmt.Sprintf("prod-%d", m.seq)
		m.products[p.ID] = p
	}
	return nil
}

func (m *mockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[p.ID] = *p
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.products)), nil
}

type mockAccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	seq      int
	err      error
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]domain.Account)}
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return &a, nil
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.accounts {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (m *mockAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAccountRepo) Insert(ctx context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.accounts {
		if existing.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.seq++
	a.ID = fmt.Sprintf("acc-%d", m.seq)
	m.accounts[a.ID] = *a
	return nil
}

func (m *mockAccountRepo) Update(ctx context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.accounts[a.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	m.accounts[a.ID] = *a
	return nil
}

func (m *mockAccountRepo) stored(id string) domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accounts[id]
}

type mockOrderRepo struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	seq    int
	err    error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]domain.Order)}
}

func (m *mockOrderRepo) Insert(ctx context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.seq++
	o.ID = fmt.Sprintf("order-%d", m.seq)
	o.CreatedAt = time.Now()
	m.orders[o.ID] = *o
	return nil
}

func (m *mockOrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return &o, nil
}

func (m *mockOrderRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Order, 0)
	for _, o := range m.orders {
		if o.AccountID == accountID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	o, ok := m.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

func (m *mockOrderRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepo) stored(id string) domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id]
}

type mockCatalogCache struct {
	mu          sync.RWMutex
	all         []domain.Product
	byID        map[string]domain.Product
	invalidated int
	getErr      error
}

func newMockCatalogCache() *mockCatalogCache {
	return &mockCatalogCache{byID: make(map[string]domain.Product)}
}

func (m *mockCatalogCache) GetAll(ctx context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.all == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.all, nil
}

func (m *mockCatalogCache) SetAll(ctx context.Context, products []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.all = products
	return nil
}

func (m *mockCatalogCache) Get(ctx context.Context, productID string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.byID[productID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return &p, nil
}

func (m *mockCatalogCache) Set(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[product.ID] = *product
	return nil
}

func (m *mockCatalogCache) Invalidate(ctx context.Context, productIDs ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated++
	m.all = nil
	for _, id := range productIDs {
		delete(m.byID, id)
	}
	return nil
}

// mockMailer records sends on a channel so tests can wait for the async
// dispatch goroutines.
type mockMailer struct {
	sent chan mailer.Message
	err  error
}

func newMockMailer() *mockMailer {
	return &mockMailer{sent: make(chan mailer.Message, 8)}
}

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent <- msg
	return nil
}

func (m *mockMailer) waitForMail(t *testing.T) mailer.Message {
	t.Helper()
	select {
	case msg := <-m.sent:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mail dispatch")
		return mailer.Message{}
	}
}

func (m *mockMailer) assertNoMail(t *testing.T) {
	t.Helper()
	select {
	case msg := <-m.sent:
		t.Fatalf("unexpected mail dispatched: %q", msg.Subject)
	case <-time.After(100 * time.Millisecond):
	}
}

type mockPublisher struct {
	published chan events.OrderEvent
	err       error
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{published: make(chan events.OrderEvent, 8)}
}

func (m *mockPublisher) Publish(ctx context.Context, event events.OrderEvent) error {
	if m.err != nil {
		return m.err
	}
	m.published <- event
	return nil
}

func (m *mockPublisher) waitForEvent(t *testing.T) events.OrderEvent {
	t.Helper()
	select {
	case event := <-m.published:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event publish")
		return events.OrderEvent{}
	}
}

type mockCooldown struct {
	mu      sync.Mutex
	allowed bool
	err     error
	calls   int
}

func (m *mockCooldown) Allow(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	return m.allowed, nil
}

func registerVerified(t *testing.T, svc *AuthService, accounts *mockAccountRepo, mail *mockMailer, email, password string) *domain.Account {
	t.Helper()
	account, err := svc.Register(context.Background(), "Test User", email, password)
	require.NoError(t, err)
	mail.waitForMail(t)

	code := accounts.stored(account.ID).VerificationCode
	require.NoError(t, svc.Verify(context.Background(), email, code))
	return account
}
