package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

// fakeStore holds users and events behind one mutex so the settlement fake
// can mutate both atomically, the way the real transaction does.
type fakeStore struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	events map[string]*domain.Event
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[string]*domain.User{},
		events: map[string]*domain.Event{},
	}
}

func (s *fakeStore) addUser(u domain.User) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		s.nextID++
		u.ID = "u" + strconv.Itoa(s.nextID)
	}
	s.users[u.ID] = &u
	return u.ID
}

func (s *fakeStore) addEvent(e domain.Event) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		s.nextID++
		e.ID = "e" + strconv.Itoa(s.nextID)
	}
	if e.EnrolledUsers == nil {
		e.EnrolledUsers = []string{}
	}
	s.events[e.ID] = &e
	return e.ID
}

func (s *fakeStore) user(id string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.users[id]
}

func (s *fakeStore) event(id string) domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := *s.events[id]
	e.EnrolledUsers = append([]string(nil), s.events[id].EnrolledUsers...)
	return e
}

// --- user repository ---

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.store.mu.Lock()
	for _, u := range r.store.users {
		if u.Email == user.Email {
			r.store.mu.Unlock()
			return nil, domain.ErrUserExists
		}
	}
	r.store.mu.Unlock()

	created := *user
	created.ID = r.store.addUser(created)
	return &created, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.store.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.store.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	users := make([]*domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		cp := *u
		users = append(users, &cp)
	}
	return users, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.users)), nil
}

func (r *fakeUserRepo) Deposit(ctx context.Context, userID string, amount float64) (float64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if u.Balance+amount > domain.BalanceCeiling {
		return 0, domain.ErrDepositLimit
	}
	u.Balance += amount
	return u.Balance, nil
}

// --- event repository ---

type fakeEventRepo struct {
	store *fakeStore
}

func (r *fakeEventRepo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	created := *e
	created.ID = r.store.addEvent(created)
	return &created, nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *e
	cp.EnrolledUsers = append([]string(nil), e.EnrolledUsers...)
	return &cp, nil
}

func (r *fakeEventRepo) List(ctx context.Context, filter ports.ListEventsFilter) ([]*domain.Event, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	matched := []*domain.Event{}
	for _, e := range r.store.events {
		if filter.CategoryID != "" && e.CategoryID != filter.CategoryID {
			continue
		}
		if filter.UpcomingOnly && e.Date.Before(time.Now()) {
			continue
		}
		cp := *e
		matched = append(matched, &cp)
	}
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[e.ID]; !ok {
		return domain.ErrEventNotFound
	}
	cp := *e
	r.store.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.store.events, id)
	return nil
}

func (r *fakeEventRepo) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.events)), nil
}

func (r *fakeEventRepo) CountUpcoming(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, e := range r.store.events {
		if !e.Date.Before(time.Now()) {
			n++
		}
	}
	return n, nil
}

func (r *fakeEventRepo) FindLatest(ctx context.Context, n int) ([]*domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	events := []*domain.Event{}
	for _, e := range r.store.events {
		cp := *e
		events = append(events, &cp)
		if len(events) == n {
			break
		}
	}
	return events, nil
}

// --- settlement ---

// fakeSettlementRepo applies the same conditions as the real transaction:
// membership, capacity, funds. conflicts > 0 makes the next calls fail with
// ErrSettlementConflict before touching anything, to exercise the retry loop.
type fakeSettlementRepo struct {
	store     *fakeStore
	conflicts int
	calls     int
}

func (r *fakeSettlementRepo) EnrollAndDebit(ctx context.Context, userID, eventID string, amount float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.calls++
	if r.conflicts > 0 {
		r.conflicts--
		return domain.ErrSettlementConflict
	}

	e, ok := r.store.events[eventID]
	if !ok {
		return domain.ErrSettlementConflict
	}
	for _, id := range e.EnrolledUsers {
		if id == userID {
			return domain.ErrSettlementConflict
		}
	}
	if e.Capacity > 0 && len(e.EnrolledUsers) >= e.Capacity {
		return domain.ErrSettlementConflict
	}

	if amount > 0 {
		u, ok := r.store.users[userID]
		if !ok || u.Balance < amount {
			return domain.ErrInsufficientFunds
		}
		u.Balance -= amount
	}
	e.EnrolledUsers = append(e.EnrolledUsers, userID)
	return nil
}

func (r *fakeSettlementRepo) UnenrollAndCredit(ctx context.Context, userID, eventID string, amount float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.calls++
	if r.conflicts > 0 {
		r.conflicts--
		return domain.ErrSettlementConflict
	}

	e, ok := r.store.events[eventID]
	if !ok {
		return domain.ErrSettlementConflict
	}
	found := false
	for i, id := range e.EnrolledUsers {
		if id == userID {
			e.EnrolledUsers = append(e.EnrolledUsers[:i], e.EnrolledUsers[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return domain.ErrSettlementConflict
	}

	if amount > 0 {
		u, ok := r.store.users[userID]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.Balance += amount
	}
	return nil
}

// --- locker ---

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (l *fakeLocker) Acquire(ctx context.Context, userID, eventID string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	key := userID + ":" + eventID
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, domain.ErrSettlementConflict
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
	}, nil
}

// --- ledger ---

type captureSink struct {
	mu      sync.Mutex
	entries []domain.LedgerEntry
}

func (s *captureSink) Record(entry domain.LedgerEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func (s *captureSink) all() []domain.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LedgerEntry(nil), s.entries...)
}

type fakeLedgerRepo struct {
	mu      sync.Mutex
	entries []*domain.LedgerEntry
}

func (r *fakeLedgerRepo) Insert(ctx context.Context, entry *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLedgerRepo) ListByUser(ctx context.Context, userID string) ([]*domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.LedgerEntry{}
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID == userID {
			cp := *r.entries[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- categories ---

type fakeCategoryRepo struct {
	mu     sync.Mutex
	cats   map[string]*domain.Category
	nextID int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{cats: map[string]*domain.Category{}}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.cats {
		if existing.Slug == c.Slug {
			return nil, domain.ErrCategoryExists
		}
	}
	r.nextID++
	created := *c
	created.ID = "c" + strconv.Itoa(r.nextID)
	r.cats[created.ID] = &created
	cp := created
	return &cp, nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cats[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Category{}
	for _, c := range r.cats {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cats[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	cp := *c
	r.cats[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cats[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.cats, id)
	return nil
}
