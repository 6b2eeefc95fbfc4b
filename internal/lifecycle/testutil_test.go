package lifecycle_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lu-nia/lostfound/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock ItemRepository — func fields, one per method
// ---------------------------------------------------------------------------

type mockItemRepo struct {
	insertFunc             func(ctx context.Context, item *domain.Item) error
	getByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	listFunc               func(ctx context.Context, filter domain.ItemFilter) ([]*domain.Item, error)
	listByOwnerAndTypeFunc func(ctx context.Context, ownerID uuid.UUID, lostReport bool) ([]*domain.Item, error)
	updateFunc             func(ctx context.Context, item *domain.Item) error
	deleteFunc             func(ctx context.Context, id uuid.UUID) error
	countByStatusFunc      func(ctx context.Context) (map[domain.ItemStatus]int, error)
}

func (m *mockItemRepo) Insert(ctx context.Context, item *domain.Item) error {
	return m.insertFunc(ctx, item)
}

func (m *mockItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockItemRepo) List(ctx context.Context, filter domain.ItemFilter) ([]*domain.Item, error) {
	return m.listFunc(ctx, filter)
}

func (m *mockItemRepo) ListByOwnerAndType(ctx context.Context, ownerID uuid.UUID, lostReport bool) ([]*domain.Item, error) {
	return m.listByOwnerAndTypeFunc(ctx, ownerID, lostReport)
}

func (m *mockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	return m.updateFunc(ctx, item)
}

func (m *mockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockItemRepo) CountByStatus(ctx context.Context) (map[domain.ItemStatus]int, error) {
	return m.countByStatusFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock AuditLog
// ---------------------------------------------------------------------------

type mockAuditLog struct {
	recordFunc     func(ctx context.Context, entry *domain.AuditEntry) error
	listByItemFunc func(ctx context.Context, itemID uuid.UUID) ([]*domain.AuditEntry, error)
}

func (m *mockAuditLog) Record(ctx context.Context, entry *domain.AuditEntry) error {
	return m.recordFunc(ctx, entry)
}

func (m *mockAuditLog) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.AuditEntry, error) {
	return m.listByItemFunc(ctx, itemID)
}

// passTx runs the function without any transactional scoping. Good enough for
// tests that only assert error propagation.
type passTx struct{}

func (passTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingNotifier counts event deliveries.
type recordingNotifier struct {
	created       int
	statusChanged int
	deleted       int
}

func (n *recordingNotifier) ItemCreated(context.Context, *domain.Item) {
	n.created++
}

func (n *recordingNotifier) ItemStatusChanged(context.Context, *domain.Item, domain.ItemStatus) {
	n.statusChanged++
}

func (n *recordingNotifier) ItemDeleted(context.Context, uuid.UUID) {
	n.deleted++
}

// ---------------------------------------------------------------------------
// In-memory store — implements ItemRepository, AuditLog and TxRunner with
// snapshot/rollback semantics so atomicity can actually be observed.
// ---------------------------------------------------------------------------

type memStore struct {
	mu      sync.Mutex
	items   map[uuid.UUID]*domain.Item
	entries []*domain.AuditEntry
	seq     int

	failNextRecord bool // inject a storage failure on the next audit append
}

func newMemStore() *memStore {
	return &memStore{items: make(map[uuid.UUID]*domain.Item)}
}

func (s *memStore) InTx(_ context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	snapshotItems := make(map[uuid.UUID]*domain.Item, len(s.items))
	for id, it := range s.items {
		cp := *it
		snapshotItems[id] = &cp
	}
	snapshotEntries := append([]*domain.AuditEntry(nil), s.entries...)
	s.mu.Unlock()

	if err := fn(context.Background()); err != nil {
		s.mu.Lock()
		s.items = snapshotItems
		s.entries = snapshotEntries
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) Insert(_ context.Context, item *domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (s *memStore) List(_ context.Context, filter domain.ItemFilter) ([]*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Item
	for _, it := range s.items {
		if filter.Status != "" && it.Status != filter.Status {
			continue
		}
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(it.Title+" "+it.Description), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) ListByOwnerAndType(_ context.Context, ownerID uuid.UUID, lostReport bool) ([]*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Item
	for _, it := range s.items {
		if it.OwnerID == ownerID && it.LostReport == lostReport {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memStore) Update(_ context.Context, item *domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *memStore) CountByStatus(_ context.Context) (map[domain.ItemStatus]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[domain.ItemStatus]int)
	for _, it := range s.items {
		counts[it.Status]++
	}
	return counts, nil
}

func (s *memStore) Record(_ context.Context, entry *domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNextRecord {
		s.failNextRecord = false
		return errors.New("memStore: simulated audit append failure")
	}
	cp := *entry
	s.seq++
	// Preserve insertion order even when the injected clock stands still.
	cp.CreatedAt = cp.CreatedAt.Add(time.Duration(s.seq) * time.Microsecond)
	s.entries = append(s.entries, &cp)
	return nil
}

func (s *memStore) ListByItem(_ context.Context, itemID uuid.UUID) ([]*domain.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.AuditEntry
	for _, e := range s.entries {
		if e.ItemID == itemID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
