package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sevigo/review-warden/internal/core"
)

// MemoryStore is a process-local Store used by dry runs and tests.
// Records are copied in and out so callers never share slices with the store.
type MemoryStore struct {
	mu     sync.Mutex
	rules  []core.ReviewRule
	prs    map[string]core.PullRequest
	nextID int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prs: make(map[string]core.PullRequest)}
}

var _ Store = (*MemoryStore)(nil)

func prKey(repository, number string) string {
	return repository + "#" + number
}

func (m *MemoryStore) ForRepository(_ context.Context, repository string) ([]core.ReviewRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []core.ReviewRule{}
	for _, r := range m.rules {
		if r.Repository == repository {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) ListRules(_ context.Context) ([]core.ReviewRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.rules), nil
}

func (m *MemoryStore) CreateRule(_ context.Context, rule *core.ReviewRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	now := time.Now()
	rule.ID, rule.CreatedAt, rule.UpdatedAt = m.nextID, now, now
	m.rules = append(m.rules, *rule)
	return nil
}

func (m *MemoryStore) DeleteRule(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.rules, func(r core.ReviewRule) bool { return r.ID == id })
	if idx < 0 {
		return fmt.Errorf("rule %d: %w", id, ErrNotFound)
	}
	m.rules = slices.Delete(m.rules, idx, idx+1)
	return nil
}

func (m *MemoryStore) GetPullRequest(_ context.Context, repository, number string) (*core.PullRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pr, ok := m.prs[prKey(repository, number)]
	if !ok {
		return nil, fmt.Errorf("pull request %s#%s: %w", repository, number, ErrNotFound)
	}
	return clonePR(pr), nil
}

func (m *MemoryStore) FindOrCreatePullRequest(_ context.Context, repository, number string) (*core.PullRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := prKey(repository, number)
	pr, ok := m.prs[key]
	if !ok {
		m.nextID++
		now := time.Now()
		pr = core.PullRequest{ID: m.nextID, Repository: repository, Number: number, CreatedAt: now, UpdatedAt: now}
		m.prs[key] = pr
	}
	return clonePR(pr), nil
}

func (m *MemoryStore) SavePullRequest(_ context.Context, pr *core.PullRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := prKey(pr.Repository, pr.Number)
	if existing, ok := m.prs[key]; ok {
		pr.ID, pr.CreatedAt = existing.ID, existing.CreatedAt
	} else {
		m.nextID++
		pr.ID, pr.CreatedAt = m.nextID, time.Now()
	}
	pr.UpdatedAt = time.Now()
	m.prs[key] = *clonePR(*pr)
	return nil
}

func clonePR(pr core.PullRequest) *core.PullRequest {
	pr.PendingReviews = slices.Clone(pr.PendingReviews)
	pr.CompletedReviews = slices.Clone(pr.CompletedReviews)
	return &pr
}
