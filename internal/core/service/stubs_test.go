package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/orius/cartorio-api/internal/core/domain"
)

// memAccountRepo mirrors the Postgres repository contract in memory.
type memAccountRepo struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]*domain.Account
	findErr error // returned by FindByID/FindByEmail when set
	listErr error
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{byID: make(map[int64]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func (r *memAccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *memAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, a := range r.byID {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memAccountRepo) List(_ context.Context, skip, limit int) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []*domain.Account{}
	for i := skip; i < len(ids) && len(out) < limit; i++ {
		out = append(out, cloneAccount(r.byID[ids[i]]))
	}
	return out, nil
}

func (r *memAccountRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	c := cloneAccount(a)
	c.ID = r.nextID
	r.byID[c.ID] = c
	return cloneAccount(c), nil
}

func (r *memAccountRepo) Update(_ context.Context, id int64, p domain.AccountPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if p.Email != nil {
		for _, other := range r.byID {
			if other.ID != id && other.Email == *p.Email {
				return domain.ErrEmailTaken
			}
		}
		a.Email = *p.Email
	}
	if p.FullName != nil {
		a.FullName = *p.FullName
	}
	if p.PasswordHash != nil {
		a.PasswordHash = *p.PasswordHash
	}
	return nil
}

func (r *memAccountRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.byID, id)
	return nil
}

// plainHasher keeps tests fast; the bcrypt hasher has its own tests.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(p, h string) bool       { return h == "hashed:"+p }

// countingThrottle blocks a key after max failures.
type countingThrottle struct {
	max      int
	failures map[string]int
	resets   int
}

func newCountingThrottle(max int) *countingThrottle {
	return &countingThrottle{max: max, failures: make(map[string]int)}
}

func (t *countingThrottle) Allow(_ context.Context, key string) (bool, error) {
	return t.failures[key] < t.max, nil
}

func (t *countingThrottle) Fail(_ context.Context, key string) error {
	t.failures[key]++
	return nil
}

func (t *countingThrottle) Reset(_ context.Context, key string) error {
	delete(t.failures, key)
	t.resets++
	return nil
}

type recordingAudit struct {
	entries []domain.AuditEntry
}

func (a *recordingAudit) Record(e domain.AuditEntry) { a.entries = append(a.entries, e) }

type stubTokens struct {
	issued []string
}

func (s *stubTokens) IssueAccessToken(subject string) (*domain.AccessToken, error) {
	s.issued = append(s.issued, subject)
	return &domain.AccessToken{Token: "token-" + subject, TokenType: "bearer"}, nil
}

func (s *stubTokens) Issue(subject, _ string, _ time.Duration) (string, time.Time, error) {
	return "token-" + subject, time.Time{}, nil
}

func (s *stubTokens) Decode(token string) (*domain.TokenClaims, error) {
	subject, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return &domain.TokenClaims{Type: domain.TokenTypeAccess, Subject: subject}, nil
}
