package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ryjtoh/mydevduck-api/internal/domain/entity"
)

// In-memory stand-ins for the Redis-backed attempt store and the Postgres
// repositories. TTLs are ignored; tests drive state transitions directly.

type fakeAttemptStore struct {
	mu       sync.Mutex
	counters map[string]int64
	flags    map[string]bool
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{
		counters: make(map[string]int64),
		flags:    make(map[string]bool),
	}
}

func (f *fakeAttemptStore) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeAttemptStore) SetFlag(_ context.Context, key string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flags[key] = true
	return nil
}

func (f *fakeAttemptStore) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flags[key], nil
}

func (f *fakeAttemptStore) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.counters, k)
		delete(f.flags, k)
	}
	return nil
}

func (f *fakeAttemptStore) Get(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[key], nil
}

// erroringAttemptStore simulates an unavailable backing store: lockout
// reads succeed (nothing is locked) but every write fails.
type erroringAttemptStore struct{}

func (erroringAttemptStore) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("store unavailable")
}

func (erroringAttemptStore) SetFlag(context.Context, string, time.Duration) error {
	return errors.New("store unavailable")
}

func (erroringAttemptStore) Exists(context.Context, string) (bool, error) { return false, nil }

func (erroringAttemptStore) Delete(context.Context, ...string) error {
	return errors.New("store unavailable")
}

func (erroringAttemptStore) Get(context.Context, string) (int64, error) { return 0, nil }

type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return errors.New("duplicate email")
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakePetRepo struct {
	pets   map[string]*entity.Pet
	nextID int
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{pets: make(map[string]*entity.Pet)}
}

func (f *fakePetRepo) Create(p *entity.Pet) error {
	f.nextID++
	p.ID = fmt.Sprintf("pet-%d", f.nextID)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.pets[p.ID] = &cp
	return nil
}

func (f *fakePetRepo) GetByIDAndUser(id, userID string) (*entity.Pet, error) {
	p, ok := f.pets[id]
	if !ok || p.UserID != userID || p.DeletedAt != nil {
		return nil, errors.New("pet not found")
	}
	cp := *p
	return &cp, nil
}

func (f *fakePetRepo) Update(p *entity.Pet) error {
	if _, ok := f.pets[p.ID]; !ok {
		return errors.New("pet not found")
	}
	cp := *p
	f.pets[p.ID] = &cp
	return nil
}

func (f *fakePetRepo) SoftDelete(id string) error {
	p, ok := f.pets[id]
	if !ok || p.DeletedAt != nil {
		return errors.New("pet not found")
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

func (f *fakePetRepo) CountByUser(userID string) (int64, error) {
	var n int64
	for _, p := range f.pets {
		if p.UserID == userID && !p.IsDead && p.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (f *fakePetRepo) ExistsByUserAndName(userID, name string) (bool, error) {
	for _, p := range f.pets {
		if p.UserID == userID && p.Name == name && p.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePetRepo) FindNeedingAttention(userID string) ([]*entity.Pet, error) {
	var out []*entity.Pet
	for _, p := range f.pets {
		if p.UserID != userID || p.DeletedAt != nil || p.IsDead {
			continue
		}
		if p.Health < 30 || p.Happiness < 30 || p.Hunger < 30 {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePetRepo) FindAlive(limit, offset int) ([]*entity.Pet, error) {
	return nil, errors.New("not used")
}

func (f *fakePetRepo) UpdateAllTx(pets []*entity.Pet) error {
	for _, p := range pets {
		if err := f.Update(p); err != nil {
			return err
		}
	}
	return nil
}

type fakeActivityRepo struct {
	activities []*entity.Activity
	nextID     int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (f *fakeActivityRepo) Create(a *entity.Activity) error {
	f.nextID++
	a.ID = fmt.Sprintf("activity-%d", f.nextID)
	a.CreatedAt = time.Now()
	cp := *a
	f.activities = append(f.activities, &cp)
	return nil
}

func (f *fakeActivityRepo) ListByUser(userID string, limit int) ([]*entity.Activity, error) {
	var out []*entity.Activity
	for i := len(f.activities) - 1; i >= 0 && len(out) < limit; i-- {
		if f.activities[i].UserID == userID {
			cp := *f.activities[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}
