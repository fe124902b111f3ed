package scheduler

import (
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryjtoh/mydevduck-api/internal/domain/entity"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakePetRepo serves FindAlive pages from a slice and records UpdateAllTx
// calls. Only the methods the decay task touches are meaningful.
type fakePetRepo struct {
	alive       []*entity.Pet
	updated     []*entity.Pet
	txCalls     int
	failOnPage  int // 1-based; 0 disables
	currentPage int
}

func (f *fakePetRepo) FindAlive(limit, offset int) ([]*entity.Pet, error) {
	if offset >= len(f.alive) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.alive) {
		end = len(f.alive)
	}
	out := make([]*entity.Pet, 0, end-offset)
	for _, p := range f.alive[offset:end] {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePetRepo) UpdateAllTx(pets []*entity.Pet) error {
	f.currentPage++
	if f.failOnPage > 0 && f.currentPage == f.failOnPage {
		return fmt.Errorf("tx failed on page %d", f.currentPage)
	}
	f.txCalls++
	f.updated = append(f.updated, pets...)
	return nil
}

func (f *fakePetRepo) Create(*entity.Pet) error                              { return nil }
func (f *fakePetRepo) GetByIDAndUser(string, string) (*entity.Pet, error)    { return nil, nil }
func (f *fakePetRepo) Update(*entity.Pet) error                              { return nil }
func (f *fakePetRepo) SoftDelete(string) error                               { return nil }
func (f *fakePetRepo) CountByUser(string) (int64, error)                     { return 0, nil }
func (f *fakePetRepo) ExistsByUserAndName(string, string) (bool, error)      { return false, nil }
func (f *fakePetRepo) FindNeedingAttention(string) ([]*entity.Pet, error)    { return nil, nil }

func pet(id string, health, happiness, hunger int) *entity.Pet {
	return &entity.Pet{ID: id, Name: id, Health: health, Happiness: happiness, Hunger: hunger}
}

func TestRunOnceBasicDecay(t *testing.T) {
	repo := &fakePetRepo{alive: []*entity.Pet{pet("p1", 100, 80, 60)}}
	task := NewDecayTask(repo, testLogger(), 0, 100)

	processed, deaths, err := task.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 0, deaths)

	require.Len(t, repo.updated, 1)
	p := repo.updated[0]
	assert.Equal(t, 50, p.Hunger)    // 60 - 10
	assert.Equal(t, 75, p.Happiness) // 80 - 5
	assert.Equal(t, 100, p.Health)   // no penalty above thresholds
	assert.False(t, p.IsDead)
}

func TestRunOnceHealthPenaltiesUsePostDecrementStats(t *testing.T) {
	// Hunger 25 decays to 15 (<20) and happiness 22 decays to 17 (<20), so
	// both health penalties land in the same pass: 30 - 5 - 3 = 22.
	repo := &fakePetRepo{alive: []*entity.Pet{pet("p1", 30, 22, 25)}}
	task := NewDecayTask(repo, testLogger(), 0, 100)

	_, deaths, err := task.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 0, deaths)

	p := repo.updated[0]
	assert.Equal(t, 15, p.Hunger)
	assert.Equal(t, 17, p.Happiness)
	assert.Equal(t, 22, p.Health)
}

func TestRunOnceStatsFloorAtZero(t *testing.T) {
	repo := &fakePetRepo{alive: []*entity.Pet{pet("p1", 100, 3, 4)}}
	task := NewDecayTask(repo, testLogger(), 0, 100)

	_, _, err := task.RunOnce()
	require.NoError(t, err)

	p := repo.updated[0]
	assert.Equal(t, 0, p.Hunger)
	assert.Equal(t, 0, p.Happiness)
	assert.Equal(t, 92, p.Health) // both penalties applied
}

func TestRunOnceMarksDeath(t *testing.T) {
	// Health 8 with both penalties due goes to 0 and the pet dies.
	repo := &fakePetRepo{alive: []*entity.Pet{pet("p1", 8, 10, 10)}}
	task := NewDecayTask(repo, testLogger(), 0, 100)

	processed, deaths, err := task.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, deaths)
	assert.True(t, repo.updated[0].IsDead)
	assert.Equal(t, 0, repo.updated[0].Health)
}

func TestRunOncePagesThroughAllPets(t *testing.T) {
	var alive []*entity.Pet
	for i := 0; i < 7; i++ {
		alive = append(alive, pet(fmt.Sprintf("p%d", i), 100, 80, 60))
	}
	repo := &fakePetRepo{alive: alive}
	task := NewDecayTask(repo, testLogger(), 0, 3)

	processed, deaths, err := task.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 7, processed)
	assert.Equal(t, 0, deaths)
	assert.Equal(t, 3, repo.txCalls) // pages of 3, 3, 1
	assert.Len(t, repo.updated, 7)
}

func TestRunOnceStopsOnPageError(t *testing.T) {
	var alive []*entity.Pet
	for i := 0; i < 6; i++ {
		alive = append(alive, pet(fmt.Sprintf("p%d", i), 100, 80, 60))
	}
	repo := &fakePetRepo{alive: alive, failOnPage: 2}
	task := NewDecayTask(repo, testLogger(), 0, 3)

	_, _, err := task.RunOnce()
	require.Error(t, err)
	// First page committed before the failure; later pages untouched.
	assert.Len(t, repo.updated, 3)
}
