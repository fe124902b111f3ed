package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/ryjtoh/mydevduck-api/internal/domain/repository"
)

// DecayTask is the periodic sweep that ages every live pet. It bypasses
// the pet service's per-pet entry points and writes storage directly, one
// page per transaction. A failed page aborts the remaining pages of that
// run; committed pages stay committed.
type DecayTask struct {
	Pets     repo.PetRepository
	Logger   *logrus.Logger
	Interval time.Duration
	PageSize int
}

func NewDecayTask(pets repo.PetRepository, logger *logrus.Logger, interval time.Duration, pageSize int) *DecayTask {
	return &DecayTask{Pets: pets, Logger: logger, Interval: interval, PageSize: pageSize}
}

// Run executes the decay pass on every tick until ctx is cancelled.
// Errors from a pass are logged and swallowed; the loop never dies.
func (t *DecayTask) Run(ctx context.Context) {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Logger.Info("pet stat decay task stopped")
			return
		case <-ticker.C:
			processed, deaths, err := t.RunOnce()
			if err != nil {
				t.Logger.WithError(err).WithFields(logrus.Fields{
					"processed": processed,
					"deaths":    deaths,
				}).Error("pet stat decay pass failed")
				continue
			}
			t.Logger.WithFields(logrus.Fields{
				"processed": processed,
				"deaths":    deaths,
			}).Info("pet stat decay pass completed")
		}
	}
}

// RunOnce performs a single decay pass over all live pets in pages.
// It returns the number of pets processed and the number of deaths.
func (t *DecayTask) RunOnce() (processed, deaths int, err error) {
	page := 0
	for {
		pets, err := t.Pets.FindAlive(t.PageSize, page*t.PageSize)
		if err != nil {
			return processed, deaths, err
		}
		if len(pets) == 0 {
			break
		}

		now := time.Now()
		for _, p := range pets {
			p.Hunger = max(0, p.Hunger-10)
			p.Happiness = max(0, p.Happiness-5)

			// Health decay based on the already-decremented stats; both
			// penalties can land in the same pass.
			if p.Hunger < 20 {
				p.Health = max(0, p.Health-5)
			}
			if p.Happiness < 20 {
				p.Health = max(0, p.Health-3)
			}

			if p.Health <= 0 {
				p.IsDead = true
				deaths++
				t.Logger.WithFields(logrus.Fields{
					"pet_id": p.ID,
					"name":   p.Name,
				}).Warn("pet has died")
			}

			p.UpdatedAt = now
			processed++
		}

		if err := t.Pets.UpdateAllTx(pets); err != nil {
			return processed, deaths, err
		}

		if len(pets) < t.PageSize {
			break
		}
		page++
	}
	return processed, deaths, nil
}
