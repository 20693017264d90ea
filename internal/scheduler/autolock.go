// Package scheduler runs the periodic jobs of the service.
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// AutoLocker closes the previous month; usecase.LockUsecase satisfies it.
type AutoLocker interface {
	AutoLockPreviousMonth(now time.Time) (int64, error)
}

// StartAutoLock schedules the monthly auto-lock. An empty schedule disables it
// and returns nil. The caller stops the returned cron on shutdown.
func StartAutoLock(schedule string, locker AutoLocker) (*cron.Cron, error) {
	if schedule == "" {
		log.Printf("[AUTO-LOCK] AUTO_LOCK_CRON trống, bỏ qua tự động khóa sổ")
		return nil, nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		if _, err := locker.AutoLockPreviousMonth(time.Now()); err != nil {
			log.Printf("[AUTO-LOCK] error: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[AUTO-LOCK] started schedule=%q", schedule)
	c.Start()
	return c, nil
}
