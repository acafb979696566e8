package cron

import (
	"context"
	"sync"
	"time"

	"github.com/wastebounty/backend/pkg/xcontext"
)

type CronJob interface {
	Do(context.Context)
	RunNow() bool
	Next() time.Time
}

// CronJobManager runs every registered job on its own schedule until the
// context is done or Stop is called.
type CronJobManager struct {
	mutex sync.Mutex
	wait  sync.WaitGroup
	jobs  []CronJob
	stop  chan struct{}
}

func NewCronJobManager() *CronJobManager {
	return &CronJobManager{stop: make(chan struct{})}
}

func (m *CronJobManager) Register(jobs ...CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.jobs = append(m.jobs, jobs...)
}

// Start blocks until every job loop has returned.
func (m *CronJobManager) Start(ctx context.Context) {
	xcontext.Logger(ctx).Infof("Cron job manager started")

	m.mutex.Lock()
	for _, job := range m.jobs {
		m.wait.Add(1)
		go m.loop(ctx, job)
	}
	m.mutex.Unlock()

	m.wait.Wait()
	xcontext.Logger(ctx).Infof("Cron job manager stopped")
}

func (m *CronJobManager) Stop() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
}

func (m *CronJobManager) loop(ctx context.Context, job CronJob) {
	defer m.wait.Done()

	if job.RunNow() {
		m.run(ctx, job)
	}

	for {
		timer := time.NewTimer(time.Until(job.Next()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-m.stop:
			timer.Stop()
			return
		case <-timer.C:
			m.run(ctx, job)
		}
	}
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	xcontext.Logger(ctx).Debugf("%T is running...", job)
	job.Do(ctx)
	xcontext.Logger(ctx).Debugf("%T ok", job)
}
