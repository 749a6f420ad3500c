package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Run()
}

// CronJob is a job with its own cron schedule.
type CronJob interface {
	Schedule() string
	Job
}

// TaskExecutor runs the background jobs on a cron. A job that is still
// running when its schedule fires again is skipped, not started twice.
type TaskExecutor struct {
	cron        *cron.Cron
	cronJobs    []CronJob
	runningJobs mapset.Set[CronJob]
	mu          sync.Mutex
}

func NewTaskExecutor(cronJobs []CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:        cron.New(),
		cronJobs:    cronJobs,
		runningJobs: mapset.NewSet[CronJob](),
	}
}

// Run registers the jobs with the cron and starts it. Each job runs in its
// own goroutine inside the cron.
func (t *TaskExecutor) Run() {
	for _, job := range t.cronJobs {
		err := t.cron.AddFunc(job.Schedule(), func() {
			t.mu.Lock()
			if t.runningJobs.Contains(job) {
				t.mu.Unlock()
				logrus.Warn("job is already running, skipping this tick")
				return
			}
			t.runningJobs.Add(job)
			t.mu.Unlock()

			defer func() {
				t.mu.Lock()
				defer t.mu.Unlock()
				t.runningJobs.Remove(job)
			}()

			job.Run()
		})

		if err != nil {
			logrus.Errorf("failed to add job to cron: %v", err)
			panic(err)
		}
	}

	t.cron.Start()
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all jobs")
	t.cron.Stop()
}
