package cron

import (
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type entry struct {
	name string
	spec string
	job  cron.Job
}

// Manager owns the scheduler. Specs use the standard five-field syntax or a
// descriptor such as @daily.
type Manager struct {
	engine  *cron.Cron
	entries []entry
}

func NewCronManager() *Manager {
	return &Manager{engine: cron.New()}
}

// Add queues a job for RegisterJobs. An empty spec leaves the job disabled.
func (m *Manager) Add(name, spec string, job cron.Job) {
	if spec == "" {
		log.Info("cron job disabled", "job", name)
		return
	}
	m.entries = append(m.entries, entry{name: name, spec: spec, job: job})
}

func (m *Manager) RegisterJobs() error {
	for _, e := range m.entries {
		if _, err := m.engine.AddJob(e.spec, cron.NewChain(cron.Recover(cronLogger{})).Then(e.job)); err != nil {
			return err
		}
		log.Info("cron job registered", "job", e.name, "spec", e.spec)
	}
	return nil
}

// Len reports how many jobs are queued.
func (m *Manager) Len() int {
	return len(m.entries)
}

func (m *Manager) Start() {
	log.Info("cron scheduler started")
	m.engine.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (m *Manager) Stop() {
	<-m.engine.Stop().Done()
	log.Info("cron scheduler stopped")
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
