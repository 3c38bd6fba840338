package job

import (
	"sync/atomic"

	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/domain/jobModel"
)

// Service is the queue side of the pipeline: handlers push jobs onto JobChannel
// and the worker pool drains it, growing when DispatcherChannel is signalled.
type Service struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
	workerEvery       int64
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
	// WorkerEvery is how many queued jobs earn one extra worker. Zero means config.RequestsPerNewWorkerCount.
	WorkerEvery int64
}

func InitJobService(cfg ServiceConfig) *Service {
	every := cfg.WorkerEvery
	if every <= 0 {
		every = config.RequestsPerNewWorkerCount
	}
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
		workerEvery:       every,
	}
}

// CountQueued bumps the request counter and reports whether this job crossed a
// scale-up boundary.
func (s *Service) CountQueued() (int64, bool) {
	count := atomic.AddInt64(&s.RequestCount, 1)
	return count, count%s.workerEvery == 0
}

// SignalDispatcher asks for one more worker without blocking. It returns false
// when an earlier signal is still pending.
func (s *Service) SignalDispatcher() bool {
	select {
	case s.DispatcherChannel <- true:
		return true
	default:
		return false
	}
}
