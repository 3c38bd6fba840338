package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/internal/domain/jobModel"
	"github.com/akolanti/DocRouter/internal/job"
)

// MockClassifier to track if jobs are executed
type MockClassifier struct {
	ProcessedCount int32
	OnClassify     func(ctx context.Context, content []byte, declaredType string, docID string, md documentModel.Metadata) (documentModel.ClassificationResult, error)
}

func (m *MockClassifier) Classify(ctx context.Context, content []byte, declaredType string, docID string, md documentModel.Metadata) (documentModel.ClassificationResult, error) {
	atomic.AddInt32(&m.ProcessedCount, 1)
	if m.OnClassify != nil {
		return m.OnClassify(ctx, content, declaredType, docID, md)
	}
	return documentModel.ClassificationResult{DocumentID: docID, FileType: documentModel.ContentType(declaredType)}, nil
}

type MockJobStore struct {
	mu   sync.Mutex
	jobs map[string]jobModel.Job
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobId]
	return j, ok
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, jobID)
}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.jobs == nil {
		m.jobs = map[string]jobModel.Job{}
	}
	m.jobs[j.Id] = j
	return nil
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWorkerPool_Flow(t *testing.T) {
	jobStore := &MockJobStore{}
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          jobStore,
	}
	var seenContent atomic.Value
	mockClassifier := &MockClassifier{
		OnClassify: func(ctx context.Context, content []byte, declaredType string, docID string, md documentModel.Metadata) (documentModel.ClassificationResult, error) {
			seenContent.Store(string(content))
			if declaredType == "csv" {
				return documentModel.ClassificationResult{}, &documentModel.UnsupportedTypeError{Type: declaredType}
			}
			return documentModel.ClassificationResult{DocumentID: docID, Intent: documentModel.IntentInvoice}, nil
		},
	}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	atomic.StoreInt64(&currentWorkerCount, 0)
	InitServices(jobSvc, mockClassifier)
	InitWorkerPool(stopChan, wg)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		jobSvc.DispatcherChannel <- true
		ok := waitFor(t, time.Second, func() bool { return atomic.LoadInt64(&currentWorkerCount) >= 2 })
		if !ok {
			t.Errorf("Expected at least 2 workers, got %d", atomic.LoadInt64(&currentWorkerCount))
		}
	})

	t.Run("Worker classifies a job", func(t *testing.T) {
		jobSvc.JobChannel <- jobModel.Job{
			Id:      "job-1",
			TraceId: "trace-1",
			Payload: jobModel.JobPayload{DocumentID: "doc-1", DeclaredType: "txt", Content: []byte("pay the invoice")},
		}

		ok := waitFor(t, time.Second, func() bool {
			j, found := jobStore.GetJob(context.Background(), "job-1")
			return found && j.Status == jobModel.JobStatusComplete
		})
		if !ok {
			t.Fatal("job did not complete")
		}
		j, _ := jobStore.GetJob(context.Background(), "job-1")
		if j.Result == nil || j.Result.Intent != documentModel.IntentInvoice {
			t.Errorf("Result = %+v", j.Result)
		}
		if j.Payload.Content != nil {
			t.Error("content persisted with job state")
		}
		if seenContent.Load() != "pay the invoice" {
			t.Errorf("classifier saw %v", seenContent.Load())
		}
	})

	t.Run("Failed classification is recorded", func(t *testing.T) {
		jobSvc.JobChannel <- jobModel.Job{
			Id:      "job-2",
			Payload: jobModel.JobPayload{DocumentID: "doc-2", DeclaredType: "csv"},
		}
		ok := waitFor(t, time.Second, func() bool {
			j, found := jobStore.GetJob(context.Background(), "job-2")
			return found && j.Status == jobModel.JobStatusError
		})
		if !ok {
			t.Fatal("job not marked as failed")
		}
		j, _ := jobStore.GetJob(context.Background(), "job-2")
		if j.Error.Code != 415 || j.Result != nil {
			t.Errorf("job = %+v", j)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		close(stopChan)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 1)
	idleTimeout = 50 * time.Millisecond

	jobSvc := &job.Service{JobChannel: make(chan jobModel.Job)}
	InitServices(jobSvc, &MockClassifier{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	createWorker()
	createWorker()

	ok := waitFor(t, 2*time.Second, func() bool { return atomic.LoadInt64(&currentWorkerCount) == 1 })
	if !ok {
		t.Errorf("idle worker should have retired down to the minimum, count is %d", atomic.LoadInt64(&currentWorkerCount))
	}

	time.Sleep(200 * time.Millisecond)
	if count := atomic.LoadInt64(&currentWorkerCount); count != 1 {
		t.Errorf("last worker must stay alive, count is %d", count)
	}

	close(stopChan)
	wg.Wait()
}
