package pipeline

import (
	"sync"
	"time"

	"github.com/narratorprep/mstat/internal/analyzer"
)

// JobStatus represents the state of an analysis job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single manuscript analysis.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Source   string    `json:"source,omitempty"`   // path or URL, empty for uploads
	Filename string    `json:"filename,omitempty"` // original name for uploads
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Error    string    `json:"error,omitempty"`

	Result *analyzer.Result `json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
}

// NewJob creates a queued job for a path/URL source.
func NewJob(source string) *Job {
	now := time.Now()
	return &Job{
		ID:        NewID(),
		Source:    source,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewUploadJob creates a queued job for uploaded document bytes.
func NewUploadJob(filename string, data []byte) *Job {
	job := NewJob("")
	job.Filename = filename
	job.fileData = data
	return job
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// SetResult records a completed analysis.
func (j *Job) SetResult(res *analyzer.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Result = res
	j.Status = StatusCompleted
	j.Phase = "done"
	j.UpdatedAt = time.Now()
}

// Fail records a fatal error.
func (j *Job) Fail(phase string, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusFailed
	j.Phase = phase
	j.Error = err.Error()
	j.UpdatedAt = time.Now()
}

// FileData returns the uploaded bytes, nil for path/URL jobs.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string           `json:"job_id"`
	Source   string           `json:"source,omitempty"`
	Filename string           `json:"filename,omitempty"`
	Status   JobStatus        `json:"status"`
	Phase    string           `json:"phase"`
	Error    string           `json:"error,omitempty"`
	Result   *analyzer.Result `json:"result,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:       j.ID,
		Source:   j.Source,
		Filename: j.Filename,
		Status:   j.Status,
		Phase:    j.Phase,
		Error:    j.Error,
		Result:   j.Result,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
