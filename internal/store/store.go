// Package store provides storage backends for CareerAI.
//
// It includes an in-memory store for development and tests, plus SQLite and
// PostgreSQL backed stores selected by driver at startup. The store holds the
// records the UI layer manages (job postings, resumes) and the generated
// documents the flows produce; the flow engine itself never touches storage.
package store

import (
	"sort"
	"sync"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
)

// Store defines the persistence operations shared by all backends. Getters
// return (nil, nil) when the record does not exist.
type Store interface {
	SaveJob(j models.Job) error
	GetJob(id string) (*models.Job, error)
	ListJobs() ([]models.Job, error)
	DeleteJob(id string) error

	SaveResume(r models.Resume) error
	GetResume(id string) (*models.Resume, error)
	ListResumes() ([]models.Resume, error)
	DeleteResume(id string) error

	SaveDocument(d models.GeneratedDocument) error
	ListDocuments(jobID string) ([]models.GeneratedDocument, error)

	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN    string
	Driver string
}

// Option defines a configuration option for store backends.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// InMemoryStore is a simple mutex-guarded store for development and tests.
type InMemoryStore struct {
	mu        sync.RWMutex
	jobs      map[string]models.Job
	resumes   map[string]models.Resume
	documents map[string]models.GeneratedDocument
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		jobs:      make(map[string]models.Job),
		resumes:   make(map[string]models.Resume),
		documents: make(map[string]models.GeneratedDocument),
	}
}

// SaveJob inserts or replaces a job posting.
func (s *InMemoryStore) SaveJob(j models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = j
	return nil
}

// GetJob retrieves a job posting by ID.
func (s *InMemoryStore) GetJob(id string) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

// ListJobs returns all job postings, newest first.
func (s *InMemoryStore) ListJobs() ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]models.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(i, k int) bool {
		if jobs[i].CreatedAt.Equal(jobs[k].CreatedAt) {
			return jobs[i].ID < jobs[k].ID
		}
		return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
	})
	return jobs, nil
}

// DeleteJob removes a job posting.
func (s *InMemoryStore) DeleteJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
	return nil
}

// SaveResume inserts or replaces a resume.
func (s *InMemoryStore) SaveResume(r models.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes[r.ID] = r
	return nil
}

// GetResume retrieves a resume by ID.
func (s *InMemoryStore) GetResume(id string) (*models.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resumes[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// ListResumes returns all resumes, newest first.
func (s *InMemoryStore) ListResumes() ([]models.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resumes := make([]models.Resume, 0, len(s.resumes))
	for _, r := range s.resumes {
		resumes = append(resumes, r)
	}
	sort.Slice(resumes, func(i, k int) bool {
		if resumes[i].CreatedAt.Equal(resumes[k].CreatedAt) {
			return resumes[i].ID < resumes[k].ID
		}
		return resumes[i].CreatedAt.After(resumes[k].CreatedAt)
	})
	return resumes, nil
}

// DeleteResume removes a resume.
func (s *InMemoryStore) DeleteResume(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resumes, id)
	return nil
}

// SaveDocument inserts or replaces a generated document.
func (s *InMemoryStore) SaveDocument(d models.GeneratedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[d.ID] = d
	return nil
}

// ListDocuments returns generated documents, newest first, filtered by job
// ID when one is given.
func (s *InMemoryStore) ListDocuments(jobID string) ([]models.GeneratedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]models.GeneratedDocument, 0, len(s.documents))
	for _, d := range s.documents {
		if jobID != "" && d.JobID != jobID {
			continue
		}
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, k int) bool {
		if docs[i].CreatedAt.Equal(docs[k].CreatedAt) {
			return docs[i].ID < docs[k].ID
		}
		return docs[i].CreatedAt.After(docs[k].CreatedAt)
	})
	return docs, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
