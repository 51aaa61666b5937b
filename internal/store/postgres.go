// Package store provides storage backends for CareerAI.
//
// This file implements the PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
	_ "github.com/lib/pq"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore is a Store backed by PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running Postgres migrations")
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

// SaveJob inserts or replaces a job posting.
func (s *PostgresStore) SaveJob(j models.Job) error {
	_, err := s.db.Exec(
		`INSERT INTO jobs (id, title, company, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, company=EXCLUDED.company,
		   description=EXCLUDED.description, updated_at=EXCLUDED.updated_at`,
		j.ID, j.Title, nilIfEmpty(j.Company), j.Description, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// GetJob retrieves a job posting by ID, returning (nil, nil) when absent.
func (s *PostgresStore) GetJob(id string) (*models.Job, error) {
	row := s.db.QueryRow(`SELECT id, title, company, description, created_at, updated_at FROM jobs WHERE id = $1`, id)
	j, err := scanJobRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// ListJobs returns all job postings, newest first.
func (s *PostgresStore) ListJobs() ([]models.Job, error) {
	rows, err := s.db.Query(`SELECT id, title, company, description, created_at, updated_at FROM jobs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()
	var jobs []models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// DeleteJob removes a job posting.
func (s *PostgresStore) DeleteJob(id string) error {
	if _, err := s.db.Exec(`DELETE FROM jobs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// SaveResume inserts or replaces a resume.
func (s *PostgresStore) SaveResume(r models.Resume) error {
	_, err := s.db.Exec(
		`INSERT INTO resumes (id, name, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, content=EXCLUDED.content, updated_at=EXCLUDED.updated_at`,
		r.ID, r.Name, r.Content, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResume retrieves a resume by ID, returning (nil, nil) when absent.
func (s *PostgresStore) GetResume(id string) (*models.Resume, error) {
	row := s.db.QueryRow(`SELECT id, name, content, created_at, updated_at FROM resumes WHERE id = $1`, id)
	r, err := scanResumeRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// ListResumes returns all resumes, newest first.
func (s *PostgresStore) ListResumes() ([]models.Resume, error) {
	rows, err := s.db.Query(`SELECT id, name, content, created_at, updated_at FROM resumes ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()
	var resumes []models.Resume
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, r)
	}
	return resumes, rows.Err()
}

// DeleteResume removes a resume.
func (s *PostgresStore) DeleteResume(id string) error {
	if _, err := s.db.Exec(`DELETE FROM resumes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// SaveDocument inserts or replaces a generated document.
func (s *PostgresStore) SaveDocument(d models.GeneratedDocument) error {
	_, err := s.db.Exec(
		`INSERT INTO generated_documents (id, job_id, resume_id, doc_type, flow, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET content=EXCLUDED.content`,
		d.ID, nilIfEmpty(d.JobID), nilIfEmpty(d.ResumeID), string(d.Type), d.Flow, d.Content, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save generated document: %w", err)
	}
	return nil
}

// ListDocuments returns generated documents, newest first, filtered by job
// ID when one is given.
func (s *PostgresStore) ListDocuments(jobID string) ([]models.GeneratedDocument, error) {
	query := `SELECT id, job_id, resume_id, doc_type, flow, content, created_at FROM generated_documents`
	args := []interface{}{}
	if jobID != "" {
		query += ` WHERE job_id = $1`
		args = append(args, jobID)
	}
	query += ` ORDER BY created_at DESC, id`
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated documents: %w", err)
	}
	defer rows.Close()
	var docs []models.GeneratedDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
