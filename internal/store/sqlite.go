// Package store provides storage backends for CareerAI.
//
// This file implements the SQLite-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Constants for SQLite store configuration
const (
	// DefaultDirPermissions defines the default permissions for database directories
	DefaultDirPermissions = 0755
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore is a Store backed by a local SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running SQLite migrations")
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

// SaveJob inserts or replaces a job posting.
func (s *SQLiteStore) SaveJob(j models.Job) error {
	_, err := s.db.Exec(
		`INSERT INTO jobs (id, title, company, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title=excluded.title, company=excluded.company,
		   description=excluded.description, updated_at=excluded.updated_at`,
		j.ID, j.Title, nilIfEmpty(j.Company), j.Description, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// GetJob retrieves a job posting by ID, returning (nil, nil) when absent.
func (s *SQLiteStore) GetJob(id string) (*models.Job, error) {
	row := s.db.QueryRow(`SELECT id, title, company, description, created_at, updated_at FROM jobs WHERE id = ?`, id)
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
func (s *SQLiteStore) ListJobs() ([]models.Job, error) {
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
func (s *SQLiteStore) DeleteJob(id string) error {
	if _, err := s.db.Exec(`DELETE FROM jobs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// SaveResume inserts or replaces a resume.
func (s *SQLiteStore) SaveResume(r models.Resume) error {
	_, err := s.db.Exec(
		`INSERT INTO resumes (id, name, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, content=excluded.content, updated_at=excluded.updated_at`,
		r.ID, r.Name, r.Content, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResume retrieves a resume by ID, returning (nil, nil) when absent.
func (s *SQLiteStore) GetResume(id string) (*models.Resume, error) {
	row := s.db.QueryRow(`SELECT id, name, content, created_at, updated_at FROM resumes WHERE id = ?`, id)
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
func (s *SQLiteStore) ListResumes() ([]models.Resume, error) {
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
func (s *SQLiteStore) DeleteResume(id string) error {
	if _, err := s.db.Exec(`DELETE FROM resumes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// SaveDocument inserts or replaces a generated document.
func (s *SQLiteStore) SaveDocument(d models.GeneratedDocument) error {
	_, err := s.db.Exec(
		`INSERT INTO generated_documents (id, job_id, resume_id, doc_type, flow, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET content=excluded.content`,
		d.ID, nilIfEmpty(d.JobID), nilIfEmpty(d.ResumeID), string(d.Type), d.Flow, d.Content, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save generated document: %w", err)
	}
	return nil
}

// ListDocuments returns generated documents, newest first, filtered by job
// ID when one is given.
func (s *SQLiteStore) ListDocuments(jobID string) ([]models.GeneratedDocument, error) {
	query := `SELECT id, job_id, resume_id, doc_type, flow, content, created_at FROM generated_documents`
	args := []interface{}{}
	if jobID != "" {
		query += ` WHERE job_id = ?`
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
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
