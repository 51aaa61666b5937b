package store

import (
	"database/sql"
	"fmt"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
)

// nilIfEmpty returns nil if s is empty, otherwise returns s.
// Used for nullable database columns.
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// scanJob scans a Job from sql.Rows.
func scanJob(rows *sql.Rows) (models.Job, error) {
	var j models.Job
	var company sql.NullString
	err := rows.Scan(&j.ID, &j.Title, &company, &j.Description, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return j, fmt.Errorf("scan job failed: %w", err)
	}
	j.Company = company.String
	return j, nil
}

// scanJobRow scans a Job from a single sql.Row.
func scanJobRow(row *sql.Row) (models.Job, error) {
	var j models.Job
	var company sql.NullString
	err := row.Scan(&j.ID, &j.Title, &company, &j.Description, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return j, err
	}
	j.Company = company.String
	return j, nil
}

// scanResume scans a Resume from sql.Rows.
func scanResume(rows *sql.Rows) (models.Resume, error) {
	var r models.Resume
	err := rows.Scan(&r.ID, &r.Name, &r.Content, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return r, fmt.Errorf("scan resume failed: %w", err)
	}
	return r, nil
}

// scanResumeRow scans a Resume from a single sql.Row.
func scanResumeRow(row *sql.Row) (models.Resume, error) {
	var r models.Resume
	err := row.Scan(&r.ID, &r.Name, &r.Content, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return r, err
	}
	return r, nil
}

// scanDocument scans a GeneratedDocument from sql.Rows.
func scanDocument(rows *sql.Rows) (models.GeneratedDocument, error) {
	var d models.GeneratedDocument
	var jobID, resumeID sql.NullString
	var docType string
	err := rows.Scan(&d.ID, &jobID, &resumeID, &docType, &d.Flow, &d.Content, &d.CreatedAt)
	if err != nil {
		return d, fmt.Errorf("scan generated document failed: %w", err)
	}
	d.JobID = jobID.String
	d.ResumeID = resumeID.String
	d.Type = models.DocumentType(docType)
	return d, nil
}
