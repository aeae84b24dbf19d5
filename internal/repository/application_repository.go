package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/recordhub/internal/model"
)

// ApplicationRepo encapsulates all database queries related to job
// applications.
type ApplicationRepo struct{ DB *sql.DB }

func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{DB: db} }

const applicationColumns = "id, user_id, company, position, status, date_applied, notes, created_at, updated_at"

func scanApplication(scan func(dest ...any) error) (*model.JobApplication, error) {
	var a model.JobApplication
	err := scan(&a.ID, &a.UserID, &a.Company, &a.Position, &a.Status, &a.DateApplied,
		&a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts an application and populates its ID and timestamps.
func (r *ApplicationRepo) Create(ctx context.Context, a *model.JobApplication) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO job_applications (user_id, company, position, status, date_applied, notes) VALUES (?,?,?,?,?,?)",
		a.UserID, a.Company, a.Position, a.Status, a.DateApplied, a.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM job_applications WHERE id=?", a.ID).
		Scan(&a.CreatedAt, &a.UpdatedAt)
}

// GetByID fetches an application by id regardless of owner.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uint64) (*model.JobApplication, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+applicationColumns+" FROM job_applications WHERE id=? LIMIT 1", id)
	return scanApplication(row.Scan)
}

// ListByOwner returns the owner's applications ordered by id with pagination.
func (r *ApplicationRepo) ListByOwner(ctx context.Context, ownerID uint64, skip, limit int) ([]*model.JobApplication, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+applicationColumns+" FROM job_applications WHERE user_id=? ORDER BY id LIMIT ? OFFSET ?",
		ownerID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

// Search filters the owner's applications by exact status and/or company
// substring.  Empty filter values are ignored.
func (r *ApplicationRepo) Search(ctx context.Context, ownerID uint64, status, company string) ([]*model.JobApplication, error) {
	q := "SELECT " + applicationColumns + " FROM job_applications WHERE user_id=?"
	args := []any{ownerID}
	if status != "" {
		q += " AND status=?"
		args = append(args, status)
	}
	if company != "" {
		q += " AND company LIKE ?"
		args = append(args, "%"+company+"%")
	}
	q += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func collectApplications(rows *sql.Rows) ([]*model.JobApplication, error) {
	var apps []*model.JobApplication
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// Update applies a patch to an application, field by field.  Status
// validation happens at the handler layer before this is called.
func (r *ApplicationRepo) Update(ctx context.Context, a *model.JobApplication, p model.JobApplicationPatch) error {
	if p.Company != nil {
		a.Company = *p.Company
	}
	if p.Position != nil {
		a.Position = *p.Position
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.DateApplied != nil {
		a.DateApplied = *p.DateApplied
	}
	if p.Notes != nil {
		a.Notes = p.Notes
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE job_applications SET company=?, position=?, status=?, date_applied=?, notes=? WHERE id=?",
		a.Company, a.Position, a.Status, a.DateApplied, a.Notes, a.ID)
	if err != nil {
		return err
	}
	return r.DB.QueryRowContext(ctx,
		"SELECT updated_at FROM job_applications WHERE id=?", a.ID).Scan(&a.UpdatedAt)
}

// Delete removes an application by id.
func (r *ApplicationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM job_applications WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
