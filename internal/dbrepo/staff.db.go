package dbrepo

import (
	"context"
	"errors"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================== Staff Repository ==============================
type StaffRepo struct {
	db *pgxpool.Pool
}

func NewStaffRepo(db *pgxpool.Pool) *StaffRepo {
	return &StaffRepo{db: db}
}

// CreateStaff inserts a new back-office user
func (s *StaffRepo) CreateStaff(ctx context.Context, st *models.Staff) error {
	query := `
		INSERT INTO staff (name, role, status, email, password, mobile, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at;
	`
	return s.db.QueryRow(ctx, query,
		st.Name, st.Role, st.Status, st.Email, st.Password, st.Mobile,
	).Scan(&st.ID, &st.CreatedAt, &st.UpdatedAt)
}

// GetStaff fetches a staff user by ID
func (s *StaffRepo) GetStaff(ctx context.Context, id int) (*models.Staff, error) {
	query := `SELECT id, name, role, status, email, mobile, created_at, updated_at FROM staff WHERE id=$1`
	st := &models.Staff{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&st.ID, &st.Name, &st.Role, &st.Status, &st.Email, &st.Mobile, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("no staff user found")
		}
		return nil, err
	}
	return st, nil
}

// GetStaffByEmail fetches a staff user by email, password hash included
func (s *StaffRepo) GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	query := `SELECT id, name, role, status, email, password, mobile, created_at, updated_at FROM staff WHERE email=$1`
	st := &models.Staff{}
	err := s.db.QueryRow(ctx, query, email).Scan(
		&st.ID, &st.Name, &st.Role, &st.Status, &st.Email, &st.Password, &st.Mobile, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("no staff user found")
		}
		return nil, err
	}
	return st, nil
}

// UpdateStaffRole updates role and status
// Call this function if the role of the token user is admin
func (s *StaffRepo) UpdateStaffRole(ctx context.Context, st *models.Staff) error {
	query := `
		UPDATE staff
		SET role=$1, status=$2, updated_at=CURRENT_TIMESTAMP
		WHERE id=$3
		RETURNING updated_at;
	`
	return s.db.QueryRow(ctx, query, st.Role, st.Status, st.ID).Scan(&st.UpdatedAt)
}

// ListStaff fetches all staff users
func (s *StaffRepo) ListStaff(ctx context.Context) ([]*models.Staff, error) {
	query := `SELECT id, name, role, status, email, mobile, created_at, updated_at FROM staff ORDER BY id`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []*models.Staff
	for rows.Next() {
		var st models.Staff
		err := rows.Scan(&st.ID, &st.Name, &st.Role, &st.Status, &st.Email, &st.Mobile, &st.CreatedAt, &st.UpdatedAt)
		if err != nil {
			return nil, err
		}
		staff = append(staff, &st)
	}
	return staff, nil
}
