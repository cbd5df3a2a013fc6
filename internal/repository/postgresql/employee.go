package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	"github.com/oidpl/workforce-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, name, code, mobile, password_hash, designation, department, active,
	profile_image, push_token, sharing_enabled,
	location_lat, location_lon, location_address, location_timestamp,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var lat, lon *float64
	var address *string
	var ts *time.Time

	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Code, &emp.Mobile, &emp.PasswordHash,
		&emp.Designation, &emp.Department, &emp.Active,
		&emp.ProfileImage, &emp.PushToken, &emp.SharingEnabled,
		&lat, &lon, &address, &ts,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if lat != nil && lon != nil && ts != nil {
		loc := employee.CurrentLocation{Latitude: *lat, Longitude: *lon, Timestamp: *ts}
		if address != nil {
			loc.Address = *address
		}
		emp.Location = &loc
	}

	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, name, code, mobile, password_hash, designation, department,
			active, profile_image, push_token, sharing_enabled
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID, emp.Name, emp.Code, emp.Mobile, emp.PasswordHash,
		emp.Designation, emp.Department, emp.Active,
		emp.ProfileImage, emp.PushToken, emp.SharingEnabled,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return emp, nil
}

// GetByMobile implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByMobile(ctx context.Context, mobile string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE mobile = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, mobile))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by mobile: %w", err)
	}

	return emp, nil
}

// ExistsByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee code: %w", err)
	}

	return exists, nil
}

// ExistsByMobile implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE mobile = $1)`, mobile).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee mobile: %w", err)
	}

	return exists, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, limit int) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name LIMIT $1`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET name = $1, code = $2, mobile = $3, designation = $4, department = $5,
			active = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		emp.Name, emp.Code, emp.Mobile, emp.Designation, emp.Department,
		emp.Active, emp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdatePassword implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateProfileImage implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateProfileImage(ctx context.Context, id string, path string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET profile_image = $1, updated_at = NOW() WHERE id = $2`,
		path, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdatePushToken implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdatePushToken(ctx context.Context, id string, token *string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET push_token = $1, updated_at = NOW() WHERE id = $2`,
		token, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// SetSharing implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SetSharing(ctx context.Context, id string, enabled bool) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET sharing_enabled = $1, updated_at = NOW() WHERE id = $2`,
		enabled, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set sharing flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// SetLocation implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SetLocation(ctx context.Context, id string, lat, lon float64, address string, ts time.Time) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET location_lat = $1, location_lon = $2, location_address = $3,
			location_timestamp = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, lat, lon, address, ts, id)
	if err != nil {
		return fmt.Errorf("failed to set current location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// ListSharingEnabled implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListSharingEnabled(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE sharing_enabled = TRUE`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sharing employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
