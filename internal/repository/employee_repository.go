package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tmarkov/restaurant-manager/internal/model"
)

// EmployeeRepo reads employee profiles together with their comment and
// reservation relations for the personal-account page. All reads are
// display-only; nothing in this repository mutates state.
type EmployeeRepo struct{ DB *sql.DB }

func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{DB: db} }

const (
	qEmployeeByID = "SELECT id, first_name, surname, address, date_of_birth, city, phone, email, created_at, updated_at FROM employees WHERE id=? LIMIT 1"

	qCommentsOfEmployee = "SELECT c.id, c.body, c.created_at, r.name FROM comments c JOIN restaurants r ON r.id=c.restaurant_id WHERE c.employee_id=? ORDER BY c.created_at DESC"

	qReservationsOfEmployee = "SELECT res.id, res.reserved_for, res.party_size, res.status, t.number, t.seats, r.name FROM reservations res JOIN tables t ON t.id=res.table_id JOIN restaurants r ON r.id=t.restaurant_id WHERE res.employee_id=? ORDER BY res.reserved_for DESC"
)

// CommentView is a comment joined with the restaurant it was left for.
type CommentView struct {
	ID             uint64
	Body           string
	CreatedAt      time.Time
	RestaurantName string
}

// ReservationView is a reservation joined with its table and the table's
// restaurant.
type ReservationView struct {
	ID             uint64
	ReservedFor    time.Time
	PartySize      uint32
	Status         string
	TableNumber    uint32
	TableSeats     uint32
	RestaurantName string
}

// Profile is the flat personal-account projection: the employee's own
// fields plus their comments and reservations.
type Profile struct {
	FirstName    string
	Surname      string
	Address      string
	DateOfBirth  *time.Time
	City         string
	Phone        string
	Email        string
	Comments     []CommentView
	Reservations []ReservationView
}

// GetProfile fetches exactly one employee with its comments (each joined to
// its restaurant) and reservations (each joined to its table and the
// table's restaurant). Returns ErrNotFound when the employee does not exist.
func (r *EmployeeRepo) GetProfile(ctx context.Context, employeeID uint64) (Profile, error) {
	var (
		p   Profile
		emp model.Employee
		dob sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, qEmployeeByID, employeeID).Scan(
		&emp.ID, &emp.FirstName, &emp.Surname, &emp.Address, &dob,
		&emp.City, &emp.Phone, &emp.Email, &emp.CreatedAt, &emp.UpdatedAt)
	if err == sql.ErrNoRows {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	p.FirstName = emp.FirstName
	p.Surname = emp.Surname
	p.Address = emp.Address
	p.City = emp.City
	p.Phone = emp.Phone
	p.Email = emp.Email
	if dob.Valid {
		t := dob.Time
		p.DateOfBirth = &t
	}

	if p.Comments, err = r.commentsOf(ctx, employeeID); err != nil {
		return Profile{}, err
	}
	if p.Reservations, err = r.reservationsOf(ctx, employeeID); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (r *EmployeeRepo) commentsOf(ctx context.Context, employeeID uint64) ([]CommentView, error) {
	rows, err := r.DB.QueryContext(ctx, qCommentsOfEmployee, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CommentView, 0)
	for rows.Next() {
		var c CommentView
		if err := rows.Scan(&c.ID, &c.Body, &c.CreatedAt, &c.RestaurantName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *EmployeeRepo) reservationsOf(ctx context.Context, employeeID uint64) ([]ReservationView, error) {
	rows, err := r.DB.QueryContext(ctx, qReservationsOfEmployee, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReservationView, 0)
	for rows.Next() {
		var v ReservationView
		if err := rows.Scan(&v.ID, &v.ReservedFor, &v.PartySize, &v.Status,
			&v.TableNumber, &v.TableSeats, &v.RestaurantName); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
