package model

import "time"

// Employee is the profile record linked one-to-one with a User. It is
// created together with the user at registration and owns the user's
// comments and reservations.
type Employee struct {
	ID          uint64     // employees.id
	FirstName   string     // employees.first_name
	Surname     string     // employees.surname
	Address     string     // employees.address
	DateOfBirth *time.Time // employees.date_of_birth (nullable)
	City        string     // employees.city
	Phone       string     // employees.phone
	Email       string     // employees.email
	CreatedAt   time.Time  // employees.created_at
	UpdatedAt   time.Time  // employees.updated_at
}

// Comment is a note an employee left for a restaurant.
type Comment struct {
	ID           uint64    // comments.id
	EmployeeID   uint64    // comments.employee_id
	RestaurantID uint64    // comments.restaurant_id
	Body         string    // comments.body
	CreatedAt    time.Time // comments.created_at
}

// Reservation is a table booking made by an employee.
type Reservation struct {
	ID          uint64    // reservations.id
	EmployeeID  uint64    // reservations.employee_id
	TableID     uint64    // reservations.table_id
	ReservedFor time.Time // reservations.reserved_for
	PartySize   uint32    // reservations.party_size
	Status      string    // reservations.status (PENDING, CONFIRMED, CANCELLED)
	CreatedAt   time.Time // reservations.created_at
}
