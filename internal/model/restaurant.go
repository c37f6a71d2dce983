package model

// Restaurant is a venue managed by the application.
type Restaurant struct {
	ID      uint64 // restaurants.id
	Name    string // restaurants.name
	Address string // restaurants.address
	City    string // restaurants.city
	Phone   string // restaurants.phone
}

// Table is a bookable table inside a restaurant.
type Table struct {
	ID           uint64 // tables.id
	RestaurantID uint64 // tables.restaurant_id
	Number       uint32 // tables.number
	Seats        uint32 // tables.seats
}
