package repository

import (
	"context"
	"database/sql"

	"github.com/tmarkov/restaurant-manager/internal/model"
)

// RestaurantRepo reads the restaurant catalog shown on the landing page.
type RestaurantRepo struct{ DB *sql.DB }

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{DB: db} }

const qListRestaurants = "SELECT id, name, address, city, phone FROM restaurants ORDER BY name"

// List returns all restaurants ordered by name.
func (r *RestaurantRepo) List(ctx context.Context) ([]model.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, qListRestaurants)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Restaurant, 0)
	for rows.Next() {
		var m model.Restaurant
		if err := rows.Scan(&m.ID, &m.Name, &m.Address, &m.City, &m.Phone); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
