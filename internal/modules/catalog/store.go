// README: Catalog store backed by PostgreSQL.
package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListActiveItems returns the active inventory catalog ordered by category.
func (s *Store) ListActiveItems(ctx context.Context) ([]Item, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, category_key, name, default_volume_m3, labor_minutes_per_unit, is_heavy
        FROM catalog_items
        WHERE active
        ORDER BY category_key, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.CategoryKey, &it.Name,
			&it.DefaultVolumeM3, &it.LaborMinutesPerUnit, &it.IsHeavy,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetItem loads one catalog item by id.
func (s *Store) GetItem(ctx context.Context, id string) (Item, error) {
	var it Item
	err := s.db.QueryRow(ctx, `
        SELECT id, category_key, name, default_volume_m3, labor_minutes_per_unit, is_heavy
        FROM catalog_items
        WHERE id = $1`, id,
	).Scan(&it.ID, &it.CategoryKey, &it.Name, &it.DefaultVolumeM3, &it.LaborMinutesPerUnit, &it.IsHeavy)
	return it, err
}
