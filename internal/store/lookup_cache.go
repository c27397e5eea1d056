package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
)

const DefaultLookupTTL = 30 * 24 * time.Hour

// LookupCache keeps nutrition lookups keyed by normalized query text so that
// repeating a query does not hit the backend again.
type LookupCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewLookupCache(db *sql.DB, ttl time.Duration) *LookupCache {
	if ttl <= 0 {
		ttl = DefaultLookupTTL
	}
	return &LookupCache{db: db, ttl: ttl, now: time.Now}
}

func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

func (c *LookupCache) Get(ctx context.Context, query string) (model.NutritionLookup, bool, error) {
	var row model.NutritionLookup
	var qty sql.NullFloat64
	var unit sql.NullString
	var expiresAtRaw string
	err := c.db.QueryRowContext(ctx, `
SELECT food_name, calories, protein, carbs, fat, serving_qty, serving_unit, expires_at
FROM lookup_cache
WHERE query = ?
`, NormalizeQuery(query)).Scan(&row.FoodName, &row.Calories, &row.Protein, &row.Carbs, &row.Fat, &qty, &unit, &expiresAtRaw)
	if err == sql.ErrNoRows {
		return model.NutritionLookup{}, false, nil
	}
	if err != nil {
		return model.NutritionLookup{}, false, fmt.Errorf("lookup nutrition cache: %w", err)
	}
	expiresAt, err := time.Parse(time.RFC3339, expiresAtRaw)
	if err != nil {
		return model.NutritionLookup{}, false, fmt.Errorf("parse nutrition cache expiry: %w", err)
	}
	if c.now().After(expiresAt) {
		return model.NutritionLookup{}, false, nil
	}
	row.ServingQty = qty.Float64
	row.ServingUnit = unit.String
	row.FromCache = true
	return row, true, nil
}

func (c *LookupCache) Put(ctx context.Context, query string, l model.NutritionLookup) error {
	now := c.now()
	_, err := c.db.ExecContext(ctx, `
INSERT INTO lookup_cache(query, food_name, calories, protein, carbs, fat, serving_qty, serving_unit, fetched_at, expires_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(query) DO UPDATE SET
  food_name=excluded.food_name,
  calories=excluded.calories,
  protein=excluded.protein,
  carbs=excluded.carbs,
  fat=excluded.fat,
  serving_qty=excluded.serving_qty,
  serving_unit=excluded.serving_unit,
  fetched_at=excluded.fetched_at,
  expires_at=excluded.expires_at
`, NormalizeQuery(query), l.FoodName, l.Calories, l.Protein, l.Carbs, l.Fat, l.ServingQty, l.ServingUnit,
		now.Format(time.RFC3339), now.Add(c.ttl).Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert nutrition cache: %w", err)
	}
	return nil
}

func (c *LookupCache) Purge(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM lookup_cache`)
	if err != nil {
		return 0, fmt.Errorf("purge nutrition cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge nutrition cache rows affected: %w", err)
	}
	return n, nil
}
