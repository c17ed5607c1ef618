package catalogcache

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zoukba0014/personal-shopper-optimal/internal/catalogload"
)

// PgLoader is a Loader backed by a catalogue_offers table, one row per
// (region, store, product) offer:
//
//	CREATE TABLE catalogue_offers (
//	    region      text    NOT NULL,
//	    store_id    text    NOT NULL,
//	    store_x     double precision NOT NULL,
//	    store_y     double precision NOT NULL,
//	    product_id  text    NOT NULL,
//	    product_name text   NOT NULL,
//	    unit_cost   double precision NOT NULL,
//	    quantity    integer NOT NULL
//	);
//
// adapted from the teacher's pgxpool-backed database package (internal/database/db.go).
type PgLoader struct {
	pool *pgxpool.Pool
}

// NewPgLoader wraps an already-connected pool.
func NewPgLoader(pool *pgxpool.Pool) *PgLoader {
	return &PgLoader{pool: pool}
}

// LoadRegion fetches every catalogue offer row for a region inside a single
// read-only transaction, mirroring the teacher's loadChainSnapshot: a
// region's offers must be read as one consistent snapshot, not row-by-row
// against a table that could be mutated mid-scan.
func (l *PgLoader) LoadRegion(ctx context.Context, region string) ([]catalogload.Row, error) {
	tx, err := l.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("catalogcache: begin region %s transaction: %w", region, err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT store_id, store_x, store_y, product_id, product_name, unit_cost, quantity
		FROM catalogue_offers
		WHERE region = $1
	`, region)
	if err != nil {
		return nil, fmt.Errorf("catalogcache: query region %s: %w", region, err)
	}
	defer rows.Close()

	var out []catalogload.Row
	for rows.Next() {
		var r catalogload.Row
		if err := rows.Scan(&r.StoreID, &r.StoreX, &r.StoreY, &r.ProductID, &r.Product, &r.UnitCost, &r.Quantity); err != nil {
			return nil, fmt.Errorf("catalogcache: scan region %s row: %w", region, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalogcache: iterate region %s rows: %w", region, err)
	}
	return out, nil
}
