package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS networks (
	bssid       TEXT PRIMARY KEY,
	ssid        TEXT NOT NULL,
	channel     INTEGER NOT NULL,
	rssi        INTEGER NOT NULL,
	lat         REAL,
	lon         REAL,
	imported_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_networks_rssi ON networks(rssi);
`

// Catalog is the local archive of every surveyed network the import tooling
// has seen, independent of which roster files it was split into.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog opens (and if needed initializes) a catalog database.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Upsert records networks, replacing earlier imports of the same BSSID.
func (c *Catalog) Upsert(ctx context.Context, nets []Network) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO networks (bssid, ssid, channel, rssi, lat, lon, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(bssid) DO UPDATE SET
			ssid = excluded.ssid,
			channel = excluded.channel,
			rssi = excluded.rssi,
			lat = excluded.lat,
			lon = excluded.lon,
			imported_at = excluded.imported_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, n := range nets {
		if _, err := stmt.ExecContext(ctx, n.BSSID, n.SSID, n.Channel, n.RSSI, n.Lat, n.Lon, now); err != nil {
			return fmt.Errorf("insert %s: %w", n.BSSID, err)
		}
	}
	return tx.Commit()
}

// Strongest returns up to limit networks ordered by RSSI descending.
func (c *Catalog) Strongest(ctx context.Context, limit int) ([]Network, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := c.db.QueryContext(ctx, `
		SELECT bssid, ssid, channel, rssi, lat, lon
		FROM networks
		ORDER BY rssi DESC, bssid
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var nets []Network
	for rows.Next() {
		var n Network
		if err := rows.Scan(&n.BSSID, &n.SSID, &n.Channel, &n.RSSI, &n.Lat, &n.Lon); err != nil {
			return nil, err
		}
		nets = append(nets, n)
	}
	return nets, rows.Err()
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}
