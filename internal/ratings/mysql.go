package ratings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"colordist/internal/colors"
)

const createRatingsTable = `CREATE TABLE IF NOT EXISTS ratings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	ip VARCHAR(64) NOT NULL,
	ts BIGINT NOT NULL,
	name VARCHAR(255) NOT NULL,
	color_a CHAR(7) NOT NULL,
	color_b CHAR(7) NOT NULL,
	score TINYINT UNSIGNED NOT NULL,
	INDEX idx_session (name, ip)
) CHARACTER SET utf8mb4`

// MySQLStore keeps ratings in a MySQL table named "ratings".
type MySQLStore struct {
	db *sql.DB
}

// OpenMySQLStore connects with a go-sql-driver/mysql DSN and creates the
// ratings table when it does not exist.
func OpenMySQLStore(ctx context.Context, dsn string) (*MySQLStore, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MySQL DSN: %w", err)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create MySQL connector: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	if _, err := db.ExecContext(ctx, createRatingsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ratings table: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) Append(ctx context.Context, r Rating) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO ratings (ip, ts, name, color_a, color_b, score) VALUES (?, ?, ?, ?, ?, ?)",
		r.IP, r.Time.Unix(), r.Name, r.ColorA.Hex(), r.ColorB.Hex(), r.Score)
	if err != nil {
		return fmt.Errorf("failed to insert rating: %w", err)
	}
	return nil
}

// List returns every stored rating in insertion order.
func (s *MySQLStore) List(ctx context.Context) ([]Rating, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT ip, ts, name, color_a, color_b, score FROM ratings ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var out []Rating
	for rows.Next() {
		var (
			r      Rating
			ts     int64
			ca, cb string
		)
		if err := rows.Scan(&r.IP, &ts, &r.Name, &ca, &cb, &r.Score); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		r.Time = time.Unix(ts, 0)
		if r.ColorA, err = colors.ParseRGBDisplay(ca); err != nil {
			return nil, fmt.Errorf("stored rating has invalid color A: %w", err)
		}
		if r.ColorB, err = colors.ParseRGBDisplay(cb); err != nil {
			return nil, fmt.Errorf("stored rating has invalid color B: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}
	return out, nil
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}
