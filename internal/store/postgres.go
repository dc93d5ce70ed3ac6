package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Store struct{ DB *sql.DB }

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE TABLE IF NOT EXISTS notices (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            trust            TEXT NOT NULL,
            board_no         INTEGER,
            title            TEXT NOT NULL,
            post_date        TEXT,
            url              TEXT NOT NULL,
            address          TEXT NOT NULL DEFAULT '',
            province_district TEXT NOT NULL DEFAULT '',
            district         TEXT NOT NULL DEFAULT '',
            building         TEXT NOT NULL DEFAULT '',
            sale_content     TEXT NOT NULL DEFAULT '',
            officetel        BOOLEAN NOT NULL DEFAULT false,
            duplicate        BOOLEAN NOT NULL DEFAULT false,
            created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_notices_url ON notices(url);`,
		`CREATE INDEX IF NOT EXISTS idx_notices_address ON notices(address);`,
		`CREATE INDEX IF NOT EXISTS idx_notices_trust ON notices(trust);`,
		`CREATE INDEX IF NOT EXISTS idx_notices_district ON notices(province_district);`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

type NoticeInput struct {
	Trust            string
	BoardNo          int
	Title            string
	PostDate         string
	URL              string
	Address          string
	ProvinceDistrict string
	District         string
	Building         string
	SaleContent      string
	Officetel        bool
}

type UpsertResult struct {
	NoticeID string
	Inserted bool
}

// UpsertNotice writes one board row keyed by its source URL. A re-crawl of
// the same URL refreshes the title and derived fields in place.
func (s *Store) UpsertNotice(ctx context.Context, in NoticeInput) (UpsertResult, error) {
	var res UpsertResult
	if s.DB == nil {
		return res, errors.New("nil db")
	}
	if in.URL == "" {
		return res, errors.New("notice url required")
	}
	err := s.DB.QueryRowContext(ctx, `
        INSERT INTO notices (trust, board_no, title, post_date, url, address, province_district, district, building, sale_content, officetel)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        ON CONFLICT (url)
        DO UPDATE SET trust=EXCLUDED.trust, board_no=EXCLUDED.board_no, title=EXCLUDED.title, post_date=EXCLUDED.post_date, address=EXCLUDED.address, province_district=EXCLUDED.province_district, district=EXCLUDED.district, building=EXCLUDED.building, sale_content=EXCLUDED.sale_content, officetel=EXCLUDED.officetel, updated_at=now()
        RETURNING id, (created_at = updated_at)`,
		in.Trust, in.BoardNo, in.Title, in.PostDate, in.URL, in.Address, in.ProvinceDistrict, in.District, in.Building, in.SaleContent, in.Officetel,
	).Scan(&res.NoticeID, &res.Inserted)
	if err != nil {
		return res, err
	}
	return res, nil
}

func (s *Store) HasURL(ctx context.Context, url string) (bool, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT count(1) FROM notices WHERE url=$1`, url).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) CountByAddress(ctx context.Context, address string) (int, error) {
	if address == "" {
		return 0, nil
	}
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT count(1) FROM notices WHERE address=$1`, address).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// MarkAddressDuplicates flags every notice after the earliest one sharing the
// same non-empty address. Returns the number of rows whose flag changed.
func (s *Store) MarkAddressDuplicates(ctx context.Context, address string) (int64, error) {
	if address == "" {
		return 0, nil
	}
	r, err := s.DB.ExecContext(ctx, `
        UPDATE notices SET duplicate = (id <> first.id), updated_at = now()
        FROM (
            SELECT id FROM notices WHERE address=$1 ORDER BY created_at ASC, id ASC LIMIT 1
        ) AS first
        WHERE notices.address=$1 AND notices.duplicate <> (notices.id <> first.id)`, address)
	if err != nil {
		return 0, err
	}
	return r.RowsAffected()
}

type Notice struct {
	ID               string    `json:"id"`
	Trust            string    `json:"trust"`
	BoardNo          int       `json:"board_no"`
	Title            string    `json:"title"`
	PostDate         string    `json:"post_date"`
	URL              string    `json:"url"`
	Address          string    `json:"address"`
	ProvinceDistrict string    `json:"province_district"`
	District         string    `json:"district"`
	Building         string    `json:"building"`
	SaleContent      string    `json:"sale_content"`
	Officetel        bool      `json:"officetel"`
	Duplicate        bool      `json:"duplicate"`
	CreatedAt        time.Time `json:"created_at"`
}

type ListFilter struct {
	Trust  string
	Region string // matched against the province+district summary
	Limit  int
	Offset int
}

func (s *Store) ListNotices(ctx context.Context, f ListFilter) ([]Notice, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := `SELECT id, trust, COALESCE(board_no,0), title, COALESCE(post_date,''), url, address, province_district, district, building, sale_content, officetel, duplicate, created_at
          FROM notices WHERE ($1 = '' OR trust = $1) AND ($2 = '' OR province_district = $2)
          ORDER BY created_at DESC, board_no DESC LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, q, f.Trust, f.Region, limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notice
	for rows.Next() {
		var n Notice
		if err := rows.Scan(&n.ID, &n.Trust, &n.BoardNo, &n.Title, &n.PostDate, &n.URL, &n.Address, &n.ProvinceDistrict, &n.District, &n.Building, &n.SaleContent, &n.Officetel, &n.Duplicate, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

type DuplicateInfo struct {
	Address   string `json:"address"`
	Count     int    `json:"count"`
	FirstURL  string `json:"first_url"`
	FirstDate string `json:"first_post_date"`
}

// DuplicateInfoByAddress reports how many stored notices share an address and
// which one arrived first.
func (s *Store) DuplicateInfoByAddress(ctx context.Context, address string) (DuplicateInfo, error) {
	info := DuplicateInfo{Address: address}
	if address == "" {
		return info, nil
	}
	err := s.DB.QueryRowContext(ctx, `
        SELECT count(1),
               COALESCE(min(url) FILTER (WHERE NOT duplicate), ''),
               COALESCE(min(post_date) FILTER (WHERE NOT duplicate), '')
        FROM notices WHERE address=$1`, address).Scan(&info.Count, &info.FirstURL, &info.FirstDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return info, nil
		}
		return info, err
	}
	return info, nil
}
