package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"tiergate.org/internal/ids"
)

const pgUniqueViolation = "23505"

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL. Thresholds are kept in a
// single jsonb column.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, p *Parameters) error {
	if p.ID == "" {
		p.ID = ids.New()
	}
	thresholds, err := json.Marshal(p.Thresholds)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into user_parameters(id, user_id, preferred_lat, preferred_lon, thresholds) values($1,$2,$3,$4,$5)`,
		p.ID, p.UserID, p.PreferredLat, p.PreferredLon, thresholds,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *PGStore) FindByUserID(ctx context.Context, userID string) (*Parameters, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, user_id, preferred_lat, preferred_lon, thresholds, created_at, updated_at from user_parameters where user_id=$1`,
		userID,
	)
	var (
		p          Parameters
		thresholds []byte
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.PreferredLat, &p.PreferredLon, &thresholds, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(thresholds, &p.Thresholds); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PGStore) Update(ctx context.Context, p *Parameters) error {
	thresholds, err := json.Marshal(p.Thresholds)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`update user_parameters set preferred_lat=$2, preferred_lon=$3, thresholds=$4, updated_at=now() where user_id=$1`,
		p.UserID, p.PreferredLat, p.PreferredLon, thresholds,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
