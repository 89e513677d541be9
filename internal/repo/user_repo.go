package repo

import (
	"context"

	dom "github.com/hicham722/taskflow/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides identity persistence. Email is the upsert key.
type UserRepo interface {
	Upsert(ctx context.Context, id, name, email, avatar string) (dom.User, error)
	ListWithStats(ctx context.Context) ([]dom.UserStat, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// Upsert inserts the user or refreshes name/avatar/last_login by email.
func (r *PGUserRepo) Upsert(ctx context.Context, id, name, email, avatar string) (dom.User, error) {
	query := `
		INSERT INTO users (id, name, email, avatar, last_login)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (email) DO UPDATE
			SET name = EXCLUDED.name, avatar = EXCLUDED.avatar, last_login = NOW()
		RETURNING id, name, email, avatar, last_login, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, id, name, email, avatar).Scan(
		&u.ID, &u.Name, &u.Email, &u.Avatar, &u.LastLogin, &u.CreatedAt,
	)
	return u, err
}

// ListWithStats returns all users with task aggregates, most recent login
// first. Tasks link to users by email (the stable identity key), and the
// aggregates are derived per query rather than stored.
func (r *PGUserRepo) ListWithStats(ctx context.Context) ([]dom.UserStat, error) {
	query := `
		SELECT u.id, u.name, u.email, u.avatar, u.last_login, u.created_at,
			COUNT(t.id),
			COUNT(t.id) FILTER (WHERE t.status = 'Completed'),
			COALESCE(SUM(t.amount), 0)
		FROM users u
		LEFT JOIN tasks t ON t.user_id = u.email
		GROUP BY u.id
		ORDER BY u.last_login DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.UserStat
	for rows.Next() {
		var s dom.UserStat
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Avatar, &s.LastLogin, &s.CreatedAt,
			&s.TotalTasks, &s.CompletedTasks, &s.TotalSpent); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
