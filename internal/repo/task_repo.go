package repo

import (
	"context"

	dom "github.com/hicham722/taskflow/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	List(ctx context.Context, userID string) ([]dom.Task, error)
	Replace(ctx context.Context, id string, t dom.Task) (dom.Task, error)
	Delete(ctx context.Context, id string) (dom.Task, error)
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

const taskColumns = `id, title, description, category, amount, due_date, status, notes, reminder, user_id, created_at, updated_at`

func scanTask(row interface{ Scan(dest ...any) error }) (dom.Task, error) {
	var t dom.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Category, &t.Amount, &t.DueDate,
		&t.Status, &t.Notes, &t.Reminder, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (id, title, description, category, amount, due_date, status, notes, reminder, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, t.Category, t.Amount, t.DueDate,
		t.Status, t.Notes, t.Reminder, t.UserID,
	))
}

func (r *PGTaskRepo) List(ctx context.Context, userID string) ([]dom.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks WHERE ($1 = '' OR user_id = $1) ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) Replace(ctx context.Context, id string, t dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks SET title = $2, description = $3, category = $4, amount = $5,
			due_date = $6, status = $7, notes = $8, reminder = $9, user_id = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRow(ctx, query,
		id, t.Title, t.Description, t.Category, t.Amount, t.DueDate,
		t.Status, t.Notes, t.Reminder, t.UserID,
	))
}

func (r *PGTaskRepo) Delete(ctx context.Context, id string) (dom.Task, error) {
	query := `DELETE FROM tasks WHERE id = $1 RETURNING ` + taskColumns
	return scanTask(r.db.QueryRow(ctx, query, id))
}
