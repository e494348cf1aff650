package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/drodber/results-service/internal/entity"
	"github.com/drodber/results-service/internal/repo"
	"github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(postgresURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// sortColumn whitelists the sort keys the API accepts; anything else
// falls back to the primary key.
func sortColumn(sort string) string {
	switch sort {
	case "result":
		return "result"
	case "user":
		return "user_id"
	default:
		return "id"
	}
}

// isUniqueViolation reports whether err is the postgres unique-constraint
// error (class 23505). The results.result constraint is the backstop for
// the service-level uniqueness check.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (s *Storage) SaveResult(ctx context.Context, value, userID int64, t time.Time) (int64, error) {
	const op = "storage.postgres.SaveResult"

	query := `INSERT INTO results (result, user_id, time) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query, value, userID, t).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, repo.ErrResultExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetResultByID(ctx context.Context, id int64) (entity.Result, error) {
	const op = "storage.postgres.GetResultByID"

	query := `SELECT id, result, user_id, time FROM results WHERE id = $1`

	var result entity.Result
	err := s.db.QueryRowContext(ctx, query, id).Scan(&result.ID, &result.Result, &result.UserID, &result.Time)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Result{}, fmt.Errorf("%s: %w", op, repo.ErrResultNotFound)
		}
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (s *Storage) GetResultByValue(ctx context.Context, value int64) (entity.Result, error) {
	const op = "storage.postgres.GetResultByValue"

	query := `SELECT id, result, user_id, time FROM results WHERE result = $1`

	var result entity.Result
	err := s.db.QueryRowContext(ctx, query, value).Scan(&result.ID, &result.Result, &result.UserID, &result.Time)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Result{}, fmt.Errorf("%s: %w", op, repo.ErrResultNotFound)
		}
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (s *Storage) GetResults(ctx context.Context, sort string) ([]entity.Result, error) {
	const op = "storage.postgres.GetResults"

	query := fmt.Sprintf(`SELECT id, result, user_id, time FROM results ORDER BY %s ASC`, sortColumn(sort))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanResults(rows, op)
}

func (s *Storage) GetResultsByUserID(ctx context.Context, userID int64, sort string) ([]entity.Result, error) {
	const op = "storage.postgres.GetResultsByUserID"

	query := fmt.Sprintf(`SELECT id, result, user_id, time FROM results WHERE user_id = $1 ORDER BY %s ASC`, sortColumn(sort))

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanResults(rows, op)
}

func scanResults(rows *sql.Rows, op string) ([]entity.Result, error) {
	var results []entity.Result
	for rows.Next() {
		var result entity.Result
		if err := rows.Scan(&result.ID, &result.Result, &result.UserID, &result.Time); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return results, nil
}

func (s *Storage) UpdateResult(ctx context.Context, result entity.Result) error {
	const op = "storage.postgres.UpdateResult"

	const query = `UPDATE results SET result = $1, user_id = $2, time = $3 WHERE id = $4`

	res, err := s.db.ExecContext(ctx, query, result.Result, result.UserID, result.Time, result.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, repo.ErrResultExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, repo.ErrResultNotFound)
	}
	return nil
}

func (s *Storage) DeleteResult(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteResult"

	query := `DELETE FROM results WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return repo.ErrResultNotFound
	}

	return nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (entity.User, error) {
	const op = "storage.postgres.GetUserByID"

	query := `SELECT id, email, pass_hash, is_admin FROM users WHERE id = $1`

	var user entity.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Email, &user.PassHash, &user.Admin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, fmt.Errorf("%s: %w", op, repo.ErrUserNotFound)
		}
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (entity.User, error) {
	const op = "storage.postgres.GetUserByEmail"

	query := `SELECT id, email, pass_hash, is_admin FROM users WHERE email = $1`

	var user entity.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.PassHash, &user.Admin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, fmt.Errorf("%s: %w", op, repo.ErrUserNotFound)
		}
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
