package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/drodber/results-service/internal/entity"
	"github.com/drodber/results-service/internal/repo"
)

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrIncompletePayload = errors.New("incomplete payload")
)

//go:generate mockgen -source=results.go -destination=mocks/mocks.go -package=mocks

type ResultStorage interface {
	SaveResult(ctx context.Context, value, userID int64, t time.Time) (int64, error)
	GetResultByID(ctx context.Context, id int64) (entity.Result, error)
	GetResultByValue(ctx context.Context, value int64) (entity.Result, error)
	GetResults(ctx context.Context, sort string) ([]entity.Result, error)
	GetResultsByUserID(ctx context.Context, userID int64, sort string) ([]entity.Result, error)
	UpdateResult(ctx context.Context, result entity.Result) error
	DeleteResult(ctx context.Context, id int64) error
}

type UserStorage interface {
	GetUserByID(ctx context.Context, id int64) (entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (entity.User, error)
}

// ResultUpdate carries the partial payload of a PUT. A nil field means
// "leave untouched", never "set to zero".
type ResultUpdate struct {
	Result *int64
	UserID *int64
	Time   *time.Time
}

type ResultService struct {
	log           *slog.Logger
	resultStorage ResultStorage
	userStorage   UserStorage
}

func NewResultService(log *slog.Logger, resultStorage ResultStorage, userStorage UserStorage) *ResultService {
	return &ResultService{
		log:           log,
		resultStorage: resultStorage,
		userStorage:   userStorage,
	}
}

// canAccess gates item-level operations: only the owner or an admin.
func canAccess(principal entity.Principal, result entity.Result) bool {
	return principal.Admin || principal.UserID == result.UserID
}

// ListResults returns every record for an admin and only the caller's own
// records otherwise, ordered ascending by the given sort key. An empty
// visible set is reported as repo.ErrResultNotFound.
func (s *ResultService) ListResults(ctx context.Context, principal entity.Principal, sort string) ([]entity.Result, error) {
	const op = "services.ResultService.ListResults"

	var (
		results []entity.Result
		err     error
	)
	if principal.Admin {
		results, err = s.resultStorage.GetResults(ctx, sort)
	} else {
		results, err = s.resultStorage.GetResultsByUserID(ctx, principal.UserID, sort)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%s: %w", op, repo.ErrResultNotFound)
	}

	return results, nil
}

func (s *ResultService) GetResult(ctx context.Context, principal entity.Principal, id int64) (entity.Result, error) {
	const op = "services.ResultService.GetResult"

	result, err := s.resultStorage.GetResultByID(ctx, id)
	if err != nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if !canAccess(principal, result) {
		return entity.Result{}, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	return result, nil
}

// CreateResult validates the payload before touching the store: both the
// value and the owner must be present, the owner must exist and the value
// must not be taken. Time defaults to now.
func (s *ResultService) CreateResult(ctx context.Context, principal entity.Principal, value, userID *int64, t *time.Time) (entity.Result, error) {
	const op = "services.ResultService.CreateResult"

	if value == nil || userID == nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, ErrIncompletePayload)
	}

	if _, err := s.userStorage.GetUserByID(ctx, *userID); err != nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.resultStorage.GetResultByValue(ctx, *value); err == nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, repo.ErrResultExists)
	} else if !errors.Is(err, repo.ErrResultNotFound) {
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	resultTime := time.Now()
	if t != nil {
		resultTime = *t
	}

	id, err := s.resultStorage.SaveResult(ctx, *value, *userID, resultTime)
	if err != nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("result created",
		slog.String("op", op),
		slog.Int64("id", id),
		slog.Int64("user", *userID),
	)

	return entity.Result{ID: id, Result: *value, UserID: *userID, Time: resultTime}, nil
}

// UpdateResult merges the supplied fields into the stored record. The
// uniqueness check on a supplied value is global and includes the record
// itself, matching the write-time invariant of create. Nothing is
// persisted unless every supplied field passed its check.
func (s *ResultService) UpdateResult(ctx context.Context, principal entity.Principal, id int64, upd ResultUpdate) (entity.Result, error) {
	const op = "services.ResultService.UpdateResult"

	result, err := s.resultStorage.GetResultByID(ctx, id)
	if err != nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if !canAccess(principal, result) {
		return entity.Result{}, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if upd.Result != nil {
		if _, err := s.resultStorage.GetResultByValue(ctx, *upd.Result); err == nil {
			return entity.Result{}, fmt.Errorf("%s: %w", op, repo.ErrResultExists)
		} else if !errors.Is(err, repo.ErrResultNotFound) {
			return entity.Result{}, fmt.Errorf("%s: %w", op, err)
		}
		result.Result = *upd.Result
	}

	if upd.UserID != nil {
		if _, err := s.userStorage.GetUserByID(ctx, *upd.UserID); err != nil {
			return entity.Result{}, fmt.Errorf("%s: %w", op, err)
		}
		result.UserID = *upd.UserID
	}

	if upd.Time != nil {
		result.Time = *upd.Time
	}

	if err := s.resultStorage.UpdateResult(ctx, result); err != nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("result updated", slog.String("op", op), slog.Int64("id", id))

	return result, nil
}

func (s *ResultService) DeleteResult(ctx context.Context, principal entity.Principal, id int64) error {
	const op = "services.ResultService.DeleteResult"

	result, err := s.resultStorage.GetResultByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !canAccess(principal, result) {
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if err := s.resultStorage.DeleteResult(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("result deleted", slog.String("op", op), slog.Int64("id", id))

	return nil
}
