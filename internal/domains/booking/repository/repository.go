package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"corpbooking/infras/otel"
	"corpbooking/infras/postgres"
	"corpbooking/internal/domains/booking/model"
	"corpbooking/shared/constant"
	gDto "corpbooking/shared/dto"
	"corpbooking/shared/logger"
	gRepo "corpbooking/shared/repository"

	"github.com/jmoiron/sqlx"
)

const lockStatement = "SELECT pg_advisory_xact_lock(hashtext($1))"

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	WithResourceLock(ctx context.Context, key string, fn func(sqltx *sqlx.Tx) error) error
	CountByStatus(ctx context.Context) (map[model.Status]int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// WithResourceLock runs fn in a transaction holding an advisory lock on key.
// Writers on the same resource are serialized until the transaction ends.
func (repo *repositoryImpl) WithResourceLock(ctx context.Context, key string, fn func(sqltx *sqlx.Tx) error) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.WithResourceLock")
	defer scope.End()

	scope.SetAttribute("lock_key", key)

	return repo.WithTx(ctx, func(sqltx *sqlx.Tx) error { //nolint:wrapcheck
		if err := repo.ExecTx(ctx, sqltx, lockStatement, key); err != nil {
			return err
		}

		return fn(sqltx)
	})
}

func (repo *repositoryImpl) CountByStatus(ctx context.Context) (map[model.Status]int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountByStatus")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s, COUNT(*) AS total FROM %s GROUP BY %s", model.FieldStatus, model.TableName, model.FieldStatus)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows := []struct {
		Status model.Status `db:"status"`
		Total  int          `db:"total"`
	}{}

	if err := repo.db.Read.SelectContext(ctx, &rows, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	counts := make(map[model.Status]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}

	return counts, nil
}

// BlockingFilter narrows the candidates the conflict engine has to inspect:
// approved bookings on ref whose interval touches [start, end].
func BlockingFilter(ref model.ResourceRef, start, end time.Time) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldStatus, Value: string(model.StatusApproved), Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{ArgName: "window_end", Field: model.FieldStartTime, Value: end, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		gDto.Filter{ArgName: "window_start", Field: model.FieldEndTime, Value: start, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
	}

	switch key := ref.(type) {
	case model.ByID:
		filters = append(filters, gDto.Filter{Field: model.FieldResourceID, Value: key.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	case model.ByName:
		filters = append(filters, gDto.Filter{Field: model.FieldResourceName, Value: key.Name, Operator: gDto.FilterOperatorEq, Table: model.TableName})

		if key.Kind != "" {
			filters = append(filters, gDto.Filter{Field: model.FieldResourceKind, Value: string(key.Kind), Operator: gDto.FilterOperatorEq, Table: model.TableName})
		}
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}
