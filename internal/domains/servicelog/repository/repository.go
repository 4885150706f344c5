package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"corpbooking/infras/otel"
	"corpbooking/infras/postgres"
	"corpbooking/internal/domains/servicelog/model"
	gDto "corpbooking/shared/dto"
	gRepo "corpbooking/shared/repository"
)

// ServiceLog has no update or delete. Rows leave only when their vehicle is deleted.
type ServiceLog interface {
	Insert(ctx context.Context, model model.ServiceLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServiceLog, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ServiceLog]
}

func New(db *postgres.Connection, otel otel.Otel) ServiceLog {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ServiceLog](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
