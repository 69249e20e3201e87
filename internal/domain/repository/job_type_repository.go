package repository

import (
	"context"

	"github.com/jhoicas/timesheet-api/internal/domain/entity"
)

// JobTypeRepository puerto de persistencia para JobType.
type JobTypeRepository interface {
	Create(ctx context.Context, jobType *entity.JobType) error
	List(ctx context.Context) ([]*entity.JobType, error)
	Delete(ctx context.Context, id string) error
}
