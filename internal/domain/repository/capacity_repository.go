package repository

import (
	"context"

	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// CapacityRepository define el puerto para la capacidad por línea de producción (BD local del portal).
type CapacityRepository interface {
	ListCapacities(ctx context.Context) ([]entity.CapacityEntry, error)
}
