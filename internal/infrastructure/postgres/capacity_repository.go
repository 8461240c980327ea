package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/production-portal/internal/domain/entity"
	"github.com/jhoicas/production-portal/internal/domain/repository"
)

var _ repository.CapacityRepository = (*CapacityRepo)(nil)

// CapacityRepo implementación de CapacityRepository sobre la BD local del portal.
type CapacityRepo struct {
	q Querier
}

// NewCapacityRepository construye el adaptador de capacidad. Pasar pool o tx (Querier).
func NewCapacityRepository(q Querier) *CapacityRepo {
	return &CapacityRepo{q: q}
}

// ListCapacities lista la capacidad por turno de cada línea configurada.
// Si la tabla aún no existe en la BD local se devuelve una lista vacía.
func (r *CapacityRepo) ListCapacities(ctx context.Context) ([]entity.CapacityEntry, error) {
	query := `
		SELECT line_id, capacity_per_shift
		FROM production_capacity
		ORDER BY line_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list capacities: %w", err)
	}
	defer rows.Close()

	var list []entity.CapacityEntry
	for rows.Next() {
		var c entity.CapacityEntry
		var capacity decimal.Decimal
		if err := rows.Scan(&c.LineID, &capacity); err != nil {
			return nil, fmt.Errorf("scan capacity: %w", err)
		}
		c.CapacityPerShift = capacity.InexactFloat64()
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list capacities rows: %w", err)
	}
	return list, nil
}
