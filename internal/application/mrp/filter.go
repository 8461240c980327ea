package mrp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/production-portal/internal/domain"
	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// Grupos de estado del filtro de la vista MRP.
const (
	GroupReadyToShip      = "ready-to-ship"
	GroupProductionNeeded = "production-needed"
	GroupActionRequired   = "action-required"
)

var statusGroups = map[string][]entity.OrderStatus{
	GroupReadyToShip:      {entity.StatusReadyToShip},
	GroupProductionNeeded: {entity.StatusOK, entity.StatusPartial, entity.StatusPartialShipPendingQC},
	GroupActionRequired:   {entity.StatusCritical, entity.StatusPendingQC},
}

var dueShipPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{4}$`)

// Filter criterios de la vista; los campos vacíos no filtran.
type Filter struct {
	BusinessUnit string
	Customer     string
	DueShip      string // MM/YYYY
	Status       string // grupo o estado individual
}

// Validate verifica el formato de mes y que el estado sea un grupo o estado conocido.
func (f Filter) Validate() error {
	if f.DueShip != "" && !dueShipPattern.MatchString(f.DueShip) {
		return fmt.Errorf("%w: due_ship debe tener formato MM/YYYY", domain.ErrInvalidInput)
	}
	if f.Status != "" && f.statuses() == nil {
		return fmt.Errorf("%w: status %q no reconocido", domain.ErrInvalidInput, f.Status)
	}
	return nil
}

func (f Filter) statuses() []entity.OrderStatus {
	if group, ok := statusGroups[f.Status]; ok {
		return group
	}
	for _, s := range entity.OrderStatuses {
		if string(s) == f.Status {
			return []entity.OrderStatus{s}
		}
	}
	return nil
}

// Matches indica si el resultado pasa todos los criterios.
func (f Filter) Matches(r *entity.OrderResult) bool {
	if f.BusinessUnit != "" && r.Order.BusinessUnit != f.BusinessUnit {
		return false
	}
	if f.Customer != "" && r.Order.Customer != f.Customer {
		return false
	}
	if f.DueShip != "" {
		month, ok := dueMonth(r.Order.DueToShip)
		if !ok || month != f.DueShip {
			return false
		}
	}
	if f.Status != "" {
		found := false
		for _, s := range f.statuses() {
			if r.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// dueMonth "1/15/2025" -> "01/2025". ok = false sin fecha o sin separadores.
func dueMonth(due string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(due), "/")
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return "", false
	}
	month := parts[0]
	if len(month) == 1 {
		month = "0" + month
	}
	return month + "/" + parts[2], true
}
