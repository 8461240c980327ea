package mrp

import (
	"github.com/jhoicas/production-portal/internal/domain/entity"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// sharedSummary arma el texto del tooltip "compartido con otras SO".
// Vacío si nadie más reclamó el componente.
func sharedSummary(shared []entity.SharedAllocation, total float64) []string {
	if total <= 0 {
		return nil
	}
	lines := make([]string, 0, len(shared)+1)
	lines = append(lines, printer.Sprintf("Total Allocated to Others: %.2f", total))
	for _, a := range shared {
		lines = append(lines, printer.Sprintf("  - SO %s: %.2f", a.SalesOrder, a.Quantity))
	}
	return lines
}
