// Package csvsource lee una exportación del ERP en CSV (un archivo por conjunto de datos)
// e implementa los mismos puertos que el adaptador PostgreSQL. Se usa para corridas MRP
// sin conexión al ERP y como fixture en pruebas.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/production-portal/internal/domain"
	"github.com/jhoicas/production-portal/internal/domain/repository"
)

// Nombres de archivo esperados dentro del directorio de exportación.
const (
	OrdersFile         = "orders.csv"
	BOMFile            = "bom.csv"
	PurchaseOrdersFile = "purchase_orders.csv"
	RawMaterialsFile   = "raw_materials.csv"
	FinishedGoodsFile  = "finished_goods.csv"
	CapacityFile       = "capacity.csv"
)

var (
	_ repository.ERPRepository      = (*Source)(nil)
	_ repository.CapacityRepository = (*Source)(nil)
)

// Options ajustes de lectura.
type Options struct {
	// Encoding de los archivos; nil = Windows-1252 (lo que exporta el ERP).
	Encoding encoding.Encoding
}

// Source adaptador de solo lectura sobre un directorio de CSV.
type Source struct {
	dir string
	enc encoding.Encoding
}

// New construye la fuente sobre dir.
func New(dir string, opts Options) *Source {
	enc := opts.Encoding
	if enc == nil {
		enc = charmap.Windows1252
	}
	return &Source{dir: dir, enc: enc}
}

// table contenido de un CSV con índice de columnas por nombre de encabezado.
type table struct {
	file string
	cols map[string]int
	rows [][]string
}

// readTable lee name completo. Si el archivo no existe y no es obligatorio devuelve una tabla vacía.
// Las columnas de need deben estar en el encabezado.
func (s *Source) readTable(ctx context.Context, name string, required bool, need ...string) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := &table{file: name, cols: map[string]int{}}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return t, nil
		}
		return nil, fmt.Errorf("abrir %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, s.enc.NewDecoder()))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			if required {
				return nil, fmt.Errorf("%s vacío", name)
			}
			return t, nil
		}
		return nil, fmt.Errorf("leer encabezado de %s: %w", name, err)
	}
	for i, col := range header {
		t.cols[normalizeHeader(col)] = i
	}
	for _, col := range need {
		if _, ok := t.cols[col]; !ok {
			return nil, fmt.Errorf("%s: falta la columna %q", name, col)
		}
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", name, err)
		}
		if isBlank(rec) {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// str valor de la columna col en la fila i; "" si la columna no existe o la fila es corta.
func (t *table) str(i int, col string) string {
	idx, ok := t.cols[col]
	if !ok || idx >= len(t.rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.rows[i][idx])
}

// num valor numérico de col en la fila i. Vacío = 0; texto no numérico = ErrMalformedData.
func (t *table) num(i int, col string) (float64, error) {
	raw := t.str(i, col)
	v, ok := domain.ParseQuantity(raw)
	if !ok {
		return 0, t.malformed(i, col, raw)
	}
	return v, nil
}

// money valor monetario exacto de col en la fila i. Vacío = 0.
func (t *table) money(i int, col string) (decimal.Decimal, error) {
	raw := strings.TrimPrefix(t.str(i, col), "$")
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, t.malformed(i, col, raw)
	}
	return v, nil
}

func (t *table) malformed(i int, col, raw string) error {
	// +2: encabezado y numeración desde 1
	return fmt.Errorf("%s fila %d columna %s %q: %w", t.file, i+2, col, raw, domain.ErrMalformedData)
}

// normalizeHeader "Ord Qty - Cur. Level" -> "ord_qty_cur_level".
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
