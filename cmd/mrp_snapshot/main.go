// mrp_snapshot ejecuta una corrida MRP sobre una exportación CSV del ERP y escribe el XLSX.
//
// Uso: go run ./cmd/mrp_snapshot [directorio] [salida.xlsx]
// Por defecto lee ./snapshot y escribe mrp_<fecha>.xlsx en el directorio actual.
// Archivos esperados: orders.csv, bom.csv, raw_materials.csv (requeridos) y
// purchase_orders.csv, finished_goods.csv, capacity.csv (opcionales).
// MRP_ALLOCATE_FINISHED_GOODS=true activa la asignación secuencial de producto terminado.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	appmrp "github.com/jhoicas/production-portal/internal/application/mrp"
	"github.com/jhoicas/production-portal/internal/infrastructure/csvsource"
	infraxlsx "github.com/jhoicas/production-portal/internal/infrastructure/xlsx"
	"github.com/jhoicas/production-portal/pkg/logger"
)

func main() {
	dir := "snapshot"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	out := ""
	if len(os.Args) > 2 {
		out = os.Args[2]
	}
	allocateFG, _ := strconv.ParseBool(os.Getenv("MRP_ALLOCATE_FINISHED_GOODS"))

	log := logger.New(logger.Config{Env: "development", Level: "info", Service: "mrp_snapshot"})

	src := csvsource.New(dir, csvsource.Options{})
	uc := appmrp.NewRunUseCase(src, src, infraxlsx.NewExporter(), nil, log, appmrp.Config{
		AllocateFinishedGoods: allocateFG,
	})

	data, name, err := uc.ExportXLSX(context.Background(), appmrp.Filter{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Corrida MRP: %v\n", err)
		os.Exit(1)
	}
	if out == "" {
		out = name
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("Escrito: %s (%d bytes)\n", out, len(data))
}
