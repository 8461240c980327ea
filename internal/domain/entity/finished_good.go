package entity

// FinishedGoodRow existencia de producto terminado por número de parte.
type FinishedGoodRow struct {
	PartNumber string
	Approved   float64
	PendingQC  float64
}

// FinishedGoodStock existencia agregada de producto terminado.
type FinishedGoodStock struct {
	Approved  float64
	PendingQC float64
	Total     float64
}
