package entity

// BOMLine representa un componente requerido para fabricar una unidad del producto padre.
type BOMLine struct {
	ParentPart    string
	ComponentPart string
	Description   string
	QtyPer        float64 // cantidad por unidad del padre
	ScrapPct      float64 // % de merma (10 = 10%)
}

// EffectiveQtyPer cantidad por unidad incluyendo merma: QtyPer * (1 + ScrapPct/100).
// Una línea con resultado <= 0 no consume inventario.
func (b BOMLine) EffectiveQtyPer() float64 {
	return b.QtyPer * (1 + b.ScrapPct/100)
}
