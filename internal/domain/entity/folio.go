package entity

import "time"

// Espacios de nombres de folios. La unicidad del folio renderizado se verifica
// dentro de su propio espacio: un folio de salida de inventario no colisiona
// con uno de custodia.
const (
	FolioNamespaceInventario = "INVENTARIO"
	FolioNamespaceCustodia   = "CUSTODIA"
)

// Series de folio conocidas (el operador puede registrar series adicionales).
const (
	FolioSeriesResguardo       = "RSG"
	FolioSeriesSalidaResguardo = "SAL-RSG"
	FolioSeriesEntrada         = "ENT"
	FolioSeriesSalida          = "SAL"
)

// Folio es un identificador de documento legible, consecutivo por serie y año.
// (Series, Year, Sequence) es único; Rendered es la llave visible externamente
// y es único dentro de su espacio de nombres.
type Folio struct {
	Series    string
	Year      int
	Sequence  int64
	Rendered  string // p.ej. "SAL-RSG-2026-007", siempre en mayúsculas
	Namespace string // INVENTARIO | CUSTODIA
	CreatedAt time.Time
}
