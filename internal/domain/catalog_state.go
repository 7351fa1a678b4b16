package domain

type CatalogPhase int

const (
	CatalogIdle CatalogPhase = iota
	CatalogLoading
	CatalogReady
	CatalogFailed
)

func (p CatalogPhase) String() string {
	switch p {
	case CatalogIdle:
		return "idle"
	case CatalogLoading:
		return "loading"
	case CatalogReady:
		return "ready"
	case CatalogFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CatalogState is the outcome of a single catalog fetch attempt.
// Products is set only in CatalogReady, Err only in CatalogFailed.
type CatalogState struct {
	Phase    CatalogPhase
	Products []Product
	Err      error
}

func (s CatalogState) Product(id ProductID) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
