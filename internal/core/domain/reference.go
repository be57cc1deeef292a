package domain

// Client is a customer that owns service locations.
type Client struct {
	ID   int64  `json:"id"   validate:"required,gt=0"`
	Name string `json:"name" validate:"required"`
}

// Location is a pickup site shared by one or more clients.
type Location struct {
	ID        int64   `json:"id"      validate:"required,gt=0"`
	Name      string  `json:"name"    validate:"required"`
	City      string  `json:"city"`
	ClientIDs []int64 `json:"clients" validate:"dive,gt=0"`
}

// ServesClient reports whether clientID is one of the location's clients.
func (l Location) ServesClient(clientID int64) bool {
	for _, id := range l.ClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}

// Waste is a top-level waste type.
type Waste struct {
	ID   int64  `json:"id"   validate:"required,gt=0"`
	Name string `json:"name" validate:"required"`
}

// WasteSubcategory refines a Waste.
type WasteSubcategory struct {
	ID      int64  `json:"id"    validate:"required,gt=0"`
	Name    string `json:"name"  validate:"required"`
	WasteID int64  `json:"waste" validate:"required,gt=0"`
}

// TypeService is a kind of service that can be scheduled (collection, consulting, ...).
type TypeService struct {
	ID   int64  `json:"id"   validate:"required,gt=0"`
	Name string `json:"name" validate:"required"`
}
