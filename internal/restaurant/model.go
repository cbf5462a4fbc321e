package restaurant

// Restaurant is read-only reference data used to tag an upload.
type Restaurant struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Fallback returns the built-in restaurant list used when the backend
// cannot be reached.
func Fallback() []Restaurant {
	return []Restaurant{
		{ID: 1, Name: "Trattoria Roma"},
		{ID: 2, Name: "Pizzeria Napoli"},
		{ID: 3, Name: "Osteria Milano"},
		{ID: 4, Name: "Ristorante Firenze"},
		{ID: 5, Name: "Bar Torino"},
	}
}
