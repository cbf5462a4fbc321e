package costs

// Report is one period's cloud cost breakdown.
type Report struct {
	Period   string        `json:"period"` // "month" or "year"
	Label    string        `json:"label"`  // e.g. "February 2026"
	Total    float64       `json:"total"`
	Currency string        `json:"currency"`
	Services []ServiceCost `json:"services"`
}

type ServiceCost struct {
	Service string  `json:"service"`
	Amount  float64 `json:"amount"`
}

// BilledServices drops free-tier entries with a zero amount.
func (r *Report) BilledServices() []ServiceCost {
	out := make([]ServiceCost, 0, len(r.Services))
	for _, s := range r.Services {
		if s.Amount > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Invalidation is the CDN purge acknowledgment.
type Invalidation struct {
	InvalidationID string `json:"invalidation_id"`
	Status         string `json:"status"`
}
