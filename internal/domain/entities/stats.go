package entities

// PartyTotal aggregates prefacturation amounts for one client or carrier.
type PartyTotal struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	TotalHT float64 `json:"total_ht"`
}

// PrefacturationStats feeds the logistician billing dashboard.
type PrefacturationStats struct {
	Total             int          `json:"total"`
	TotalHT           float64      `json:"total_ht"`
	PendingValidation int          `json:"pending_validation"`
	WithDiscrepancies int          `json:"with_discrepancies"`
	Blocked           int          `json:"blocked"`
	ValidationRate    float64      `json:"validation_rate"`
	TopClients        []PartyTotal `json:"top_clients"`
	TopCarriers       []PartyTotal `json:"top_carriers"`
}
