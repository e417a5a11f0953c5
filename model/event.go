package model

// EventDetails is the immutable metadata attached to an event at creation.
type EventDetails struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	TicketPrice Amount `json:"ticket_price"`
	MaxTickets  uint64 `json:"max_tickets"`
}

type Event struct {
	EventID     uint64       `json:"event_id"`
	Details     EventDetails `json:"details"`
	IssuerID    uint64       `json:"issuer_id"`
	TicketsSold uint64       `json:"tickets_sold"`
	Active      bool         `json:"active"`
	Host        string       `json:"host"`
}

type CreateEventRequest struct {
	Data struct {
		Details  *EventDetails `json:"details,omitempty"`
		IssuerID uint64        `json:"issuer_id,omitempty"`
	} `json:"data"`
}

type PurchaseTicketRequest struct {
	Data struct {
		TokenURI      string `json:"token_uri,omitempty"`
		PaymentAmount Amount `json:"payment_amount,omitempty"`
	} `json:"data"`
}

// PurchaseResult reports the boolean outcome of a purchase attempt. Rejected
// purchases are not errors at the API boundary.
type PurchaseResult struct {
	Success bool `json:"success"`
}

type DeactivateResult struct {
	Success bool `json:"success"`
}
