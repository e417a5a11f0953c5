package model

// Issuer is a ticket issuer instance. Each event is paired with exactly one
// issuer; the issuer owns the token id space for that event.
type Issuer struct {
	IssuerID uint64 `json:"issuer_id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
}

// Ticket is a minted, non-transferable token. Owner and URI never change.
type Ticket struct {
	IssuerID uint64 `json:"issuer_id"`
	TokenID  uint64 `json:"token_id"`
	Owner    string `json:"owner"`
	TokenURI string `json:"token_uri"`
}

type CreateIssuerRequest struct {
	Data struct {
		Name   string `json:"name,omitempty"`
		Symbol string `json:"symbol,omitempty"`
	} `json:"data"`
}
