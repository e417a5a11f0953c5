package response

import (
	"encoding/json"
	"net/http"

	"blockpass-backend/model"
)

type SuccessResponse struct {
	Data       *Data `json:"data"`
	StatusCode int   `json:"-"`
}

type Data struct {
	EventID    uint64                  `json:"event_id,omitempty"`
	Event      *model.Event            `json:"event,omitempty"`
	Details    *model.EventDetails     `json:"details,omitempty"`
	IssuerID   *uint64                 `json:"issuer_id,omitempty"`
	Issuer     *model.Issuer           `json:"issuer,omitempty"`
	Attendees  []string                `json:"attendees,omitempty"`
	EventIDs   []uint64                `json:"event_ids,omitempty"`
	Purchase   *model.PurchaseResult   `json:"purchase,omitempty"`
	Deactivate *model.DeactivateResult `json:"deactivate,omitempty"`
	Owner      *string                 `json:"owner,omitempty"`
	TokenURI   *string                 `json:"token_uri,omitempty"`
}

func (r SuccessResponse) Send(w http.ResponseWriter) {
	w.WriteHeader(r.StatusCode)
	json.NewEncoder(w).Encode(r)
}
