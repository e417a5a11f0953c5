package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIssuerHandler(t *testing.T) {
	s := newServices(t)

	w := doRequest(CreateIssuer(s.issuer), http.MethodPost, `{"data":{"name":"BlockPassNFT","symbol":"BPNT"}}`, "host-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	iss := decodeData(t, w).Issuer
	require.NotNil(t, iss)
	assert.Equal(t, uint64(2), iss.IssuerID)
	assert.Equal(t, "BlockPassNFT", iss.Name)
	assert.Equal(t, "BPNT", iss.Symbol)
}

func TestGetTicketOwnerHandler(t *testing.T) {
	s := newServices(t)

	tokenID, err := s.issuer.MintTicket(context.Background(), s.issuerID, "alice", "https://example.com/nft/1")
	require.NoError(t, err)

	vars := map[string]string{"issuerID": itoa(s.issuerID), "tokenID": itoa(tokenID)}

	w := doRequest(GetTicketOwner(s.issuer), http.MethodGet, "", "alice", vars)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.NotNil(t, data.Owner)
	assert.Equal(t, "alice", *data.Owner)

	w = doRequest(GetTokenURI(s.issuer), http.MethodGet, "", "alice", vars)
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	require.NotNil(t, data.TokenURI)
	assert.Equal(t, "https://example.com/nft/1", *data.TokenURI)
}

func TestGetTicketOwnerHandler_NotFound(t *testing.T) {
	s := newServices(t)

	vars := map[string]string{"issuerID": itoa(s.issuerID), "tokenID": "9"}
	w := doRequest(GetTicketOwner(s.issuer), http.MethodGet, "", "alice", vars)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
