package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("1000")
	require.NoError(t, err)
	assert.Equal(t, "1000", a.String())

	// Full 128-bit range is accepted.
	max := "340282366920938463463374607431768211455"
	a, err = ParseAmount(max)
	require.NoError(t, err)
	assert.Equal(t, max, a.String())
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		"abc",
		"-1",
		"340282366920938463463374607431768211456", // 2^128
	} {
		_, err := ParseAmount(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestAmountCmp(t *testing.T) {
	assert.Equal(t, -1, NewAmount(500).Cmp(NewAmount(1000)))
	assert.Equal(t, 0, NewAmount(1000).Cmp(NewAmount(1000)))
	assert.Equal(t, 1, NewAmount(1500).Cmp(NewAmount(1000)))
}

func TestAmountJSON(t *testing.T) {
	data, err := json.Marshal(NewAmount(1000))
	require.NoError(t, err)
	assert.Equal(t, `"1000"`, string(data))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"2500"`), &a))
	assert.Equal(t, "2500", a.String())

	// Unquoted numbers are accepted too.
	require.NoError(t, json.Unmarshal([]byte(`2500`), &a))
	assert.Equal(t, "2500", a.String())

	assert.Error(t, json.Unmarshal([]byte(`"-5"`), &a))
}

func TestAmountSQL(t *testing.T) {
	v, err := NewAmount(1000).Value()
	require.NoError(t, err)
	assert.Equal(t, "1000", v)

	var a Amount
	require.NoError(t, a.Scan([]byte("42")))
	assert.Equal(t, "42", a.String())

	require.NoError(t, a.Scan("7"))
	assert.Equal(t, "7", a.String())

	assert.Error(t, a.Scan(3.14))
}

func TestAmountJSONRoundTripInDetails(t *testing.T) {
	details := EventDetails{
		Title:       "Concert",
		TicketPrice: NewAmount(1000),
		MaxTickets:  100,
	}

	data, err := json.Marshal(details)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"ticket_price":"1000"`))

	var decoded EventDetails
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 0, decoded.TicketPrice.Cmp(details.TicketPrice))
}
