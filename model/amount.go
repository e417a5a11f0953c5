package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/big"
)

const amountBits = 128

// Amount is an unsigned 128-bit value used for ticket prices and attached
// payments. It marshals to a decimal string in JSON and maps to a
// DECIMAL(39,0) column.
type Amount struct {
	i big.Int
}

func NewAmount(v uint64) Amount {
	var a Amount
	a.i.SetUint64(v)
	return a
}

func ParseAmount(s string) (Amount, error) {
	var a Amount
	if _, ok := a.i.SetString(s, 10); !ok {
		return Amount{}, fmt.Errorf("parseAmount: not a decimal number: %q", s)
	}
	if a.i.Sign() < 0 || a.i.BitLen() > amountBits {
		return Amount{}, fmt.Errorf("parseAmount: out of range: %q", s)
	}
	return a, nil
}

// Cmp returns -1, 0 or 1 as a is less than, equal to or greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.i.Cmp(&b.i)
}

func (a Amount) String() string {
	return a.i.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.i.String())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Bare numbers are accepted for callers that do not quote amounts.
		s = string(data)
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Amount) Value() (driver.Value, error) {
	return a.i.String(), nil
}

func (a *Amount) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = Amount{}
		return nil
	case []byte:
		parsed, err := ParseAmount(string(v))
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	case string:
		parsed, err := ParseAmount(v)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	case int64:
		if v < 0 {
			return fmt.Errorf("scan: negative amount: %d", v)
		}
		a.i.SetInt64(v)
		return nil
	default:
		return fmt.Errorf("scan: unsupported amount type: %T", src)
	}
}
