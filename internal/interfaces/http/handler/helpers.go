package handler

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// money converts a domain amount to a JSON number
func money(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Amount is a numeric request field. Clients may send a JSON number or a
// string typed the way the till operator writes it ("12,50"); parsing is left
// to the application layer.
type Amount string

// UnmarshalJSON accepts numbers and strings
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// comandaID reads the :id path parameter of a ticket
func comandaID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, shared.NotFound("comanda not found")
	}
	return id, nil
}
