package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// price, quantity and dividend travel as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Type is the kind of investment. It decides which partition a record lives in.
type Type string

const (
	TypeETF   Type = "etf"
	TypeStock Type = "stock"
)

// Types lists every investment type in display order.
var Types = []Type{TypeETF, TypeStock}

// ParseType accepts the canonical names plus the aliases used by older data
// ("accion", "acciones").
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "etf", "etfs":
		return TypeETF, nil
	case "stock", "stocks", "accion", "acción", "acciones":
		return TypeStock, nil
	}
	return "", fmt.Errorf("unknown investment type %q", s)
}

func (t Type) Valid() bool {
	return t == TypeETF || t == TypeStock
}

// Label is the human name shown in tabs and export sheets.
func (t Type) Label() string {
	switch t {
	case TypeETF:
		return "ETF"
	case TypeStock:
		return "Stock"
	}
	return string(t)
}

// Investment is a validated record as persisted and displayed.
//
// Dividend is optional and stays null when absent, it is never coerced to 0.
type Investment struct {
	ID       string              `json:"id"`
	Type     Type                `json:"type"`
	Name     string              `json:"name"`
	Dividend decimal.NullDecimal `json:"dividend"`
	Price    decimal.Decimal     `json:"price"`
	Quantity decimal.Decimal     `json:"quantity"`
}

// Draft returns the record as raw form input, used to merge partial edits
// before re-validating.
func (inv Investment) Draft() Draft {
	d := Draft{
		Type:     FormValue(inv.Type),
		Name:     FormValue(inv.Name),
		Price:    FormValue(inv.Price.String()),
		Quantity: FormValue(inv.Quantity.String()),
	}
	if inv.Dividend.Valid {
		d.Dividend = FormValue(inv.Dividend.Decimal.String())
	}
	return d
}

// Equal compares field values, decimals by numeric value.
func (inv Investment) Equal(other Investment) bool {
	if inv.ID != other.ID || inv.Type != other.Type || inv.Name != other.Name {
		return false
	}
	if inv.Dividend.Valid != other.Dividend.Valid {
		return false
	}
	if inv.Dividend.Valid && !inv.Dividend.Decimal.Equal(other.Dividend.Decimal) {
		return false
	}
	return inv.Price.Equal(other.Price) && inv.Quantity.Equal(other.Quantity)
}
