package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValue_UnmarshalJSON(t *testing.T) {
	var d Draft
	require.NoError(t, json.Unmarshal([]byte(`{"name":" VOO ","price":400.5,"quantity":"2","dividend":null}`), &d))
	assert.Equal(t, "VOO", d.Name.Text())
	assert.Equal(t, FormValue("400.5"), d.Price)
	assert.Equal(t, FormValue("2"), d.Quantity)
	assert.True(t, d.Dividend.Empty())

	assert.Error(t, json.Unmarshal([]byte(`{"price":true}`), &d))
	assert.Error(t, json.Unmarshal([]byte(`{"price":[1]}`), &d))
}

func TestPatch_Apply(t *testing.T) {
	base := Draft{Type: "etf", Name: "VOO", Dividend: "1.2", Price: "400", Quantity: "2"}

	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Vanguard","price":null,"dividend":""}`), &p))
	got := p.Apply(base)

	assert.Equal(t, FormValue("Vanguard"), got.Name)
	assert.Equal(t, FormValue("400"), got.Price)
	assert.Equal(t, FormValue(""), got.Dividend)
	assert.Equal(t, FormValue("2"), got.Quantity)
	assert.Equal(t, FormValue("etf"), got.Type)
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{
		"etf": TypeETF, "ETFs": TypeETF, " stock ": TypeStock, "Acciones": TypeStock, "acción": TypeStock,
	} {
		got, err := ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseType("bond")
	assert.Error(t, err)
	assert.False(t, Type("bond").Valid())
	assert.Equal(t, "Stock", TypeStock.Label())
}

func TestInvestment_JSON(t *testing.T) {
	inv := Investment{
		ID:       "1",
		Type:     TypeETF,
		Name:     "VOO",
		Price:    decimal.RequireFromString("400.10"),
		Quantity: decimal.NewFromInt(2),
	}
	b, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","type":"etf","name":"VOO","dividend":null,"price":400.1,"quantity":2}`, string(b))

	var back Investment
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(inv))

	d := inv.Draft()
	assert.Equal(t, FormValue("etf"), d.Type)
	assert.True(t, d.Dividend.Empty())
}
