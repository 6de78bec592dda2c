package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FormValue is a raw form field. Form input is textual, but JSON clients may
// also send numbers or null. The raw text is kept for the validator to convert.
type FormValue string

func (v *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("form value must be a string or a number, got %s", b)
	}
	*v = FormValue(n.String())
	return nil
}

// Text returns the trimmed raw value.
func (v FormValue) Text() string {
	return strings.TrimSpace(string(v))
}

// Empty reports whether the field was left blank.
func (v FormValue) Empty() bool {
	return v.Text() == ""
}

// Draft is the create/edit form as submitted.
type Draft struct {
	Type     FormValue `json:"type" form:"type"`
	Name     FormValue `json:"name" form:"name"`
	Dividend FormValue `json:"dividend" form:"dividend"`
	Price    FormValue `json:"price" form:"price"`
	Quantity FormValue `json:"quantity" form:"quantity"`
}

// Patch carries only the fields a partial edit touches. A nil field keeps the
// stored value; an empty string clears an optional field such as dividend.
type Patch struct {
	Name     *FormValue `json:"name"`
	Dividend *FormValue `json:"dividend"`
	Price    *FormValue `json:"price"`
	Quantity *FormValue `json:"quantity"`
}

// Apply merges the patch onto d.
func (p Patch) Apply(d Draft) Draft {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Dividend != nil {
		d.Dividend = *p.Dividend
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Quantity != nil {
		d.Quantity = *p.Quantity
	}
	return d
}
