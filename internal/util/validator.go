package util

import (
	"fmt"

	"github.com/Adrixx117/Investments/internal/models"

	"github.com/shopspring/decimal"
)

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	KindRequired ErrorKind = "required" // mandatory field missing
	KindRange    ErrorKind = "range"    // numeric value outside its bound
	KindType     ErrorKind = "type"     // not a number where one is required
)

// Bounds on numeric input. Decimals rescale to the exponent in comparisons
// and formatting, so the exponent has to stay small.
const (
	maxNumberLength   = 40
	maxNumberExponent = 30
)

// ValidationError is the single failure surfaced for a draft.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func requiredError(field string) *ValidationError {
	return &ValidationError{Kind: KindRequired, Field: field, Message: field + " is required"}
}

func typeError(field string) *ValidationError {
	return &ValidationError{Kind: KindType, Field: field, Message: field + " must be a number"}
}

func rangeError(field, msg string) *ValidationError {
	return &ValidationError{Kind: KindRange, Field: field, Message: msg}
}

// ParseDecimal converts the raw value of field. ok is false when the field was
// left blank. A value that is not a number is a type error; one with too many
// digits or too large an exponent is a range error.
func ParseDecimal(field string, v models.FormValue) (d decimal.Decimal, ok bool, err error) {
	if v.Empty() {
		return decimal.Decimal{}, false, nil
	}
	text := v.Text()
	if len(text) > maxNumberLength {
		return decimal.Decimal{}, false, rangeError(field, field+" is out of range")
	}
	d, err = decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, false, typeError(field)
	}
	if exp := d.Exponent(); exp > maxNumberExponent || exp < -maxNumberExponent {
		return decimal.Decimal{}, false, rangeError(field, field+" is out of range")
	}
	return d, true, nil
}

// ValidateName requires a non-empty name.
func ValidateName(name string) error {
	if name == "" {
		return requiredError("name")
	}
	return nil
}

// ValidateNonNegative fails with a range error when d < 0.
func ValidateNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return rangeError(field, field+" must be a positive number")
	}
	return nil
}

// ValidateAtLeast fails with a range error when d < min.
func ValidateAtLeast(field string, d decimal.Decimal, min int64) error {
	if d.LessThan(decimal.NewFromInt(min)) {
		return rangeError(field, fmt.Sprintf("%s must be at least %d", field, min))
	}
	return nil
}

// ValidateInvestment turns a raw draft into a typed record. Conversion runs
// first, then the field rules in form order; only the first failure is
// returned, always as a *ValidationError. The record has no ID.
func ValidateInvestment(d models.Draft) (models.Investment, error) {
	t := models.TypeETF
	if !d.Type.Empty() {
		parsed, err := models.ParseType(d.Type.Text())
		if err != nil {
			return models.Investment{}, &ValidationError{Kind: KindType, Field: "type", Message: "type must be etf or stock"}
		}
		t = parsed
	}

	var dividend decimal.NullDecimal
	div, ok, err := ParseDecimal("dividend", d.Dividend)
	if err != nil {
		return models.Investment{}, err
	}
	if ok {
		dividend = decimal.NewNullDecimal(div)
	}

	price, hasPrice, err := ParseDecimal("price", d.Price)
	if err != nil {
		return models.Investment{}, err
	}
	quantity, hasQuantity, err := ParseDecimal("quantity", d.Quantity)
	if err != nil {
		return models.Investment{}, err
	}

	name := d.Name.Text()
	if err := ValidateName(name); err != nil {
		return models.Investment{}, err
	}
	if dividend.Valid {
		if div.IsNegative() {
			return models.Investment{}, rangeError("dividend", "dividend must be a positive number or empty")
		}
	}
	if !hasPrice {
		return models.Investment{}, requiredError("price")
	}
	if err := ValidateNonNegative("price", price); err != nil {
		return models.Investment{}, err
	}
	if !hasQuantity {
		return models.Investment{}, requiredError("quantity")
	}
	if err := ValidateAtLeast("quantity", quantity, 1); err != nil {
		return models.Investment{}, err
	}

	return models.Investment{
		Type:     t,
		Name:     name,
		Dividend: dividend,
		Price:    price,
		Quantity: quantity,
	}, nil
}
