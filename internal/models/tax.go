package models

// TaxSettings maps the closed region set to tax rates stored as fractions
// (0.07 means 7%). Read on every checkout, written from the admin panel.
type TaxSettings struct {
	US    float64 `json:"US"`
	CA    float64 `json:"CA"`
	Other float64 `json:"OTHER"`
}

// RateFor resolves a customer country to a rate. Unknown or missing countries
// resolve to the zero rate, not OTHER.
func (t TaxSettings) RateFor(country string) float64 {
	switch country {
	case "US":
		return t.US
	case "CA":
		return t.CA
	case "OTHER":
		return t.Other
	}
	return 0
}
