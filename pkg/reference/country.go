package reference

import "strings"

// Country is an ISO 3166-1 entry
type Country struct {
	Alpha2 string
	Alpha3 string
	Name   string
}

var ETH = Country{Alpha2: "ET", Alpha3: "ETH", Name: "Ethiopia"}

var countriesByAlpha2 = map[string]Country{
	ETH.Alpha2: ETH,
}

// CountryByAlpha2 looks up a country by its two-letter code, case-insensitively.
func CountryByAlpha2(code string) (Country, bool) {
	c, ok := countriesByAlpha2[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}
