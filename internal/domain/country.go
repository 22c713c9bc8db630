package domain

import "encoding/json"

// Country is a single country record as returned by the REST Countries API.
// Only the fields this service reads or projects are decoded.
type Country struct {
	Name       CountryName       `json:"name"`
	Capital    []string          `json:"capital"`
	Population int64             `json:"population"`
	Area       float64           `json:"area"`
	Languages  map[string]string `json:"languages"`
	Flags      Flags             `json:"flags"`
	Currencies Currencies        `json:"currencies"`
	LatLng     []float64         `json:"latlng"`
	Region     string            `json:"region"`
	Subregion  string            `json:"subregion"`
}

// CountryName holds the common, official and native names of a country.
type CountryName struct {
	Common     string                `json:"common"`
	Official   string                `json:"official"`
	NativeName map[string]NativeName `json:"nativeName,omitempty"`
}

// NativeName is a country's name in one of its native locales.
type NativeName struct {
	Official string `json:"official"`
	Common   string `json:"common"`
}

// Flags holds the flag image URLs and the alt text.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt,omitempty"`
}

// CountryDetails is the projection served by the single-country lookup.
type CountryDetails struct {
	Name         string                `json:"name"`
	OfficialName string                `json:"official_name"`
	NativeNames  map[string]NativeName `json:"nativeNames"`
	Capital      string                `json:"capital"`
	Population   int64                 `json:"population"`
	Area         float64               `json:"area"`
	Languages    map[string]string     `json:"languages"`
	Flag         string                `json:"flag"`
	FlagAlt      string                `json:"flag_alt"`
	Currency     *Currency             `json:"currency"`
	LatLng       []float64             `json:"latlng"`
}

// Details projects the country into the shape served by /api/country/{country}.
// A country without capitals gets an empty capital and one without
// currencies gets a nil currency.
func (c Country) Details() CountryDetails {
	details := CountryDetails{
		Name:         c.Name.Common,
		OfficialName: c.Name.Official,
		NativeNames:  c.Name.NativeName,
		Population:   c.Population,
		Area:         c.Area,
		Languages:    c.Languages,
		Flag:         c.Flags.PNG,
		FlagAlt:      c.Flags.Alt,
		LatLng:       c.LatLng,
	}
	if len(c.Capital) > 0 {
		details.Capital = c.Capital[0]
	}
	if _, cur, ok := c.Currencies.First(); ok {
		details.Currency = &cur
	}
	return details
}

// DecodeCountry decodes one raw upstream country object.
func DecodeCountry(raw json.RawMessage) (Country, error) {
	var c Country
	if err := json.Unmarshal(raw, &c); err != nil {
		return Country{}, err
	}
	return c, nil
}

// LanguageEntry is one row of the /api/languages listing.
type LanguageEntry struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// CurrencyEntry is one row of the /api/currencies listing.
type CurrencyEntry struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// SearchField names an upstream search endpoint.
type SearchField string

const (
	SearchByLanguage  SearchField = "lang"
	SearchByCurrency  SearchField = "currency"
	SearchByRegion    SearchField = "region"
	SearchBySubregion SearchField = "subregion"
)
