package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const franceJSON = `{
	"name": {
		"common": "France",
		"official": "French Republic",
		"nativeName": {"fra": {"official": "République française", "common": "France"}}
	},
	"capital": ["Paris"],
	"population": 67391582,
	"area": 551695,
	"languages": {"fra": "French"},
	"flags": {"png": "https://flagcdn.com/w320/fr.png", "svg": "https://flagcdn.com/fr.svg", "alt": "Blue, white and red"},
	"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
	"latlng": [46, 2],
	"region": "Europe",
	"subregion": "Western Europe"
}`

func TestCountryDetails_Projection(t *testing.T) {
	c, err := DecodeCountry(json.RawMessage(franceJSON))
	require.NoError(t, err)

	d := c.Details()

	assert.Equal(t, "France", d.Name)
	assert.Equal(t, "French Republic", d.OfficialName)
	assert.Equal(t, "République française", d.NativeNames["fra"].Official)
	assert.Equal(t, "Paris", d.Capital)
	assert.Equal(t, int64(67391582), d.Population)
	assert.Equal(t, 551695.0, d.Area)
	assert.Equal(t, map[string]string{"fra": "French"}, d.Languages)
	assert.Equal(t, "https://flagcdn.com/w320/fr.png", d.Flag)
	assert.Equal(t, "Blue, white and red", d.FlagAlt)
	require.NotNil(t, d.Currency)
	assert.Equal(t, Currency{Name: "Euro", Symbol: "€"}, *d.Currency)
	assert.Equal(t, []float64{46, 2}, d.LatLng)
}

func TestCountryDetails_JSONKeys(t *testing.T) {
	c, err := DecodeCountry(json.RawMessage(franceJSON))
	require.NoError(t, err)

	b, err := json.Marshal(c.Details())
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	for _, key := range []string{
		"name", "official_name", "nativeNames", "capital", "population", "area",
		"languages", "flag", "flag_alt", "currency", "latlng",
	} {
		assert.Contains(t, out, key)
	}
	assert.Equal(t, "€", out["currency"].(map[string]interface{})["symbol"])
}

func TestCountryDetails_MissingCapitalAndCurrencies(t *testing.T) {
	c, err := DecodeCountry(json.RawMessage(`{"name":{"common":"Antarctica","official":"Antarctica"},"population":1000}`))
	require.NoError(t, err)

	d := c.Details()

	assert.Equal(t, "Antarctica", d.Name)
	assert.Empty(t, d.Capital)
	assert.Nil(t, d.Currency)
}

func TestDecodeCountry_Malformed(t *testing.T) {
	_, err := DecodeCountry(json.RawMessage(`{"name": "not an object"}`))
	assert.Error(t, err)
}
