package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Currency is a currency's display name and symbol.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Currencies is a country's currency mapping keyed by ISO 4217 code.
// Upstream document order is kept so the first currency is well defined.
type Currencies struct {
	codes  []string
	byCode map[string]Currency
}

// NewCurrencies builds a mapping from code/currency pairs in the given order.
// A repeated code keeps its first position and its last value.
func NewCurrencies(pairs ...CurrencyEntry) Currencies {
	var c Currencies
	for _, p := range pairs {
		c.set(p.Code, Currency{Name: p.Name, Symbol: p.Symbol})
	}
	return c
}

func (c *Currencies) set(code string, cur Currency) {
	if c.byCode == nil {
		c.byCode = make(map[string]Currency)
	}
	if _, exists := c.byCode[code]; !exists {
		c.codes = append(c.codes, code)
	}
	c.byCode[code] = cur
}

// Len returns the number of currencies.
func (c Currencies) Len() int { return len(c.codes) }

// Codes returns the currency codes in document order.
func (c Currencies) Codes() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

// Get looks up a currency by code.
func (c Currencies) Get(code string) (Currency, bool) {
	cur, ok := c.byCode[code]
	return cur, ok
}

// First returns the first currency in document order.
func (c Currencies) First() (string, Currency, bool) {
	if len(c.codes) == 0 {
		return "", Currency{}, false
	}
	code := c.codes[0]
	return code, c.byCode[code], true
}

// UnmarshalJSON reads a JSON object while recording key order.
func (c *Currencies) UnmarshalJSON(data []byte) error {
	*c = Currencies{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("currencies: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		code, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("currencies: expected string key, got %v", keyTok)
		}
		var cur Currency
		if err := dec.Decode(&cur); err != nil {
			return fmt.Errorf("currencies: decode %q: %w", code, err)
		}
		c.set(code, cur)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON writes the mapping back as an object in document order.
func (c Currencies) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, code := range c.codes {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(code)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.byCode[code])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
