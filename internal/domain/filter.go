package domain

// Filter narrows the full country list. Empty fields match every country;
// set fields must all match.
type Filter struct {
	Language  string
	Currency  string
	Region    string
	Subregion string
}

// IsEmpty reports whether no criterion is set.
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Matches reports whether the country satisfies every set criterion.
// Language and currency are code lookups; region and subregion are exact matches.
func (f Filter) Matches(c Country) bool {
	if f.Language != "" {
		if _, ok := c.Languages[f.Language]; !ok {
			return false
		}
	}
	if f.Currency != "" {
		if _, ok := c.Currencies.Get(f.Currency); !ok {
			return false
		}
	}
	if f.Region != "" && c.Region != f.Region {
		return false
	}
	if f.Subregion != "" && c.Subregion != f.Subregion {
		return false
	}
	return true
}
