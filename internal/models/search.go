package models

// SearchResult is one row from a provider organization search.
type SearchResult struct {
	EIN        string `json:"ein"`
	Name       string `json:"name"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Subsection string `json:"subsection,omitempty"`
	NTEECode   string `json:"ntee_code,omitempty"`
}
