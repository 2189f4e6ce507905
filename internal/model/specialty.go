package model

// Specialty is a medical discipline with a canonical reference page and the
// keywords that route a query to it. Keywords are ordered; the order is part
// of the classification contract.
type Specialty struct {
	Key      string   `json:"key" yaml:"key"`
	Name     string   `json:"name" yaml:"name"`
	URL      string   `json:"url" yaml:"url"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}
