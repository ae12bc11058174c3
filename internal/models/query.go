package models

import (
	"fmt"
	"strings"
)

// MaxMatchesPerReading bounds how many commentaries a single citation returns.
const MaxMatchesPerReading = 3

// LookupQuery is a request to match one citation against the index.
type LookupQuery struct {
	Reference string `json:"reference"`
	Limit     int    `json:"limit,omitempty"`
}

// Validate trims the reference and clamps Limit to 1..MaxMatchesPerReading.
// Returns an error if the reference is empty.
func (q *LookupQuery) Validate() error {
	q.Reference = strings.TrimSpace(q.Reference)
	if q.Reference == "" {
		return fmt.Errorf("reference cannot be empty")
	}
	if q.Limit <= 0 || q.Limit > MaxMatchesPerReading {
		q.Limit = MaxMatchesPerReading
	}
	return nil
}
