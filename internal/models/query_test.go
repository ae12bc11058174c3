package models

import (
	"testing"
)

func TestLookupQuery_Validate(t *testing.T) {
	tests := []struct {
		name      string
		query     *LookupQuery
		wantErr   bool
		wantLimit int
	}{
		{"empty reference", &LookupQuery{Reference: ""}, true, 0},
		{"blank reference", &LookupQuery{Reference: "   "}, true, 0},
		{"valid reference", &LookupQuery{Reference: "Mark 7:14-23"}, false, 3},
		{"keeps smaller limit", &LookupQuery{Reference: "Mark 7:14", Limit: 1}, false, 1},
		{"caps limit", &LookupQuery{Reference: "Mark 7:14", Limit: 50}, false, 3},
		{"negative limit", &LookupQuery{Reference: "Mark 7:14", Limit: -2}, false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.query.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", tt.query.Limit, tt.wantLimit)
			}
		})
	}
}

func TestLookupQuery_ValidateTrims(t *testing.T) {
	q := &LookupQuery{Reference: "  Mark 7:14  "}
	if err := q.Validate(); err != nil {
		t.Fatal(err)
	}
	if q.Reference != "Mark 7:14" {
		t.Errorf("reference = %q", q.Reference)
	}
}
