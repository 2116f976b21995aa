// Package model defines the core domain entities for the package form.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an upstream identifier. The upstream API is inconsistent about
// sending identifiers as JSON numbers or strings, so both decode into the
// same textual form that the form posts back verbatim.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: expected string or number, got %s", data)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier as sent to the upstream.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty or the number zero,
// which the upstream uses interchangeably for "absent".
func (id ID) IsZero() bool {
	if id == "" {
		return true
	}
	if f, err := strconv.ParseFloat(string(id), 64); err == nil {
		return f == 0
	}
	return false
}
