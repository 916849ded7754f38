// Package terminal reads attendance logs and user rosters from biometric
// terminals. Terminals only hand over their full log; there is no
// incremental query.
package terminal

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RawEvent is one attendance log entry exactly as the terminal reported it.
// Timestamp is left unparsed so the caller can apply the device's zone.
type RawEvent struct {
	EmployeeCode string
	Timestamp    string
	RawState     *int
}

type RawUser struct {
	Code string
	Name string
}

// flexString accepts either a JSON string or a bare number; terminals report
// user ids as both depending on firmware.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
