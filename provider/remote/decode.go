package remote

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// decode accepts both a bare JSON value and the {"data": ...} envelope
func decode(resp *http.Response, out any) error {
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
			raw = envelope.Data
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	return nil
}
