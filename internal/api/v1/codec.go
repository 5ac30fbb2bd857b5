package apiv1

import (
	"encoding/json"
	"fmt"
)

// Codec marshals the plain Go messages of this package as JSON for Connect.
// It takes the place of the protobuf JSON codec, which only accepts
// generated messages.
type Codec struct{}

func (Codec) Name() string {
	return "json"
}

func (Codec) Marshal(message any) ([]byte, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(%T) > %w", message, err)
	}
	return data, nil
}

func (Codec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, message); err != nil {
		return fmt.Errorf("json.Unmarshal(%T) > %w", message, err)
	}
	return nil
}
