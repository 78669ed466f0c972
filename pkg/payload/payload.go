// Package payload defines the debug payload exchanged with the web IDE.
package payload

import (
	"encoding/json"
	"fmt"
)

// ArchiveEntryName is the file name the ZIP-variant codec stores the
// serialized payload under inside the archive.
const ArchiveEntryName = "data.json"

// DebugPayload is the debug session document exchanged between the IDE
// plugin and the web IDE. It is a pure value: every field is optional
// and defaults to empty, and instances carry no identity beyond their
// contents.
//
// Field order matters for the wire: the JSON serializer emits keys in
// declaration order, and the ZIP-variant transport string is only
// byte-stable across encodes when the serialized text is.
type DebugPayload struct {
	// CurrentSessionType identifies the scripting flavor of the
	// session (e.g. "groovy").
	CurrentSessionType string `json:"currentSessionType"`
	// ScriptInput is the message body handed to the script.
	ScriptInput string `json:"scriptInput"`
	// Script is the script source itself.
	Script string `json:"script"`
	// FunctionName is the entry function the IDE invokes.
	FunctionName string `json:"functionName"`
	// Headers holds the exchange headers visible to the script.
	Headers map[string]string `json:"headers"`
	// Properties holds the exchange properties visible to the script.
	Properties map[string]string `json:"properties"`
}

// New returns an empty payload with the header and property maps
// allocated.
func New() *DebugPayload {
	return &DebugPayload{
		Headers:    make(map[string]string),
		Properties: make(map[string]string),
	}
}

// Normalize replaces nil maps with empty ones so that decoded and
// freshly constructed payloads compare equal and serialize identically.
func (p *DebugPayload) Normalize() {
	if p.Headers == nil {
		p.Headers = make(map[string]string)
	}
	if p.Properties == nil {
		p.Properties = make(map[string]string)
	}
}

// JSON serializes the payload to its canonical JSON text. Both codec
// variants use this text as the compression input.
func (p *DebugPayload) JSON() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serializing debug payload: %w", err)
	}
	return data, nil
}

// FromJSON parses JSON text into a payload, normalizing nil maps.
func FromJSON(data []byte) (*DebugPayload, error) {
	var p DebugPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing debug payload: %w", err)
	}
	p.Normalize()
	return &p, nil
}
