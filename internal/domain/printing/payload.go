// Package printing holds the label job model: requests, payloads, the per-job
// socket state machine and the printer directory used to resolve targets.
package printing

import (
	"bytes"
	"encoding/json"

	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
)

// PayloadKind describes how label data was supplied.
type PayloadKind string

const (
	// PayloadEmpty means no label data was supplied.
	PayloadEmpty PayloadKind = "empty"
	// PayloadRaw is a pre-formatted label passed through unchanged.
	PayloadRaw PayloadKind = "raw"
	// PayloadRecord is a structured pallet record rendered by the label formatter.
	PayloadRecord PayloadKind = "record"
)

// Payload is the label data of a job: either raw printer markup or a structured record.
type Payload struct {
	Kind   PayloadKind
	Raw    string
	Record map[string]any
}

// RawPayload wraps pre-formatted printer markup.
func RawPayload(s string) Payload {
	return Payload{Kind: PayloadRaw, Raw: s}
}

// RecordPayload wraps a structured record.
func RecordPayload(fields map[string]any) Payload {
	return Payload{Kind: PayloadRecord, Record: fields}
}

// IsEmpty reports whether the payload carries no label data.
func (p Payload) IsEmpty() bool {
	switch p.Kind {
	case PayloadRaw:
		return p.Raw == ""
	case PayloadRecord:
		return p.Record == nil
	default:
		return true
	}
}

// ParsePayload interprets the JSON "data" member of a print request.
// A JSON string is raw markup, an object is a record and null or absent data is empty.
// Any other JSON kind fails with a malformed payload error.
func ParsePayload(data []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Payload{Kind: PayloadEmpty}, nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Payload{}, apperrors.Wrap(err, apperrors.ErrCodeMalformedPayload, "decode label string")
		}
		return RawPayload(s), nil
	case '{':
		var fields map[string]any
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return Payload{}, apperrors.Wrap(err, apperrors.ErrCodeMalformedPayload, "decode label record")
		}
		return RecordPayload(fields), nil
	default:
		return Payload{}, apperrors.MalformedPayloadf(
			"label data must be a string or an object, got %s", jsonKind(trimmed[0]))
	}
}

func jsonKind(first byte) string {
	switch first {
	case '[':
		return "an array"
	case 't', 'f':
		return "a boolean"
	default:
		return "a number"
	}
}

// MarshalJSON renders the payload back into its request form.
func (p Payload) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PayloadRaw:
		return json.Marshal(p.Raw)
	case PayloadRecord:
		return json.Marshal(p.Record)
	default:
		return []byte("null"), nil
	}
}
