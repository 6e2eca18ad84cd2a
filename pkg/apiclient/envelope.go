package apiclient

import "encoding/json"

// Envelope is the application-level wrapper every backend endpoint returns,
// independent of the HTTP status. Code 0 means success.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// OK reports whether the envelope signals success.
func (e Envelope) OK() bool { return e.Code == 0 }

// envelopeWire detects a missing code field, which is treated as malformed.
type envelopeWire struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(body []byte) (Envelope, error) {
	var w envelopeWire
	if err := json.Unmarshal(body, &w); err != nil {
		return Envelope{}, err
	}
	if w.Code == nil {
		return Envelope{}, errMissingCode
	}
	return Envelope{Code: *w.Code, Message: w.Message, Data: w.Data}, nil
}
