package transport

import "encoding/json"

// MessageType discriminates the small protocol spoken over the
// validation websocket: clients send validate, the server answers each
// with a result (a rejected message gets a result with valid false and
// the reason in error), and the server sends unsolicited keepAlive
// frames. MessageTypeError is declared but this server does not send it.
type MessageType string

const (
	MessageTypeValidate  MessageType = "validate"
	MessageTypeResult    MessageType = "result"
	MessageTypeError     MessageType = "error"
	MessageTypeKeepAlive MessageType = "keepAlive"
)

// Message is the envelope for every frame sent in either direction.
type Message struct {
	Id      string          `json:"id,omitempty"`
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ValidatePayload is the payload of a validate message: a JSON-encoded
// query document in the jsondoc format.
type ValidatePayload struct {
	Document json.RawMessage `json:"document"`
}

// ResultPayload is the payload of a result message.
type ResultPayload struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
