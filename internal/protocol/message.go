package protocol

import "encoding/json"

// Message is the wire envelope: a type tag plus a type-specific payload.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType tags the payload.
type MessageType string

// Client to server.
const (
	MsgHello   MessageType = "hello"   // join a table, carries the local game config
	MsgThrow   MessageType = "throw"   // propose a card subset
	MsgPass    MessageType = "pass"    // decline to throw
	MsgForfeit MessageType = "forfeit" // concede the round
	MsgQuit    MessageType = "quit"    // abandon the round for everyone
	MsgPing    MessageType = "ping"    // heartbeat
)

// Server to client.
const (
	MsgWelcome   MessageType = "welcome"    // seat assignment after a hello
	MsgState     MessageType = "state"      // full table snapshot
	MsgThrown    MessageType = "thrown"     // a seat committed a throw
	MsgPassed    MessageType = "passed"     // a seat passed
	MsgRoundOver MessageType = "round_over" // finish order and loser
	MsgPong      MessageType = "pong"       // heartbeat reply
	MsgError     MessageType = "error"      // coded rejection
)

// Encode wraps a payload into an envelope and marshals it.
func Encode(msgType MessageType, payload any) ([]byte, error) {
	msg := Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = data
	}
	return json.Marshal(msg)
}

// Decode unmarshals an envelope.
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DecodePayload unmarshals the payload into out.
func DecodePayload(msg *Message, out any) error {
	return json.Unmarshal(msg.Payload, out)
}
