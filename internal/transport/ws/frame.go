package ws

import (
	"encoding/json"
)

const (
	FrameSubmitQuery = "submitQuery"
	FrameAnswer      = "answer"
	FrameQueryError  = "queryError"
)

// Frame is the JSON envelope of every message on a session channel.
type Frame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

func textFrame(typ, requestID, text string) Frame {
	// Marshalling a string cannot fail.
	payload, _ := json.Marshal(text)
	return Frame{Type: typ, RequestID: requestID, Payload: payload}
}

func answerFrame(requestID, answer string) Frame {
	return textFrame(FrameAnswer, requestID, answer)
}

func errorFrame(requestID, message string) Frame {
	return textFrame(FrameQueryError, requestID, message)
}
