package dto

import "encoding/json"

// Envelope is the body every endpoint returns on success
type Envelope struct {
	Status     int             `json:"status"`
	Error      bool            `json:"error"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination describes one page of a list response
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ErrorEnvelope is the body returned with non-2xx statuses.
// Messages holds an optional summary under "error" plus one entry per invalid field.
type ErrorEnvelope struct {
	Status   int               `json:"status"`
	Error    int               `json:"error"`
	Messages map[string]string `json:"messages"`
}

// MessageKey is the Messages entry that carries the summary rather than a field
const MessageKey = "error"

// NewEnvelope builds a success envelope with data marshalled into it
func NewEnvelope(status int, message string, data any) (Envelope, error) {
	env := Envelope{Status: status, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Envelope{}, err
		}
		env.Data = raw
	}
	return env, nil
}

// NewErrorEnvelope builds an error envelope with a summary and optional field messages
func NewErrorEnvelope(status int, summary string, fields map[string]string) ErrorEnvelope {
	messages := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		messages[k] = v
	}
	if summary != "" {
		messages[MessageKey] = summary
	}
	return ErrorEnvelope{Status: status, Error: status, Messages: messages}
}
