package dto

import (
	"fmt"

	"gamereviews/internal/http-api/service"
)

// MessageResponse is what every admin form endpoint answers with.
type MessageResponse struct {
	Messages []service.Message `json:"messages"`
	Redirect string            `json:"redirect,omitempty"`
}

func NewMessageResponse(redirect string, msgs ...service.Message) MessageResponse {
	if msgs == nil {
		msgs = []service.Message{}
	}
	return MessageResponse{Messages: msgs, Redirect: redirect}
}

// ErrorMessage builds a single error-level message.
func ErrorMessage(text string) service.Message {
	return service.Message{Level: service.LevelError, Text: text}
}

// PageRedirect appends ?page=N to path unless page is the first one.
func PageRedirect(path string, page int) string {
	if page <= 1 {
		return path
	}
	return fmt.Sprintf("%s?page=%d", path, page)
}
