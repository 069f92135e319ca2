package inbound

import "net/http"

type TriggerRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

type TriggerResponse struct {
	Destination string `json:"destination"`
	MessageID   string `json:"message_id,omitempty"`
}

func (TriggerResponse) StatusCode() int { return http.StatusAccepted }

func (TriggerResponse) Message() string { return "mail trigger has been accepted" }

type NotifyRequest struct {
	Email   string `json:"email"`
	Content string `json:"content"`
}
