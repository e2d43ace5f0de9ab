package queue

const (
	TypeEmailSend = "email:send"
)

type EmailSendPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}
