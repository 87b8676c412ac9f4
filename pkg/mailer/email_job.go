package mailer

// EmailJob is a rendered or template-driven email ready for delivery.
// Html is optional; Text is recommended as fallback.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "bank_account_added", "bank_account_removed"
	Data     map[string]any `json:"data,omitempty"`
}

// EnsureRecipient copies the recipient address into the template data.
func (j *EmailJob) EnsureRecipient() {
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	if v, ok := j.Data["RecipientEmail"].(string); !ok || v == "" {
		j.Data["RecipientEmail"] = j.To
	}
}
