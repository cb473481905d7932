package entity

// InboundMessage is one webhook callback from the messaging gateway.
// The gateway delivers at-least-once, so MessageID is the dedup key;
// it may be absent, in which case the message is processed unconditionally.
type InboundMessage struct {
	MessageID string      `json:"messageId"`
	Phone     string      `json:"phone"`
	Text      TextContent `json:"text"`
	ButtonID  string      `json:"buttonId"`
	Moment    int64       `json:"moment"`
}

type TextContent struct {
	Message string `json:"message"`
}

// InboundResult is what the webhook flow reports back to the gateway.
type InboundResult struct {
	Duplicate      bool   `json:"duplicate"`
	Processed      bool   `json:"processed"`
	NotificationID string `json:"notification_id,omitempty"`
}
