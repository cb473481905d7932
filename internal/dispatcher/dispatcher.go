// Channel dispatchers. Each sender is an isolated failure domain: the
// router decides per call site whether a failure is swallowed or surfaced.
package dispatcher

import (
	"context"
	"encoding/json"
)

type PushRequest struct {
	Title    string                 `json:"title"`
	Message  string                 `json:"message"`
	UserIDs  []string               `json:"user_ids,omitempty"`
	EquipeID string                 `json:"equipe_id,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

type PushSender interface {
	Send(ctx context.Context, req *PushRequest) error
}

// GatewayResponse carries the messaging gateway's raw answer back to the
// caller. No retry loop anywhere: a single attempt per invocation, upstream
// redelivery re-enters through the webhook and is caught by the dedup check.
type GatewayResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body,omitempty"`
}

type LinkMessage struct {
	Phone           string `json:"phone"`
	Message         string `json:"message"`
	Image           string `json:"image,omitempty"`
	LinkURL         string `json:"linkUrl"`
	Title           string `json:"title"`
	LinkDescription string `json:"linkDescription,omitempty"`
}

type WhatsAppSender interface {
	SendText(ctx context.Context, phone, message string) (*GatewayResponse, error)
	SendLink(ctx context.Context, msg *LinkMessage) (*GatewayResponse, error)
}
