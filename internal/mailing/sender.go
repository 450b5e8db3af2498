package mailing

import (
	"context"
	"log/slog"

	"github.com/confops/helpdesk-toolkit/internal/helpdesk"
)

// Sender creates one personalized ticket per recipient of a batch message.
type Sender struct {
	client  *helpdesk.Client
	message *BatchMessage
}

func NewSender(client *helpdesk.Client, message *BatchMessage) *Sender {
	return &Sender{client: client, message: message}
}

type SendResult struct {
	Recipient Recipient
	Err       error
}

// SendBatch renders and sends the message to every recipient. A failure
// for one recipient is logged and recorded but never aborts the batch;
// there is no retry and no dedup of recipients.
func (s *Sender) SendBatch(ctx context.Context) []SendResult {
	results := make([]SendResult, 0, len(s.message.Recipients))

	for _, r := range s.message.Recipients {
		if err := s.sendOne(ctx, r); err != nil {
			slog.Error("sending batch message", "recipient", r.Email, "error", err)
			results = append(results, SendResult{Recipient: r, Err: err})
			continue
		}

		slog.Info("sent batch message", "recipient", r.Email)
		results = append(results, SendResult{Recipient: r})
	}

	return results
}

func (s *Sender) sendOne(ctx context.Context, r Recipient) error {
	text, err := s.message.Render(r)
	if err != nil {
		return err
	}

	return s.client.CreateTicket(ctx, helpdesk.NewTicket{
		RequesterEmail: r.Email,
		RequesterName:  r.Name,
		Subject:        s.message.Subject,
		MessageText:    text,
		TeamID:         s.message.TeamID,
		AgentID:        s.message.AgentID,
		Status:         s.message.Status,
	})
}
