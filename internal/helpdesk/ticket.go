package helpdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// Ticket is the vendor-owned record. Only the fields this toolkit filters
// on are decoded; the full vendor JSON is kept verbatim so archives hold
// the complete record, not our projection of it.
type Ticket struct {
	ID          string   `json:"ID"`
	Subject     string   `json:"subject"`
	Status      string   `json:"status"`
	CreatedDate string   `json:"createdDate"`
	TeamIDs     []string `json:"teamIDs"`
	TagIDs      []string `json:"tagIDs"`

	raw json.RawMessage
}

func (t *Ticket) UnmarshalJSON(data []byte) error {
	type ticket Ticket
	var decoded ticket
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*t = Ticket(decoded)
	t.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (t Ticket) MarshalJSON() ([]byte, error) {
	if t.raw != nil {
		return t.raw, nil
	}

	type ticket Ticket
	return json.Marshal(ticket(t))
}

// GetTickets fetches all tickets matching the filter params. pageSize is
// forced to 100; only the first page is returned, there is no follow-up
// pagination.
func (c *Client) GetTickets(ctx context.Context, params url.Values) ([]Ticket, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("pageSize", "100")

	var tickets []Ticket
	if err := c.getJSON(ctx, c.BaseURL+"/tickets", params, &tickets); err != nil {
		return nil, fmt.Errorf("getting tickets: %w", err)
	}

	slog.Debug("got tickets", "total", len(tickets))
	return tickets, nil
}

// TicketsByDateRange filters tickets by creation date; either bound may be
// the zero time to leave it open.
func (c *Client) TicketsByDateRange(ctx context.Context, from, to time.Time) ([]Ticket, error) {
	params := url.Values{}
	if !from.IsZero() {
		params.Set("createdDateFrom", Timestamp(from))
	}
	if !to.IsZero() {
		params.Set("createdDateTo", Timestamp(to))
	}

	return c.GetTickets(ctx, params)
}

type NewTicket struct {
	RequesterEmail string
	RequesterName  string
	Subject        string
	MessageText    string
	TeamID         string
	AgentID        string
	Status         string
}

type entityRef struct {
	ID string `json:"ID"`
}

type ticketPayload struct {
	Status    string `json:"status"`
	Subject   string `json:"subject"`
	Message   struct {
		Text string `json:"text"`
	} `json:"message"`
	Requester struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"requester"`
	TeamIDs    []string `json:"teamIDs"`
	Assignment struct {
		Team  entityRef `json:"team"`
		Agent entityRef `json:"agent"`
	} `json:"assignment"`
}

// CreateTicket adds a new ticket assigned to exactly one team and agent.
// The vendor emails the requester; replies thread back into the ticket.
func (c *Client) CreateTicket(ctx context.Context, t NewTicket) error {
	if t.Status == "" {
		t.Status = StatusSolved
	}

	var payload ticketPayload
	payload.Status = t.Status
	payload.Subject = t.Subject
	payload.Message.Text = t.MessageText
	payload.Requester.Email = t.RequesterEmail
	payload.Requester.Name = t.RequesterName
	payload.TeamIDs = []string{t.TeamID}
	payload.Assignment.Team = entityRef{ID: t.TeamID}
	payload.Assignment.Agent = entityRef{ID: t.AgentID}

	if err := c.postJSON(ctx, c.BaseURL+"/tickets", payload); err != nil {
		return fmt.Errorf("creating ticket for %s: %w", t.RequesterEmail, err)
	}

	return nil
}

func (c *Client) DeleteTicket(ctx context.Context, ticketId string) error {
	if err := c.doDelete(ctx, fmt.Sprintf("%s/tickets/%s", c.BaseURL, ticketId)); err != nil {
		return fmt.Errorf("deleting ticket %s: %w", ticketId, err)
	}

	return nil
}

// Timestamp renders t the way the vendor filter params expect it:
// ISO-8601 at seconds precision with a trailing Z.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05") + "Z"
}

const (
	StatusOpen    = "open"
	StatusPending = "pending"
	StatusOnHold  = "onhold"
	StatusSolved  = "solved"
)

func TicketStatuses() []string {
	return []string{StatusOpen, StatusPending, StatusOnHold, StatusSolved}
}

func IsValidTicketStatus(status string) bool {
	for _, s := range TicketStatuses() {
		if status == s {
			return true
		}
	}

	return false
}
