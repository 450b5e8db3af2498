package helpdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestGetTicketsForcesPageSize(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"ID": "t-1"}]`))
	}))

	params := url.Values{}
	params.Set("tagIDs", "tag-1")
	tickets, err := c.GetTickets(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gotQuery.Get("pageSize"); got != "100" {
		t.Errorf("pageSize = %q, want 100", got)
	}
	if got := gotQuery.Get("tagIDs"); got != "tag-1" {
		t.Errorf("tagIDs = %q, want tag-1", got)
	}
	if len(tickets) != 1 || tickets[0].ID != "t-1" {
		t.Errorf("tickets = %+v, want one ticket t-1", tickets)
	}
}

func TestTicketsByDateRange(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))

	from := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := c.TicketsByDateRange(context.Background(), from, time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gotQuery.Get("createdDateFrom"); got != "2022-01-01T00:00:00Z" {
		t.Errorf("createdDateFrom = %q, want 2022-01-01T00:00:00Z", got)
	}
	if gotQuery.Has("createdDateTo") {
		t.Errorf("createdDateTo should be absent for an open upper bound, got %q", gotQuery.Get("createdDateTo"))
	}
}

func TestTicketKeepsRawRecord(t *testing.T) {
	// Fields the toolkit doesn't model must survive an archive round-trip.
	raw := []byte(`{"ID":"t-9","subject":"hi","tagIDs":["a"],"customerVisibility":{"internal":true},"spam":false}`)

	var ticket Ticket
	if err := json.Unmarshal(raw, &ticket); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.ID != "t-9" || ticket.Subject != "hi" {
		t.Errorf("decoded ticket = %+v, want ID t-9 subject hi", ticket)
	}

	out, err := json.Marshal(ticket)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("marshaled ticket = %s, want original record %s", out, raw)
	}
}

func TestCreateTicketPayload(t *testing.T) {
	var gotPayload map[string]interface{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tickets" {
			t.Errorf("got %s %s, want POST /tickets", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.Write([]byte(`{}`))
	}))

	err := c.CreateTicket(context.Background(), NewTicket{
		RequesterEmail: "spidi@web.com",
		RequesterName:  "Peter Parker",
		Subject:        "hello",
		MessageText:    "Hello Spiderman,",
		TeamID:         "team-1",
		AgentID:        "agent-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gotPayload["status"]; got != "solved" {
		t.Errorf("status = %v, want default solved", got)
	}
	requester := gotPayload["requester"].(map[string]interface{})
	if requester["email"] != "spidi@web.com" || requester["name"] != "Peter Parker" {
		t.Errorf("requester = %v", requester)
	}
	teamIds := gotPayload["teamIDs"].([]interface{})
	if len(teamIds) != 1 || teamIds[0] != "team-1" {
		t.Errorf("teamIDs = %v, want [team-1]", teamIds)
	}
	assignment := gotPayload["assignment"].(map[string]interface{})
	if assignment["team"].(map[string]interface{})["ID"] != "team-1" {
		t.Errorf("assignment.team = %v, want team-1", assignment["team"])
	}
	if assignment["agent"].(map[string]interface{})["ID"] != "agent-1" {
		t.Errorf("assignment.agent = %v, want agent-1", assignment["agent"])
	}
}

func TestDeleteTicketFailureIsTyped(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/tickets/t-1" {
			t.Errorf("got %s %s, want DELETE /tickets/t-1", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "server_error", "details": "boom"}`))
	}))

	if err := c.DeleteTicket(context.Background(), "t-1"); err == nil {
		t.Fatal("expected an error, got none")
	}
}

func TestIsValidTicketStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"open", true},
		{"pending", true},
		{"onhold", true},
		{"solved", true},
		{"closed", false},
		{"", false},
		{"Solved", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := IsValidTicketStatus(tt.status); got != tt.want {
				t.Errorf("IsValidTicketStatus(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}
