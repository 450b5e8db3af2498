package mailing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/confops/helpdesk-toolkit/internal/helpdesk"
)

var (
	testTeams  = helpdesk.Lookup{"Program": "team-1", "team-1": "Program"}
	testAgents = helpdesk.Lookup{"Ana": "agent-1", "agent-1": "Ana"}
)

func validDefinition() Definition {
	return Definition{
		Subject:     "Welcome!",
		MessageText: "Hello {{.address_as}},",
		TeamID:      "team-1",
		AgentID:     "agent-1",
		Status:      "solved",
		Recipients: []Recipient{
			{Name: "Peter Parker", Email: "spidi@web.com", AddressAs: "Spiderman"},
			{Name: "Mary Jane", Email: "mj@web.com"},
		},
	}
}

func TestRecipientAddressAsDefault(t *testing.T) {
	r := NewRecipient("Peter Parker", "spidi@web.com", "")
	if r.AddressAs != "Peter Parker" {
		t.Errorf("AddressAs = %q, want the full name", r.AddressAs)
	}

	r = NewRecipient("Peter Parker", "spidi@web.com", "Spiderman")
	if r.AddressAs != "Spiderman" {
		t.Errorf("AddressAs = %q, want Spiderman", r.AddressAs)
	}
}

func TestNewBatchMessageValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(d *Definition) {},
		},
		{
			name:   "empty status defaults to solved",
			mutate: func(d *Definition) { d.Status = "" },
		},
		{
			name:    "unknown team",
			mutate:  func(d *Definition) { d.TeamID = "team-404" },
			wantErr: true,
		},
		{
			name:    "unknown agent",
			mutate:  func(d *Definition) { d.AgentID = "agent-404" },
			wantErr: true,
		},
		{
			name:    "invalid status",
			mutate:  func(d *Definition) { d.Status = "closed" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(&def)

			msg, err := NewBatchMessage(def, testTeams, testAgents)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected a validation error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !helpdesk.IsValidTicketStatus(msg.Status) {
				t.Errorf("status %q should be valid after construction", msg.Status)
			}
		})
	}
}

func TestNewBatchMessageDefaultsRecipientAddressAs(t *testing.T) {
	msg, err := NewBatchMessage(validDefinition(), testTeams, testAgents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Recipients[0].AddressAs != "Spiderman" {
		t.Errorf("AddressAs = %q, want Spiderman", msg.Recipients[0].AddressAs)
	}
	if msg.Recipients[1].AddressAs != "Mary Jane" {
		t.Errorf("AddressAs = %q, want the full name", msg.Recipients[1].AddressAs)
	}
}

func TestRender(t *testing.T) {
	def := validDefinition()
	def.MessageText = "Hello {{.address_as}}, your full name is {{.name}} ({{.email}}). Subject: {{.subject}}"
	msg, err := NewBatchMessage(def, testTeams, testAgents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := msg.Render(msg.Recipients[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Hello Spiderman, your full name is Peter Parker (spidi@web.com). Subject: Welcome!"
	if text != want {
		t.Errorf("rendered = %q, want %q", text, want)
	}
}

func TestRenderUndefinedPlaceholderFails(t *testing.T) {
	def := validDefinition()
	def.MessageText = "Hello {{.nickname}},"
	msg, err := NewBatchMessage(def, testTeams, testAgents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := msg.Render(msg.Recipients[0]); err == nil {
		t.Fatal("expected an error for an undefined placeholder, got none")
	}
}

func TestLoadDefinition(t *testing.T) {
	doc := `
subject: "Welcome!"
message_text: "Hello {{.address_as}},"
team_id: team-1
agent_id: agent-1
status: solved
recipients:
  - name: Peter Parker
    email: spidi@web.com
    address_as: Spiderman
  - name: Mary Jane
    email: mj@web.com
`
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def, err := LoadDefinition(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if def.Subject != "Welcome!" || def.TeamID != "team-1" {
		t.Errorf("definition = %+v", def)
	}
	if len(def.Recipients) != 2 || def.Recipients[1].Email != "mj@web.com" {
		t.Errorf("recipients = %+v", def.Recipients)
	}
	if !strings.Contains(def.MessageText, "{{.address_as}}") {
		t.Errorf("message text = %q", def.MessageText)
	}
}
