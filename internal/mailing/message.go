package mailing

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/confops/helpdesk-toolkit/internal/helpdesk"
	"gopkg.in/yaml.v3"
)

// Recipient is how to address and contact one person. AddressAs could be
// a first name; it falls back to the full name.
type Recipient struct {
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	AddressAs string `yaml:"address_as"`
}

func NewRecipient(name, email, addressAs string) Recipient {
	if addressAs == "" {
		addressAs = name
	}

	return Recipient{Name: name, Email: email, AddressAs: addressAs}
}

// Definition is the raw batch-message document as loaded from a YAML file,
// before validation.
type Definition struct {
	Subject     string      `yaml:"subject"`
	MessageText string      `yaml:"message_text"`
	TeamID      string      `yaml:"team_id"`
	AgentID     string      `yaml:"agent_id"`
	Status      string      `yaml:"status"`
	Recipients  []Recipient `yaml:"recipients"`
}

func LoadDefinition(path string) (Definition, error) {
	var def Definition

	data, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("reading batch definition: %w", err)
	}

	if err := yaml.Unmarshal(data, &def); err != nil {
		return def, fmt.Errorf("unmarshaling batch definition: %w", err)
	}

	return def, nil
}

// BatchMessage is one message to be sent to a list of recipients. It only
// exists in a fully validated state: NewBatchMessage fails if the team,
// agent or status would be rejected by the vendor.
type BatchMessage struct {
	Subject     string
	MessageText string
	TeamID      string
	AgentID     string
	Status      string
	Recipients  []Recipient
}

func NewBatchMessage(def Definition, teams, agents helpdesk.Lookup) (*BatchMessage, error) {
	if def.Status == "" {
		def.Status = helpdesk.StatusSolved
	}

	if !teams.Contains(def.TeamID) {
		return nil, fmt.Errorf("validating batch message: team %q is not in the team cache", def.TeamID)
	}
	if !agents.Contains(def.AgentID) {
		return nil, fmt.Errorf("validating batch message: agent %q is not in the agent cache", def.AgentID)
	}
	if !helpdesk.IsValidTicketStatus(def.Status) {
		return nil, fmt.Errorf("validating batch message: %q is not a valid ticket status", def.Status)
	}

	recipients := make([]Recipient, 0, len(def.Recipients))
	for _, r := range def.Recipients {
		recipients = append(recipients, NewRecipient(r.Name, r.Email, r.AddressAs))
	}

	return &BatchMessage{
		Subject:     def.Subject,
		MessageText: def.MessageText,
		TeamID:      def.TeamID,
		AgentID:     def.AgentID,
		Status:      def.Status,
		Recipients:  recipients,
	}, nil
}

// Render substitutes the recipient and sender context into the message
// template. Available placeholders: {{.address_as}}, {{.name}}, {{.email}}
// and {{.subject}}. Referencing anything else is an error.
func (m *BatchMessage) Render(r Recipient) (string, error) {
	tmpl, err := template.New("message").Option("missingkey=error").Parse(m.MessageText)
	if err != nil {
		return "", fmt.Errorf("parsing message template: %w", err)
	}

	data := map[string]string{
		"address_as": r.AddressAs,
		"name":       r.Name,
		"email":      r.Email,
		"subject":    m.Subject,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering message for %s: %w", r.Email, err)
	}

	return buf.String(), nil
}
