package scenario

import (
	"fmt"
	"time"
)

// Contact is one entry in the user's contact book. Contacts are deliberately
// absent from the system prompt (§4.3.3); the agent must discover them via
// the get_contacts tool.
type Contact struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// NewContact validates and constructs a Contact.
func NewContact(id, displayName, relationship, phone string) (*Contact, error) {
	if id == "" {
		return nil, fmt.Errorf("scenario: contact id is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("scenario: contact %q missing display_name", id)
	}
	return &Contact{ID: id, DisplayName: displayName, Relationship: relationship, Phone: phone}, nil
}

// PersonProfile describes the simulated user whose day is being generated.
type PersonProfile struct {
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	Occupation    string    `json:"occupation"`
	HomeAddress   string    `json:"home_address"`
	OfficeAddress string    `json:"office_address"`
	Birthday      time.Time `json:"birthday"`
}

// NewPersonProfile validates and constructs a PersonProfile.
func NewPersonProfile(p PersonProfile) (*PersonProfile, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("scenario: person profile missing name")
	}
	if p.Age <= 0 {
		return nil, fmt.Errorf("scenario: person profile age must be > 0, got %d", p.Age)
	}
	return &p, nil
}

// AgentIdentity describes the agent's persona shown in the rendered system
// prompt.
type AgentIdentity struct {
	Name        string `json:"name"`
	Personality string `json:"personality"`
}

// NewAgentIdentity validates and constructs an AgentIdentity.
func NewAgentIdentity(name, personality string) (*AgentIdentity, error) {
	if name == "" {
		return nil, fmt.Errorf("scenario: agent identity missing name")
	}
	return &AgentIdentity{Name: name, Personality: personality}, nil
}
