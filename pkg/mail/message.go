package mail

import (
	"fmt"
	"strings"
)

// Importance is the priority a message is flagged with.
type Importance int

const (
	Normal Importance = iota
	Low
	High
)

// ParseImportance matches s case-insensitively. The empty string is Normal.
func ParseImportance(s string) (Importance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return Normal, nil
	case "low":
		return Low, nil
	case "high":
		return High, nil
	}
	return Normal, fmt.Errorf("invalid importance %q: valid values: Low, Normal, High", s)
}

func (i Importance) String() string {
	switch i {
	case Low:
		return "Low"
	case High:
		return "High"
	}
	return "Normal"
}

// xPriority returns the X-Priority header value used by Outlook and
// Exchange for i.
func (i Importance) xPriority() string {
	switch i {
	case Low:
		return "5 (Lowest)"
	case High:
		return "1 (Highest)"
	}
	return "3 (Normal)"
}

// Message is a fully composed email ready for transmission.
type Message struct {
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	HTMLBody    string
	Importance  Importance
	Attachments []Attachment
	// SaveCopy asks the transport to keep a copy in the sender's mailbox.
	SaveCopy bool
}

// Recipients returns every envelope recipient of m.
func (m *Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc)+len(m.Bcc)+1)
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	out = append(out, m.Bcc...)
	if m.SaveCopy {
		out = append(out, m.From)
	}
	return out
}
