package model

import "strings"

// KnowledgeEntry maps a set of keyword triggers to a service classification.
// The table is loaded once at startup and is read-only afterwards; entry
// order is the declaration order in the configuration file and matching is
// first-match-wins.
type KnowledgeEntry struct {
	Service     string
	Specialty   string
	Keywords    []string
	Urgency     string // coarse hint for the generator: "Alto", "Médio", "Baixo"
	DurationMin int
}

// Matches reports whether any keyword occurs in the lower-cased message
func (k KnowledgeEntry) Matches(lowered string) bool {
	for _, kw := range k.Keywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw != "" && strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Clinic is the static clinic metadata injected into every prompt
type Clinic struct {
	Name     string
	Address  string
	Hours    string
	Phone    string
	Services []KnowledgeEntry
}

// FindService scans the knowledge table in declaration order and returns
// the first entry with a keyword present in the message. The boolean is
// false when nothing matches.
func (c *Clinic) FindService(message string) (KnowledgeEntry, bool) {
	lowered := strings.ToLower(message)
	for _, entry := range c.Services {
		if entry.Matches(lowered) {
			return entry, true
		}
	}
	return KnowledgeEntry{}, false
}
