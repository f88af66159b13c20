// Package model defines the core memory data types.
package model

import (
	"strings"
	"time"
)

// Type is the category tag of a memory record.
type Type string

const (
	TypePersonal      Type = "personal"
	TypePreferences   Type = "preferences"
	TypeRelationships Type = "relationships"
	TypeEvents        Type = "events"
	TypeFeelings      Type = "feelings"
	TypeBeliefs       Type = "beliefs"
	TypeImportant     Type = "important"
	TypeSummary       Type = "summary"
	TypeManual        Type = "manual"
)

// ValidTypes are the allowed memory types.
var ValidTypes = map[Type]bool{
	TypePersonal:      true,
	TypePreferences:   true,
	TypeRelationships: true,
	TypeEvents:        true,
	TypeFeelings:      true,
	TypeBeliefs:       true,
	TypeImportant:     true,
	TypeSummary:       true,
	TypeManual:        true,
}

// ParseType returns the Type named by s and whether it is in the closed set.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	return t, ValidTypes[t]
}

const (
	MinImportance     = 1
	MaxImportance     = 10
	DefaultImportance = 5
)

// ClampImportance forces v into [MinImportance, MaxImportance].
func ClampImportance(v int) int {
	if v < MinImportance {
		return MinImportance
	}
	if v > MaxImportance {
		return MaxImportance
	}
	return v
}

// Memory represents a stored fact or conversation summary.
type Memory struct {
	ID           string    `json:"id"`
	Type         Type      `json:"type"`
	Content      string    `json:"content"`
	Speaker      string    `json:"speaker,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Importance   int       `json:"importance"`
	Extracted    bool      `json:"extracted"`
	LastAccessed time.Time `json:"last_accessed"`
	AccessCount  int       `json:"access_count"`
}

// Message is one line of conversation fed into the memory core.
type Message struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
