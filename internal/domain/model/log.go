// Package model holds the records the BFF persists for itself: request and
// audit logs, and contract wizard drafts.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Log action types recorded by the audit trail.
const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionCreateClient   = "create_client"
	ActionUpdateClient   = "update_client"
	ActionDeleteClient   = "delete_client"
	ActionCreateLocality = "create_locality"
	ActionCreateContract = "create_contract"
	ActionCreateOrder    = "create_order"
	ActionUpdateOrder    = "update_order"
	ActionSubmitDraft    = "submit_draft"
)

// LogEntry is a request or audit log record. Context specific data goes in
// Fields.
type LogEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Level      string             `bson:"level" json:"level"`
	Message    string             `bson:"message" json:"message"`
	RequestID  string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string             `bson:"method,omitempty" json:"method,omitempty"`
	Path       string             `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64              `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string             `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	// Identity is the email or username from the caller's token.
	Identity   string         `bson:"identity,omitempty" json:"identity,omitempty"`
	ActionType string         `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields     map[string]any `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField sets one entry of Fields, creating the map if needed.
func (e *LogEntry) WithField(key string, value any) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// WithFields merges fields into Fields.
func (e *LogEntry) WithFields(fields map[string]any) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]any, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// LogQueryOptions filters a log query.
type LogQueryOptions struct {
	RequestID  string
	Level      string
	Method     string
	Path       string
	Identity   string
	ActionType string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
