package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PostingAuditLog records one save of an opportunity and the review decision
// taken for it.
type PostingAuditLog struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Timestamp       time.Time       `json:"timestamp" gorm:"index"`
	ActionType      string          `json:"action_type" gorm:"type:text;not null"`
	OpportunityType OpportunityType `json:"opportunity_type" gorm:"type:text;not null"`
	OpportunityID   uuid.UUID       `json:"opportunity_id" gorm:"type:uuid;index"`
	EmployerID      uuid.UUID       `json:"employer_id" gorm:"type:uuid"`
	Verified        *bool           `json:"verified,omitempty"`
	Context         JSONMap         `json:"context" gorm:"type:jsonb"`
	RequestID       string          `json:"request_id"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TableName specifies the table name for PostingAuditLog
func (PostingAuditLog) TableName() string {
	return "posting_audit_logs"
}

// JSONMap represents a generic map stored as JSONB in the database
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface for JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface for JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion failed: failed to decode JSONB")
	}

	return json.Unmarshal(bytes, m)
}

// Constants for PostingAuditLog action types
const (
	ActionOpportunityCreate = "opportunity_create"
	ActionOpportunityUpdate = "opportunity_update"
	ActionDraftSave         = "draft_save"
	ActionReviewReset       = "review_reset"
)
