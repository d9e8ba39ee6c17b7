// internal/model/company.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null;index" json:"name"`
	LogoURL   string    `gorm:"type:text" json:"logo_url"`
	Industry  string    `gorm:"type:text" json:"industry"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook for Company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// EmployerCompanyLink ties an employer account to the company it posts for.
// Older profiles only carry the company name.
type EmployerCompanyLink struct {
	EmployerID  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"employer_id"`
	CompanyID   *uuid.UUID `gorm:"type:uuid" json:"company_id"`
	CompanyName string     `gorm:"type:text" json:"company_name"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// OpportunityIndex maps an opportunity id to the store holding it.
type OpportunityIndex struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Type      OpportunityType `gorm:"type:text;not null" json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

func (OpportunityIndex) TableName() string {
	return "opportunity_index"
}
