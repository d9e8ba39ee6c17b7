// internal/repository/repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/jobdesk/internal/model"
	"gorm.io/gorm"
)

// Models lists every table the service owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&model.Company{},
		&model.EmployerCompanyLink{},
		&model.OpportunityIndex{},
		&model.ProfessionalJob{},
		&model.Internship{},
		&model.NationalServicePlacement{},
		&model.GraduateProgram{},
		&model.PostingAuditLog{},
	}
}

// Migrate creates or updates the schema of every model.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}
