// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./opportunity.go -destination=../mocks/mock_opportunity_repository.go -package=mocks OpportunityRepositoryIface
//go:generate mockgen -source=./company.go -destination=../mocks/mock_company_repository.go -package=mocks CompanyRepositoryIface
//go:generate mockgen -source=./posting_audit_log.go -destination=../mocks/mock_posting_audit_log_repository.go -package=mocks PostingAuditLogRepositoryIface
