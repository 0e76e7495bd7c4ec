package services

import (
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	journalOptions := []JournalOption{}
	if repos.Attachments != nil {
		journalOptions = append(journalOptions, WithAttachmentStore(repos.Attachments))
	}

	return &portssvc.ServiceContainer{
		Book:        NewBookService(repos.UnitOfWork),
		Account:     NewAccountService(repos.UnitOfWork),
		Journal:     NewJournalService(repos.UnitOfWork, journalOptions...),
		Balance:     NewBalanceService(repos.UnitOfWork),
		Reporting:   NewReportingService(repos.UnitOfWork),
		User:        NewUserService(repos.UnitOfWork),
		Token:       NewTokenService(cfg),
		GoogleOAuth: NewGoogleOAuthHandlerService(cfg),
	}
}
