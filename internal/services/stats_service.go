package services

import (
	"sort"

	"church-admin/internal/models"
	"church-admin/internal/sms"
)

// StatsService serves the dashboard aggregates: contact totals, registered
// providers and communication delivery tallies.
type StatsService struct {
	contacts       models.ContactRepository
	communications models.CommunicationRepository
	providers      *sms.Registry
}

func NewStatsService(
	contacts models.ContactRepository,
	communications models.CommunicationRepository,
	providers *sms.Registry,
) *StatsService {
	return &StatsService{
		contacts:       contacts,
		communications: communications,
		providers:      providers,
	}
}

func (s *StatsService) ContactCount() (*models.ContactCountStats, error) {
	count, err := s.contacts.Count()
	if err != nil {
		return nil, err
	}
	return &models.ContactCountStats{TotalContacts: count}, nil
}

func (s *StatsService) Providers() *models.ProviderStats {
	names := s.providers.Names()
	sort.Strings(names)
	return &models.ProviderStats{
		TotalProviders: len(names),
		Providers:      names,
	}
}

func (s *StatsService) SentCount() (*models.SentCountStats, error) {
	total, err := s.communications.TotalSent()
	if err != nil {
		return nil, err
	}
	return &models.SentCountStats{TotalMessagesSent: total}, nil
}

func (s *StatsService) FailedCount() (*models.FailedCountStats, error) {
	total, err := s.communications.TotalFailed()
	if err != nil {
		return nil, err
	}
	return &models.FailedCountStats{TotalMessagesFailed: total}, nil
}

func (s *StatsService) CommunicationsByType() (*models.CommunicationTypeStats, error) {
	counts, err := s.communications.CountByType()
	if err != nil {
		return nil, err
	}
	return &models.CommunicationTypeStats{CountsByType: counts}, nil
}
