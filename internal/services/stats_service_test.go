package services

import (
	"testing"

	"church-admin/internal/models"
	"church-admin/internal/sms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsFixture() (*StatsService, *fakeContactRepo, *fakeCommunicationRepo, *sms.Registry) {
	contacts := newFakeContactRepo()
	communications := newFakeCommunicationRepo()
	registry := sms.NewRegistry("bulksms")
	return NewStatsService(contacts, communications, registry), contacts, communications, registry
}

func TestContactCount(t *testing.T) {
	service, contacts, _, _ := newStatsFixture()

	for _, phone := range []string{"+27821110001", "+27821110002", "+27821110003"} {
		require.NoError(t, contacts.Save(&models.Contact{Phone: phone, Status: models.ContactStatusActive}))
	}

	stats, err := service.ContactCount()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalContacts)
}

func TestContactCountEmpty(t *testing.T) {
	service, _, _, _ := newStatsFixture()

	stats, err := service.ContactCount()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalContacts)
}

func TestProvidersListsRegisteredNames(t *testing.T) {
	service, _, _, registry := newStatsFixture()
	registry.Register(newFakeProvider("whatsapp"))
	registry.Register(newFakeProvider("bulksms"))

	stats := service.Providers()
	assert.Equal(t, 2, stats.TotalProviders)
	assert.Equal(t, []string{"bulksms", "whatsapp"}, stats.Providers)
}

func TestProvidersEmptyRegistry(t *testing.T) {
	service, _, _, _ := newStatsFixture()

	stats := service.Providers()
	assert.Zero(t, stats.TotalProviders)
	assert.Empty(t, stats.Providers)
}

func TestSentAndFailedCounts(t *testing.T) {
	service, _, communications, _ := newStatsFixture()

	require.NoError(t, communications.Save(&models.Communication{
		MessageType: models.MessageTypeSMS,
		Status:      models.CommunicationStatusSent,
		SentCount:   10,
		FailedCount: 2,
	}))
	require.NoError(t, communications.Save(&models.Communication{
		MessageType: models.MessageTypeWhatsApp,
		Status:      models.CommunicationStatusSent,
		SentCount:   5,
		FailedCount: 1,
	}))

	sent, err := service.SentCount()
	require.NoError(t, err)
	assert.Equal(t, 15, sent.TotalMessagesSent)

	failed, err := service.FailedCount()
	require.NoError(t, err)
	assert.Equal(t, 3, failed.TotalMessagesFailed)
}

func TestSentCountNoCommunications(t *testing.T) {
	service, _, _, _ := newStatsFixture()

	sent, err := service.SentCount()
	require.NoError(t, err)
	assert.Zero(t, sent.TotalMessagesSent)
}

func TestCommunicationsByType(t *testing.T) {
	service, _, communications, _ := newStatsFixture()

	for _, messageType := range []string{
		models.MessageTypeSMS,
		models.MessageTypeSMS,
		models.MessageTypeWhatsApp,
	} {
		require.NoError(t, communications.Save(&models.Communication{
			MessageType: messageType,
			Status:      models.CommunicationStatusDraft,
		}))
	}

	stats, err := service.CommunicationsByType()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		models.MessageTypeSMS:      2,
		models.MessageTypeWhatsApp: 1,
	}, stats.CountsByType)
}
