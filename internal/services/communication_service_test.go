package services

import (
	"context"
	"testing"

	"church-admin/internal/models"
	"church-admin/internal/sms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommunicationFixture(t *testing.T) (*CommunicationService, *fakeContactRepo, *fakeProvider, *fakeProvider) {
	t.Helper()
	contacts := newFakeContactRepo()
	communications := newFakeCommunicationRepo()

	smsProvider := newFakeProvider("bulksms")
	whatsappProvider := newFakeProvider("whatsapp")

	registry := sms.NewRegistry("bulksms")
	registry.Register(smsProvider)
	registry.Register(whatsappProvider)

	return NewCommunicationService(communications, contacts, registry), contacts, smsProvider, whatsappProvider
}

func draft(t *testing.T, service *CommunicationService, messageType, recipientGroup string) *models.Communication {
	t.Helper()
	communication, err := service.Create(&models.CommunicationCreateRequest{
		MessageType:    messageType,
		RecipientGroup: recipientGroup,
		Message:        "Service starts at 9am",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, models.CommunicationStatusDraft, communication.Status)
	return communication
}

func TestSendWithNoRecipientsIsConflict(t *testing.T) {
	service, _, smsProvider, _ := newCommunicationFixture(t)
	communication := draft(t, service, models.MessageTypeSMS, models.RecipientGroupAll)

	_, err := service.Send(context.Background(), communication.ID, "", nil)
	require.Error(t, err)
	assert.True(t, models.IsConflict(err))
	assert.Equal(t, "No recipients found", err.Error())
	assert.Empty(t, smsProvider.sent, "provider must not be called without recipients")
}

func TestSendTalliesOutcomesAndMarksSent(t *testing.T) {
	service, contacts, smsProvider, _ := newCommunicationFixture(t)

	seedContact(t, contacts, "A", "+27821110001", models.ContactStatusActive, nil)
	seedContact(t, contacts, "B", "+27821110002", models.ContactStatusActive, nil)
	seedContact(t, contacts, "C", "+27821110003", models.ContactStatusActive, nil)
	smsProvider.failFor["+27821110002"] = true

	communication := draft(t, service, models.MessageTypeSMS, models.RecipientGroupAll)

	sent, err := service.Send(context.Background(), communication.ID, "", nil)
	require.NoError(t, err)
	assert.Equal(t, models.CommunicationStatusSent, sent.Status)
	assert.Equal(t, 2, sent.SentCount)
	assert.Equal(t, 1, sent.FailedCount)
	assert.NotNil(t, sent.SentAt)
	assert.Len(t, smsProvider.sent, 3)
}

func TestSendAllFailuresStillMarksSent(t *testing.T) {
	service, contacts, smsProvider, _ := newCommunicationFixture(t)

	seedContact(t, contacts, "A", "+27821110001", models.ContactStatusActive, nil)
	smsProvider.failFor["+27821110001"] = true

	communication := draft(t, service, models.MessageTypeSMS, models.RecipientGroupAll)

	sent, err := service.Send(context.Background(), communication.ID, "", nil)
	require.NoError(t, err)
	assert.Equal(t, models.CommunicationStatusSent, sent.Status)
	assert.Equal(t, 0, sent.SentCount)
	assert.Equal(t, 1, sent.FailedCount)
}

func TestSendTwiceIsConflict(t *testing.T) {
	service, contacts, _, _ := newCommunicationFixture(t)
	seedContact(t, contacts, "A", "+27821110001", models.ContactStatusActive, nil)

	communication := draft(t, service, models.MessageTypeSMS, models.RecipientGroupAll)
	_, err := service.Send(context.Background(), communication.ID, "", nil)
	require.NoError(t, err)

	_, err = service.Send(context.Background(), communication.ID, "", nil)
	require.Error(t, err)
	assert.True(t, models.IsConflict(err))
	assert.Equal(t, "Communication has already been sent", err.Error())
}

func TestSendSkipsOptedOutContacts(t *testing.T) {
	service, contacts, smsProvider, _ := newCommunicationFixture(t)

	seedContact(t, contacts, "In", "+27821110001", models.ContactStatusActive, nil)
	optedOut := seedContact(t, contacts, "Out", "+27821110002", models.ContactStatusActive, nil)
	optedOut.OptOutSMS = true

	communication := draft(t, service, models.MessageTypeSMS, models.RecipientGroupAll)

	sent, err := service.Send(context.Background(), communication.ID, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sent.SentCount)
	assert.Equal(t, []string{"+27821110001"}, smsProvider.sent)
}

func TestSendTaggedGroupFiltersByTags(t *testing.T) {
	service, contacts, smsProvider, _ := newCommunicationFixture(t)

	seedContact(t, contacts, "Kanana", "+27821110001", models.ContactStatusActive, []string{"kanana"})
	seedContact(t, contacts, "Majaneng", "+27821110002", models.ContactStatusActive, []string{"majaneng"})

	communication := draft(t, service, models.MessageTypeSMS, models.RecipientGroupTagged)

	sent, err := service.Send(context.Background(), communication.ID, "", []string{"kanana"})
	require.NoError(t, err)
	assert.Equal(t, 1, sent.SentCount)
	assert.Equal(t, []string{"+27821110001"}, smsProvider.sent)
}

func TestSendWhatsAppDraftUsesWhatsAppProvider(t *testing.T) {
	service, contacts, smsProvider, whatsappProvider := newCommunicationFixture(t)

	seedContact(t, contacts, "A", "+27821110001", models.ContactStatusActive, nil)

	communication := draft(t, service, models.MessageTypeWhatsApp, models.RecipientGroupAll)

	// Provider override is ignored for whatsapp drafts.
	sent, err := service.Send(context.Background(), communication.ID, "bulksms", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sent.SentCount)
	assert.Empty(t, smsProvider.sent)
	assert.Equal(t, []string{"+27821110001"}, whatsappProvider.sent)
}

func TestSendWhatsAppRespectsWhatsAppOptOut(t *testing.T) {
	service, contacts, _, whatsappProvider := newCommunicationFixture(t)

	contact := seedContact(t, contacts, "A", "+27821110001", models.ContactStatusActive, nil)
	contact.OptOutWhatsApp = true

	communication := draft(t, service, models.MessageTypeWhatsApp, models.RecipientGroupAll)

	_, err := service.Send(context.Background(), communication.ID, "", nil)
	require.Error(t, err)
	assert.Equal(t, "No recipients found", err.Error())
	assert.Empty(t, whatsappProvider.sent)
}

func TestSendCustomGroupRequiresBulkEndpoint(t *testing.T) {
	service, _, _, _ := newCommunicationFixture(t)
	communication := draft(t, service, models.MessageTypeSMS, models.RecipientGroupCustom)

	_, err := service.Send(context.Background(), communication.ID, "", nil)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestSendBulkDispatchesExplicitPhones(t *testing.T) {
	service, _, smsProvider, _ := newCommunicationFixture(t)
	communication := draft(t, service, models.MessageTypeSMS, models.RecipientGroupCustom)

	sent, err := service.SendBulk(context.Background(), communication.ID,
		[]string{"+27821110001", "+27821110002"}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, sent.SentCount)
	assert.Len(t, smsProvider.sent, 2)
}

func TestSendBulkEmptyListIsConflict(t *testing.T) {
	service, _, _, _ := newCommunicationFixture(t)
	communication := draft(t, service, models.MessageTypeSMS, models.RecipientGroupCustom)

	_, err := service.SendBulk(context.Background(), communication.ID, nil, "")
	require.Error(t, err)
	assert.True(t, models.IsConflict(err))
	assert.Equal(t, "No recipients found", err.Error())
}

func TestSendUnknownCommunicationIsNotFound(t *testing.T) {
	service, _, _, _ := newCommunicationFixture(t)

	_, err := service.Send(context.Background(), 42, "", nil)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestUpdateDraft(t *testing.T) {
	service, _, _, _ := newCommunicationFixture(t)
	communication := draft(t, service, models.MessageTypeSMS, models.RecipientGroupAll)

	newMessage := "Service moved to 10am"
	updated, err := service.Update(communication.ID, &models.CommunicationUpdateRequest{
		Message: &newMessage,
	})
	require.NoError(t, err)
	assert.Equal(t, newMessage, updated.Message)
}
