package services

import (
	"context"
	"time"

	"church-admin/internal/models"
	"church-admin/internal/sms"
	"church-admin/internal/utils"

	"go.uber.org/zap"
)

// CommunicationService manages message drafts and dispatches them through
// the injected provider registry. Each recipient gets one independent
// provider call; outcomes are tallied, never retried, and never surfaced
// per-recipient.
type CommunicationService struct {
	communications models.CommunicationRepository
	contacts       models.ContactRepository
	providers      *sms.Registry
}

func NewCommunicationService(
	communications models.CommunicationRepository,
	contacts models.ContactRepository,
	providers *sms.Registry,
) *CommunicationService {
	return &CommunicationService{
		communications: communications,
		contacts:       contacts,
		providers:      providers,
	}
}

func (s *CommunicationService) Create(req *models.CommunicationCreateRequest, userID *int) (*models.Communication, error) {
	communication := &models.Communication{
		MessageType:    req.MessageType,
		RecipientGroup: req.RecipientGroup,
		Subject:        req.Subject,
		Message:        req.Message,
		ScheduledAt:    req.ScheduledAt,
		Status:         models.CommunicationStatusDraft,
		CreatedBy:      userID,
	}
	if err := s.communications.Save(communication); err != nil {
		return nil, err
	}
	return communication, nil
}

func (s *CommunicationService) Update(id int, req *models.CommunicationUpdateRequest) (*models.Communication, error) {
	communication, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		communication.Subject = *req.Subject
	}
	if req.Message != nil {
		communication.Message = *req.Message
	}
	if req.ScheduledAt != nil {
		communication.ScheduledAt = req.ScheduledAt
	}

	if err := s.communications.Update(communication); err != nil {
		return nil, err
	}
	return communication, nil
}

func (s *CommunicationService) GetAll(createdBy int) ([]*models.Communication, error) {
	return s.communications.GetAll(createdBy)
}

func (s *CommunicationService) Get(id int) (*models.Communication, error) {
	communication, err := s.communications.GetByID(id)
	if err != nil {
		return nil, err
	}
	if communication == nil {
		return nil, models.NewNotFoundError("Communication not found")
	}
	return communication, nil
}

func (s *CommunicationService) Delete(id int) error {
	return s.communications.Delete(id)
}

// ResolveRecipients applies the recipient-group policy. Contacts opted out
// of the message's channel are always excluded; the tagged group further
// requires a tag intersection.
func (s *CommunicationService) ResolveRecipients(messageType, recipientGroup string, tags []string) ([]*models.Contact, error) {
	switch recipientGroup {
	case models.RecipientGroupAll, models.RecipientGroupTagged:
	case models.RecipientGroupCustom:
		return nil, models.NewValidationError("Custom recipient group requires explicit phone numbers; use send-bulk")
	default:
		return nil, models.NewValidationError("Invalid recipient_group. Must be 'all_contacts', 'tagged' or 'custom'.")
	}

	contacts, err := s.contacts.GetAll(models.ContactFilter{})
	if err != nil {
		return nil, err
	}

	var recipients []*models.Contact
	for _, contact := range contacts {
		if optedOut(contact, messageType) {
			continue
		}
		if recipientGroup == models.RecipientGroupTagged && !contact.HasAnyTag(tags) {
			continue
		}
		recipients = append(recipients, contact)
	}
	return recipients, nil
}

func optedOut(contact *models.Contact, messageType string) bool {
	if messageType == models.MessageTypeWhatsApp {
		return contact.OptOutWhatsApp
	}
	return contact.OptOutSMS
}

// Send dispatches a draft communication to its resolved recipient set. The
// communication ends up 'sent' even when every delivery failed; sent_count
// and failed_count carry the outcome.
func (s *CommunicationService) Send(ctx context.Context, id int, providerName string, tags []string) (*models.Communication, error) {
	communication, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if communication.Status != models.CommunicationStatusDraft {
		return nil, models.NewConflictError("Communication has already been sent")
	}

	recipients, err := s.ResolveRecipients(communication.MessageType, communication.RecipientGroup, tags)
	if err != nil {
		return nil, err
	}

	phones := make([]string, 0, len(recipients))
	for _, contact := range recipients {
		phones = append(phones, contact.Phone)
	}
	if len(phones) == 0 {
		return nil, models.NewConflictError("No recipients found")
	}

	return s.dispatch(ctx, communication, phones, providerName)
}

// SendBulk dispatches a draft communication to an explicit phone list.
func (s *CommunicationService) SendBulk(ctx context.Context, id int, phones []string, providerName string) (*models.Communication, error) {
	communication, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if communication.Status != models.CommunicationStatusDraft {
		return nil, models.NewConflictError("Communication has already been sent")
	}
	if len(phones) == 0 {
		return nil, models.NewConflictError("No recipients found")
	}

	return s.dispatch(ctx, communication, phones, providerName)
}

func (s *CommunicationService) dispatch(ctx context.Context, communication *models.Communication, phones []string, providerName string) (*models.Communication, error) {
	// WhatsApp drafts are routed to the whatsapp provider regardless of
	// any provider override.
	if communication.MessageType == models.MessageTypeWhatsApp {
		providerName = models.MessageTypeWhatsApp
	}

	provider, err := s.providers.Get(providerName)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	sent, failed := 0, 0
	for _, phone := range phones {
		if err := provider.Send(ctx, phone, communication.Message); err != nil {
			failed++
			utils.Log.Warn("message delivery failed",
				zap.Int("communication_id", communication.ID),
				zap.String("provider", provider.Name()),
				zap.String("phone", phone),
				zap.Error(err))
			continue
		}
		sent++
	}

	now := time.Now()
	communication.SentCount = sent
	communication.FailedCount = failed
	communication.Status = models.CommunicationStatusSent
	communication.SentAt = &now

	if err := s.communications.Update(communication); err != nil {
		return nil, err
	}

	utils.Log.Info("communication sent",
		zap.Int("communication_id", communication.ID),
		zap.String("provider", provider.Name()),
		zap.Int("sent", sent),
		zap.Int("failed", failed))

	return communication, nil
}
