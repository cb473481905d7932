package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saulloallves/central-tickets-94-sub006/internal/audit"
	"github.com/saulloallves/central-tickets-94-sub006/internal/dedup"
	"github.com/saulloallves/central-tickets-94-sub006/internal/dispatcher"
	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"

	"github.com/sirupsen/logrus"
)

// Menu replies for the self-service flow. Button ids arrive from the
// gateway's interactive messages.
var menuReplies = map[string]string{
	"menu_status":  "Para consultar o status do seu ticket, acesse o painel ou responda com o número do ticket.",
	"menu_novo":    "Para abrir um novo ticket, descreva o problema em uma única mensagem que nossa equipe irá atendê-lo.",
	"menu_falar":   "Um atendente da equipe de suporte foi notificado e entrará em contato em breve.",
	"menu_horario": "Nosso horário de atendimento é de segunda a sexta, das 8h às 18h.",
}

type webhookService struct {
	checker         *dedup.Checker
	notifications   NotificationService
	whatsapp        dispatcher.WhatsAppSender
	recorder        *audit.Recorder
	supportEquipeID string
}

func NewWebhookService(
	checker *dedup.Checker,
	notifications NotificationService,
	whatsapp dispatcher.WhatsAppSender,
	recorder *audit.Recorder,
	supportEquipeID string,
) WebhookService {
	return &webhookService{
		checker:         checker,
		notifications:   notifications,
		whatsapp:        whatsapp,
		recorder:        recorder,
		supportEquipeID: supportEquipeID,
	}
}

// HandleInbound runs the full inbound flow:
// RECEIVED -> DEDUP_CHECK -> duplicate short-circuit | ROUTE -> DISPATCH -> RESPOND.
// Redelivery originates upstream only, so a duplicate produces no side
// effects beyond the dedup check's own read.
func (s *webhookService) HandleInbound(ctx context.Context, msg *entity.InboundMessage, raw []byte) (*entity.InboundResult, error) {
	if s.checker.IsDuplicate(ctx, msg.MessageID, msg.Phone) {
		logrus.WithFields(logrus.Fields{
			"message_id": msg.MessageID,
			"phone":      msg.Phone,
		}).Info("Duplicate webhook delivery ignored")
		return &entity.InboundResult{Duplicate: true}, nil
	}

	s.recorder.Record(ctx, &entity.AuditLogEntry{
		Category:   entity.LogCategoryWebhook,
		EntityType: entity.EntityWhatsAppMessage,
		EntityID:   msg.MessageID,
		Action:     "received",
		Channel:    entity.ChannelWhatsApp,
		After:      json.RawMessage(raw),
	})

	// Button presses get a templated self-service answer; free text from a
	// franchisee routes a notification to the support team.
	if msg.ButtonID != "" {
		return s.handleMenuReply(ctx, msg)
	}
	return s.handleFranchiseeReply(ctx, msg)
}

func (s *webhookService) handleMenuReply(ctx context.Context, msg *entity.InboundMessage) (*entity.InboundResult, error) {
	reply, ok := menuReplies[msg.ButtonID]
	if !ok {
		reply = "Opção não reconhecida. Envie *menu* para ver as opções disponíveis."
	}

	if _, err := s.whatsapp.SendText(ctx, msg.Phone, reply); err != nil {
		// Single attempt; the gateway redelivers the trigger if it matters.
		logrus.Warnf("menu reply to %s failed: %v", msg.Phone, err)
	}

	return &entity.InboundResult{Processed: true}, nil
}

func (s *webhookService) handleFranchiseeReply(ctx context.Context, msg *entity.InboundMessage) (*entity.InboundResult, error) {
	payload, _ := json.Marshal(map[string]string{
		"phone":   msg.Phone,
		"message": msg.Text.Message,
	})

	result, err := s.notifications.Dispatch(ctx, &entity.DispatchRequest{
		Title:    "Nova resposta de franqueado",
		Message:  msg.Text.Message,
		Type:     entity.TypeTicket,
		EquipeID: s.supportEquipeID,
		Payload:  payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to route inbound message: %w", err)
	}

	return &entity.InboundResult{
		Processed:      true,
		NotificationID: result.Notification.ID,
	}, nil
}
