package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/gobudget/internal/notification/usecase"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"github.com/shandysiswandi/gobudget/internal/pkg/messaging"
	"github.com/shandysiswandi/gobudget/internal/pkg/uid"
	"github.com/shandysiswandi/gobudget/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID := msg.Header(keyOfCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	if h.uuid == nil {
		return ctx
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) OTPRequestedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OTPRequestedNotification")
	defer span.End()

	slog.InfoContext(ctx, "consume: otp requested notification", "msg_id", msg.ID())

	var payload event.OTPRequestedMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp requested notification", "msg_id", msg.ID(), "error", err)
		return nil
	}

	if err := h.uc.ConsumeOTPRequested(ctx, usecase.ConsumeOTPRequestedInput{
		Email:     payload.Email,
		Code:      payload.Code,
		ExpiresAt: payload.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp requested", "email", payload.Email, "error", err)
		return err
	}

	return nil
}
