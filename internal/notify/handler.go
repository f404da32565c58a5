package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Leandro-Gomez-12345/Final-de-POO/internal/domain"
)

// Handler turns order.placed events into confirmation emails. The shop is
// single-tenant, so every confirmation goes to the one configured recipient.
type Handler struct {
	emailServiceURL string
	recipient       string
	httpClient      *http.Client
	logger          *slog.Logger
}

func NewHandler(emailServiceURL, recipient string, client *http.Client, logger *slog.Logger) *Handler {
	return &Handler{
		emailServiceURL: emailServiceURL,
		recipient:       recipient,
		httpClient:      client,
		logger:          logger,
	}
}

func (h *Handler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order placed event: %w", err)
	}

	h.logger.Info("processing order placed event", "order_id", event.OrderID, "total", event.Total)

	if err := h.sendConfirmation(ctx, event); err != nil {
		h.logger.Error("failed to send confirmation email", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("send confirmation email: %w", err)
	}

	h.logger.Info("order confirmation sent", "order_id", event.OrderID)
	return nil
}

func (h *Handler) sendConfirmation(ctx context.Context, event domain.OrderPlacedEvent) error {
	body := map[string]string{
		"to":      h.recipient,
		"subject": "Order Confirmation: " + event.OrderID,
		"body": fmt.Sprintf("Your order %s with %d items has been placed. Total charged: %s.",
			event.OrderID, len(event.Items), event.Total),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.emailServiceURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	return nil
}
