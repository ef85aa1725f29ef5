// Package webhook delivers signed event envelopes to merchant-configured
// HTTP endpoints and records every delivery attempt.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"sjfs/internal/models"
	"sjfs/internal/repositories"
	"sjfs/internal/utils"
)

var ErrUnknownEvent = errors.New("unknown webhook event")

// Envelope is the outbound JSON body POSTed to endpoints.
type Envelope struct {
	Event      string      `json:"event"`
	Data       interface{} `json:"data"`
	Timestamp  string      `json:"timestamp"`
	MerchantID string      `json:"merchantId"`
}

// CreateInput describes a new endpoint registration.
type CreateInput struct {
	Name   string   `json:"name"`
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

type Service interface {
	// Trigger delivers event to every active subscribed endpoint of the
	// merchant. It never returns an error to the caller: each delivery is a
	// single best-effort attempt whose outcome lands in the webhook log.
	Trigger(ctx context.Context, merchantID uint, event string, data interface{})

	// Register creates a webhook endpoint with a generated secret.
	Register(ctx context.Context, merchantID uint, input CreateInput) (*models.Webhook, error)

	ListByMerchant(ctx context.Context, merchantID uint) ([]models.Webhook, error)
	Delete(ctx context.Context, id, merchantID uint) error
}

type service struct {
	repo   repositories.WebhookRepository
	client *http.Client
}

// NewService creates the dispatcher. A nil client gets the default with the
// 30-second delivery timeout.
func NewService(repo repositories.WebhookRepository, client *http.Client) Service {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &service{repo: repo, client: client}
}

func (s *service) Trigger(ctx context.Context, merchantID uint, event string, data interface{}) {
	if !ValidEvent(event) {
		log.Printf("webhook: dropping unknown event %q for merchant %d", event, merchantID)
		return
	}

	webhooks, err := s.repo.ListActiveByEvent(merchantID, event)
	if err != nil {
		log.Printf("webhook: failed to load endpoints for merchant %d event %s: %v", merchantID, event, err)
		return
	}
	if len(webhooks) == 0 {
		return
	}

	now := time.Now().UTC()
	envelope := Envelope{
		Event:      event,
		Data:       data,
		Timestamp:  now.Format(time.RFC3339),
		MerchantID: strconv.FormatUint(uint64(merchantID), 10),
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("webhook: failed to marshal envelope for event %s: %v", event, err)
		return
	}

	for i := range webhooks {
		s.deliver(&webhooks[i], event, body, envelope.Timestamp)
	}
}

// deliver POSTs the envelope to one endpoint and records the outcome.
// Deliveries are not tied to the caller's context; the client timeout bounds
// each attempt.
func (s *service) deliver(hook *models.Webhook, event string, body []byte, timestamp string) {
	entry := &models.WebhookLog{
		WebhookID: hook.ID,
		Event:     event,
		Payload:   string(body),
	}

	req, err := http.NewRequest(http.MethodPost, hook.URL, bytes.NewReader(body))
	if err != nil {
		entry.Error = err.Error()
		s.record(hook, entry, false)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", Sign(body, hook.Secret))
	req.Header.Set("X-Webhook-Event", event)
	req.Header.Set("X-Webhook-Timestamp", timestamp)

	resp, err := s.client.Do(req)
	if err != nil {
		entry.Error = err.Error()
		s.record(hook, entry, false)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	code := resp.StatusCode
	entry.StatusCode = &code
	entry.Response = string(respBody)

	success := code >= 200 && code < 300
	entry.Success = success
	if !success {
		entry.Error = "endpoint returned " + resp.Status
	}
	s.record(hook, entry, success)
}

func (s *service) record(hook *models.Webhook, entry *models.WebhookLog, success bool) {
	entry.Success = success
	if err := s.repo.RecordDelivery(hook.ID, entry, success); err != nil {
		log.Printf("webhook: failed to record delivery for endpoint %d: %v", hook.ID, err)
	}
}

func (s *service) Register(ctx context.Context, merchantID uint, input CreateInput) (*models.Webhook, error) {
	for _, e := range input.Events {
		if !ValidEvent(e) {
			return nil, ErrUnknownEvent
		}
	}

	secret, err := utils.GenerateSecret(32)
	if err != nil {
		return nil, err
	}

	hook := &models.Webhook{
		MerchantID: merchantID,
		Name:       input.Name,
		URL:        input.URL,
		Secret:     secret,
		Events:     input.Events,
		IsActive:   true,
	}
	if err := s.repo.Create(hook); err != nil {
		return nil, err
	}
	return hook, nil
}

func (s *service) ListByMerchant(ctx context.Context, merchantID uint) ([]models.Webhook, error) {
	return s.repo.ListByMerchant(merchantID)
}

func (s *service) Delete(ctx context.Context, id, merchantID uint) error {
	return s.repo.Delete(id, merchantID)
}
