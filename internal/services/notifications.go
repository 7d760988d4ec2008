package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinique-api/internal/models"
)

// Notifier delivers short messages to users. Delivery is best effort and
// never fails the calling operation.
type Notifier interface {
	Notify(ctx context.Context, u *models.User, message string)
}

// SMSNotifier sends text messages through the Textbelt API.
type SMSNotifier struct {
	url    string
	key    string
	client *http.Client
	log    zerolog.Logger
}

func NewSMSNotifier(url, key string, log zerolog.Logger) *SMSNotifier {
	return &SMSNotifier{
		url:    url,
		key:    key,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.With().Str("component", "sms").Logger(),
	}
}

// Notify sends in a goroutine so it doesn't block the API response.
func (s *SMSNotifier) Notify(_ context.Context, u *models.User, message string) {
	if u.Phone == "" {
		s.log.Debug().Str("user_id", u.ID.Hex()).Msg("sms not sent: user has no phone number")
		return
	}
	go s.send(u.Phone, message)
}

type textbeltResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *SMSNotifier) send(phone, message string) {
	if err := s.deliver(context.Background(), phone, message); err != nil {
		s.log.Error().Err(err).Str("phone", phone).Msg("failed to send sms")
		return
	}
	s.log.Info().Str("phone", phone).Msg("sms sent")
}

func (s *SMSNotifier) deliver(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.key,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result textbeltResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode textbelt response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt rejected message: %s", result.Error)
	}
	return nil
}

// LogNotifier only logs messages. Used when SMS delivery is disabled.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, u *models.User, message string) {
	n.log.Info().Str("user_id", u.ID.Hex()).Str("message", message).Msg("notification")
}
