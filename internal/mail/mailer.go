package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/simplon-hub/code-hub/internal/config"
)

// Mailer delivers activation codes.
type Mailer interface {
	SendActivationCode(ctx context.Context, to, code string) error
}

// NewMailer picks the relay implementation when a relay URL is configured,
// a log-only one otherwise (development).
func NewMailer(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if cfg.RelayURL == "" {
		logger.Warn("MAIL_RELAY_URL not set; activation codes will only be logged")
		return &logMailer{from: cfg.From, logger: logger}
	}
	return &relayMailer{
		cfg:    cfg,
		client: resty.New().SetTimeout(10 * time.Second),
		logger: logger,
	}
}

// relayMailer posts the message to an HTTP mail relay.
type relayMailer struct {
	cfg    config.MailConfig
	client *resty.Client
	logger *zap.Logger
}

type relayMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (m *relayMailer) SendActivationCode(ctx context.Context, to, code string) error {
	msg := relayMessage{
		From:    m.cfg.From,
		To:      to,
		Subject: "Code d'activation - Simplon Code Hub",
		Body:    fmt.Sprintf("Votre code d'activation est : %s", code),
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetAuthToken(m.cfg.APIKey).
		SetBody(msg).
		Post(m.cfg.RelayURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("mail relay returned %s", resp.Status())
	}

	m.logger.Info("activation code sent", zap.String("to", to))
	return nil
}

// logMailer only logs the code. Used when no relay is configured.
type logMailer struct {
	from   string
	logger *zap.Logger
}

func (m *logMailer) SendActivationCode(_ context.Context, to, code string) error {
	m.logger.Info("activation code (log-only mailer)",
		zap.String("from", m.from),
		zap.String("to", to),
		zap.String("code", code),
	)
	return nil
}
