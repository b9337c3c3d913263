package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/config"
	"predecessor-tracker/internal/constants"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Notifier pushes completed matches to the bot's notification endpoint.
type Notifier struct {
	endpoint string
	client   *fasthttp.Client
	logger   zerolog.Logger
}

func NewNotifier(cfg *config.Config, logger zerolog.Logger) *Notifier {
	return &Notifier{
		endpoint: cfg.BotNotifyURL + "/api/matches",
		client: &fasthttp.Client{
			ReadTimeout:  constants.NotifyTimeout,
			WriteTimeout: constants.NotifyTimeout,
		},
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

// Notify posts one raw match to the bot. A non-200 response is an error so the
// caller can retry on the next tick.
func (n *Notifier) Notify(ctx context.Context, raw *api.RawMatch) error {
	body, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal match %s: %w", raw.UUID, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(n.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline := time.Now().Add(constants.NotifyTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := n.client.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("notify bot for match %s: %w", raw.UUID, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("notify bot for match %s: status %d", raw.UUID, resp.StatusCode())
	}

	n.logger.Debug().Str("match_uuid", raw.UUID).Msg("match pushed to bot")
	return nil
}
