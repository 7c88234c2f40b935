package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense"

	"github.com/farishtaa/carefinder/pkg/config"
	"github.com/farishtaa/carefinder/pkg/retry"
)

// Client wraps the Typesense connection used by the suggestion index.
type Client struct {
	client *typesense.Client
}

// NewClient connects to Typesense with exponential backoff.
func NewClient(cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	err := retry.Do(context.Background(), retry.DefaultConfig(), func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := client.Health(ctx, 2*time.Second)
		return err
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).
			Msg("typesense connection attempt failed, retrying")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to typesense after retries: %w", err)
	}

	log.Info().Msg("connected to typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client.
func (c *Client) Client() *typesense.Client {
	return c.client
}
