package influx

import (
	"context"

	"github.com/InfluxCommunity/influxdb3-go/influxdb3"
	"github.com/google/uuid"

	"httpblast/internal/cli"
	"httpblast/internal/config"
)

// Client wraps InfluxDB v3 write operations. A nil *Client is valid
// and turns every write into a no-op, so callers never branch on
// whether export is enabled.
type Client struct {
	ctx    context.Context
	client *influxdb3.Client
}

// NewClient creates an InfluxDB client from config. Returns nil when
// export is disabled or the client cannot be built (graceful
// degradation; a load run never fails because metrics export does).
func NewClient(ctx context.Context, cfg config.InfluxConfig) *Client {
	if !cfg.Enabled {
		return nil
	}

	client, err := influxdb3.New(influxdb3.ClientConfig{
		Host:     cfg.Host,
		Token:    cfg.Token,
		Database: cfg.Database,
	})
	if err != nil {
		cli.Warnf("InfluxDB not available at %s, metrics export disabled: %v", cfg.Host, err)
		return nil
	}

	cli.Infof("InfluxDB export enabled: %s", cfg.Host)

	return &Client{ctx: ctx, client: client}
}

// Close flushes pending writes and closes the connection.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if err := c.client.Close(); err != nil {
		cli.Warnf("InfluxDB close error: %v", err)
	}
}

func (c *Client) writePoints(points []*influxdb3.Point) {
	if c == nil || len(points) == 0 {
		return
	}
	if err := c.client.WritePoints(c.ctx, points); err != nil {
		cli.Warnf("InfluxDB write error: %v", err)
	}
}

// RunID generates a unique identifier tagging all points of one run.
func RunID() string {
	return uuid.NewString()
}
