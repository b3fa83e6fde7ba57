package keepalive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ressKim-io/fraudlens/internal/infrastructure/config"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/metrics"
)

// Ping outcomes, used as metric labels
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Pinger periodically requests the service's own keep-alive URL so hosting
// platforms that idle quiet instances keep it running.
type Pinger struct {
	target   string
	interval time.Duration
	timeout  time.Duration
	client   *http.Client
	logger   *zap.Logger
}

// NewPinger creates a pinger for cfg.Target()
func NewPinger(cfg *config.KeepAliveConfig, logger *zap.Logger) *Pinger {
	return &Pinger{
		target:   cfg.Target(),
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		client:   &http.Client{},
		logger:   logger,
	}
}

// Start pings once right away and then on every interval until ctx is done.
// Call in a goroutine.
func (p *Pinger) Start(ctx context.Context) {
	p.logger.Info("Keep-alive pinger started",
		zap.String("target", p.target),
		zap.Duration("interval", p.interval),
	)

	p.safePing(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Keep-alive pinger stopped")
			return
		case <-ticker.C:
			p.safePing(ctx)
		}
	}
}

func (p *Pinger) safePing(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			metrics.KeepAlivePingsTotal.WithLabelValues(ResultFailure).Inc()
			p.logger.Error("Panic in keep-alive ping", zap.Any("panic", r))
		}
	}()

	if err := p.ping(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		metrics.KeepAlivePingsTotal.WithLabelValues(ResultFailure).Inc()
		p.logger.Warn("Keep-alive ping failed", zap.String("target", p.target), zap.Error(err))
		return
	}

	metrics.KeepAlivePingsTotal.WithLabelValues(ResultSuccess).Inc()
	p.logger.Debug("Keep-alive ping succeeded", zap.String("target", p.target))
}

func (p *Pinger) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.target, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("keep-alive returned status %d", resp.StatusCode)
	}

	return nil
}
