package monitor

import (
	"context"
	"time"

	"github.com/spineguard/spinectl/internal/client/api"
	"github.com/spineguard/spinectl/internal/logging"
	"github.com/spineguard/spinectl/internal/obs"
)

// tickTimeout bounds one status call so a slow backend cannot make a
// tick outlive the polling cadence by much.
const tickTimeout = 3 * time.Second

// Poller mirrors the remote monitoring status into a Mirror on a fixed
// interval. A failed tick is logged and swallowed; the loop keeps its
// schedule across any number of consecutive failures and stops only when
// the context is cancelled, so no timer outlives its observer.
type Poller struct {
	client   api.Client
	mirror   *Mirror
	interval time.Duration
	log      logging.Logger
}

func NewPoller(client api.Client, mirror *Mirror, interval time.Duration, log logging.Logger) *Poller {
	return &Poller{client: client, mirror: mirror, interval: interval, log: log}
}

// Run polls until ctx is cancelled. The first poll happens immediately,
// then once per interval.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)

	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, tickTimeout)
	defer cancel()

	status, err := p.client.GetMonitoringStatus(tickCtx)
	obs.PollTick(err)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn(ctx, "status poll failed", "err", err)
		}
		return
	}
	p.mirror.SetStatus(status)
}
