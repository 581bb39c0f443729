package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/nicholaihel7/hype-intelligence-backend/metrics"
)

// Dispatcher coordinates multi-engine racing with staged escalation. The
// fastest engine starts immediately; heavier engines start after their
// escalation delay and are cancelled as soon as any engine succeeds.
type Dispatcher struct {
	engines          []Engine
	escalationDelays []time.Duration
	memory           *DomainMemory
}

// NewDispatcher creates a Dispatcher. engines[i] starts after
// escalationDelays[i] from the race beginning; the first delay should be 0.
// Missing delays default to 0 (immediate start).
func NewDispatcher(engines []Engine, escalationDelays []time.Duration, memory *DomainMemory) *Dispatcher {
	delays := make([]time.Duration, len(engines))
	copy(delays, escalationDelays)
	return &Dispatcher{
		engines:          engines,
		escalationDelays: delays,
		memory:           memory,
	}
}

// Dispatch runs the multi-engine race for the given request and returns the
// first successful result. A domain with a remembered winning engine is
// tried on that engine alone first; if all engines fail, the last error is
// returned.
func (d *Dispatcher) Dispatch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	domain := hostOf(req.URL)

	if remembered := d.memory.Get(domain); remembered != "" {
		for _, eng := range d.engines {
			if eng.Name() != remembered {
				continue
			}
			slog.Debug("domain memory hit", "domain", domain, "engine", remembered)
			result, err := eng.Fetch(ctx, req)
			if err == nil {
				metrics.EngineWinsTotal.WithLabelValues(remembered).Inc()
				return result, nil
			}
			// The remembered engine failed; forget it and run the full race.
			slog.Info("remembered engine failed, running full race",
				"domain", domain, "engine", remembered, "error", err)
			d.memory.Delete(domain)
			break
		}
	}

	return d.race(ctx, req, domain)
}

// race starts all engines with staged delays and returns the first success.
func (d *Dispatcher) race(ctx context.Context, req *FetchRequest, domain string) (*FetchResult, error) {
	type raceResult struct {
		result *FetchResult
		err    error
	}

	raceCtx, raceCancel := context.WithCancel(ctx)
	defer raceCancel()

	results := make(chan raceResult, len(d.engines))
	var wg sync.WaitGroup

	for i, eng := range d.engines {
		delay := d.escalationDelays[i]
		wg.Add(1)
		go func(e Engine, startDelay time.Duration) {
			defer wg.Done()

			if startDelay > 0 {
				select {
				case <-raceCtx.Done():
					return
				case <-time.After(startDelay):
				}
			}

			// An earlier engine may already have won during the delay.
			select {
			case <-raceCtx.Done():
				return
			default:
			}

			slog.Debug("engine starting", "engine", e.Name(), "url", req.URL)
			result, err := e.Fetch(raceCtx, req)
			if err != nil {
				slog.Debug("engine failed", "engine", e.Name(), "url", req.URL, "error", err)
			}
			results <- raceResult{result: result, err: err}
		}(eng, delay)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var lastErr error
	for rr := range results {
		if rr.err != nil {
			lastErr = rr.err
			continue
		}
		// First success wins. Cancel the rest of the race.
		raceCancel()
		slog.Info("engine won race", "engine", rr.result.EngineName, "url", req.URL)
		metrics.EngineWinsTotal.WithLabelValues(rr.result.EngineName).Inc()
		d.memory.Set(domain, rr.result.EngineName)
		return rr.result, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("dispatcher: all engines failed for %s", req.URL)
	}
	return nil, lastErr
}

// hostOf parses the hostname from a URL string.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
