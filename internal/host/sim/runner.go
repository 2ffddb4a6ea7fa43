package sim

import (
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/core/runloop"
)

// defaultSettle is simulated after the last step when the scenario sets none
const defaultSettle = time.Second

// Run executes the scenario script on virtual time and returns the host with
// its recorded trace
func Run(sc *Scenario, cfg HostConfig, epoch time.Time) (*Host, error) {
	opts, err := sc.ResolveOptions(cfg.Options)
	if err != nil {
		return nil, err
	}
	sched := runloop.NewManual(epoch, runloop.FrameInterval(opts.FrameRate))

	host, err := NewHost(sc, sched, cfg)
	if err != nil {
		return nil, err
	}

	for _, st := range sc.Script {
		if wait := epoch.Add(st.At.Value).Sub(sched.Now()); wait > 0 {
			sched.Advance(wait)
		}
		if err := host.Apply(st); err != nil {
			return nil, err
		}
		sched.Drain()
	}

	settle := sc.Settle.Value
	if settle <= 0 {
		settle = defaultSettle
	}
	sched.Advance(settle)
	return host, nil
}
