package scanner

import (
	"context"
	"time"
)

// Advertisement is one observation collected during a scan window.
type Advertisement struct {
	// Addr is the advertiser's address as colon-separated hex octets.
	Addr string
	RSSI int
	Data []byte
}

// Device is the scan hardware handle. Scan blocks for the full window and
// returns everything heard in it; a detection outside the window is missed.
type Device interface {
	Scan(ctx context.Context, window time.Duration) ([]Advertisement, error)
}

// SimDevice is an in-process device for development and tests: every scan
// waits out the window and returns the configured advertisements.
type SimDevice struct {
	Advertisements []Advertisement
}

// Scan implements Device.
func (d *SimDevice) Scan(ctx context.Context, window time.Duration) ([]Advertisement, error) {
	select {
	case <-time.After(window):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	out := make([]Advertisement, len(d.Advertisements))
	copy(out, d.Advertisements)
	return out, nil
}
