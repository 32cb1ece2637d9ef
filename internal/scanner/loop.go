package scanner

import (
	"context"
	"log"
	"time"

	"presence/internal/beacon"
	"presence/internal/metrics"
)

// Reporter transmits sightings to the ingestion service.
type Reporter interface {
	Send(ctx context.Context, s Sighting) error
}

// Loop drives the scan cycle: open a window, filter observations,
// timestamp matches, hand them to the reporter, sleep, repeat. It is
// single-threaded; a window blocks the loop for its full duration.
type Loop struct {
	Device   Device
	Clock    Clock
	Reporter Reporter

	ClassroomID int
	TargetUUID  string
	Window      time.Duration
	Interval    time.Duration

	// Seen suppresses repeat sightings; nil reports every match.
	Seen *SeenSet
}

// Run ticks until ctx is cancelled. Tick errors are logged and the next
// tick proceeds after the usual interval; cancellation is the loop's only
// exit.
func (l *Loop) Run(ctx context.Context) error {
	log.Printf("scanner started: classroom %d, target %s, window %s, interval %s",
		l.ClassroomID, l.TargetUUID, l.Window, l.Interval)
	for {
		l.tick(ctx)
		select {
		case <-time.After(l.Interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Loop) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scan tick panicked: %v", r)
		}
	}()

	advs, err := l.Device.Scan(ctx, l.Window)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("scan failed: %v", err)
		}
		return
	}

	matched := 0
	for _, adv := range advs {
		if !beacon.Matches(adv.Data, l.TargetUUID) {
			continue
		}
		matched++
		metrics.SightingsObserved.Inc()

		now := l.now()
		if l.Seen.Observe(adv.Addr, l.ClassroomID, now) {
			continue
		}

		log.Printf("detected target beacon %s (RSSI %d)", adv.Addr, adv.RSSI)
		// Outcome is the reporter's to log; each sighting is independent.
		_ = l.Reporter.Send(ctx, Sighting{
			DeviceAddr:  adv.Addr,
			ClassroomID: l.ClassroomID,
			ObservedAt:  now,
			RSSI:        adv.RSSI,
		})
	}
	if matched == 0 {
		log.Println("no target beacons detected in this scan")
	}
}

func (l *Loop) now() time.Time {
	t, err := l.Clock.Now()
	if err != nil {
		log.Printf("clock read failed, using epoch sentinel: %v", err)
		return Epoch
	}
	return t
}
