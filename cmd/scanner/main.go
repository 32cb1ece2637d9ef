package main

import (
	"context"
	"encoding/hex"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"presence/internal/beacon"
	"presence/internal/config"
	"presence/internal/outbox"
	"presence/internal/reporter"
	"presence/internal/scanner"
	"presence/internal/store"
)

// Edge scanner: opens scan windows on the device, filters advertisements
// against the target service UUID, and reports sightings to the ingestion
// service.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	client := reporter.New(cfg.ServerURL)

	var rep scanner.Reporter = client
	if cfg.ReportSpool {
		var q outbox.Queue = outbox.NewMemory(64)
		if cfg.ReportSpoolBackend == "redis" {
			// Durable spool: queued sightings survive scanner restarts.
			q = outbox.NewRedis(store.NewRedis(cfg.RedisAddr).Client, "")
		}
		spool := reporter.NewSpool(client, q, cfg.ReportMaxAttempts, cfg.ReportBackoff)
		go func() {
			if err := spool.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("spool stopped: %v", err)
			}
		}()
		rep = spool
	}

	loop := &scanner.Loop{
		Device:      newDevice(cfg),
		Clock:       scanner.SystemClock{},
		Reporter:    rep,
		ClassroomID: cfg.ClassroomID,
		TargetUUID:  cfg.TargetServiceUUID,
		Window:      cfg.ScanWindow,
		Interval:    cfg.ScanInterval,
		Seen:        scanner.NewSeenSet(cfg.DedupWindow),
	}

	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("scan loop failed: %v", err)
	}
	log.Println("scanner stopped")
}

// newDevice builds the scan device. Real BLE hardware is injected behind
// scanner.Device; out of the box the simulated device reads advertisements
// from SIM_ADVERTISEMENTS (comma-separated "addr=hexpayload" entries) so
// the full pipeline can run end to end without a radio.
func newDevice(cfg config.App) scanner.Device {
	sim := &scanner.SimDevice{}
	raw := os.Getenv("SIM_ADVERTISEMENTS")
	if raw == "" {
		return sim
	}
	for _, entry := range strings.Split(raw, ",") {
		addr, payload, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok {
			log.Printf("skipping malformed SIM_ADVERTISEMENTS entry %q", entry)
			continue
		}
		data, err := hex.DecodeString(beacon.Normalize(payload))
		if err != nil {
			log.Printf("skipping SIM_ADVERTISEMENTS entry %q: %v", entry, err)
			continue
		}
		sim.Advertisements = append(sim.Advertisements, scanner.Advertisement{
			Addr: strings.ToLower(addr),
			RSSI: -60,
			Data: data,
		})
	}
	return sim
}
