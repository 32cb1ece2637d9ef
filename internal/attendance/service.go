package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultRecentLimit applies when the caller omits or mangles limit.
	DefaultRecentLimit = 10
	// MaxRecentLimit caps recent queries; larger requests are silently clamped.
	MaxRecentLimit = 100
)

var requiredFields = []string{"student_mac_address", "classroom_id", "timestamp"}

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	Recent(ctx context.Context, limit int) ([]Record, error)
	Ping(ctx context.Context) error
}

// Service validates incoming sightings and mediates store access.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// RecordAttendance validates the raw request body and persists one record.
// Validation short-circuits in a fixed order: body shape, field presence,
// MAC, classroom id, timestamp. No store access happens before validation
// passes.
func (s *Service) RecordAttendance(ctx context.Context, body []byte) (Record, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return Record{}, errInvalidRequest("No JSON data provided")
	}

	var missing []string
	for _, f := range requiredFields {
		if _, ok := payload[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return Record{}, errMissingFields("Missing required fields: " + strings.Join(missing, ", "))
	}

	mac, ok := payload["student_mac_address"].(string)
	if !ok {
		return Record{}, errInvalidField("student_mac_address must be a string")
	}
	mac = strings.TrimSpace(mac)
	if mac == "" {
		return Record{}, errInvalidField("Student MAC address cannot be empty")
	}

	classroomID, err := coerceInt(payload["classroom_id"])
	if err != nil {
		return Record{}, errInvalidField("classroom_id must be an integer")
	}
	if classroomID <= 0 {
		return Record{}, errInvalidField("Classroom ID must be a positive integer")
	}

	raw, ok := payload["timestamp"].(string)
	if !ok {
		return Record{}, errInvalidTimestamp("timestamp must be a string in format " + TimeLayout)
	}
	ts, err := time.Parse(TimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return Record{}, errInvalidTimestamp("Invalid timestamp format, expected YYYY-MM-DD HH:MM:SS")
	}

	rec, err := s.store.Insert(ctx, Record{
		StudentMACAddress: mac,
		ClassroomID:       classroomID,
		EntryTimestamp:    ts,
	})
	if err != nil {
		log.Printf("attendance insert failed: %v", err)
		return Record{}, errWriteFailed("Failed to record attendance in database")
	}
	return rec, nil
}

// RecentAttendance returns up to limit records, newest first. limit <= 0
// falls back to the default and values above the cap are clamped.
func (s *Service) RecentAttendance(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	recs, err := s.store.Recent(ctx, limit)
	if err != nil {
		log.Printf("attendance query failed: %v", err)
		return nil, errStoreUnavailable("Failed to retrieve attendance records")
	}
	if recs == nil {
		recs = []Record{}
	}
	return recs, nil
}

// DatabaseStatus probes the store for the health endpoint. A down store is
// data, not an error.
func (s *Service) DatabaseStatus(ctx context.Context) string {
	if err := s.store.Ping(ctx); err != nil {
		return "disconnected"
	}
	return "connected"
}

// coerceInt accepts JSON numbers with integral values and numeric strings.
func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int(n), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}
