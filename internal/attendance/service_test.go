package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	records   []Record
	nextID    int64
	lastLimit int
	insertErr error
	recentErr error
	pingErr   error
}

func (f *fakeStore) Insert(_ context.Context, rec Record) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return Record{}, f.insertErr
	}
	f.nextID++
	rec.ID = f.nextID
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeStore) Recent(_ context.Context, limit int) ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	// Newest entry first, as the SQL query orders.
	out := append([]Record(nil), f.records...)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].EntryTimestamp.After(out[i].EntryTimestamp) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func validBody() []byte {
	return []byte(`{"student_mac_address":"aa:bb:cc:dd:ee:ff","classroom_id":101,"timestamp":"2024-01-15 09:30:00"}`)
}

func TestRecordAttendanceValid(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	rec, err := svc.RecordAttendance(context.Background(), validBody())
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", rec.StudentMACAddress)
	assert.Equal(t, 101, rec.ClassroomID)
	assert.Equal(t, "2024-01-15 09:30:00", rec.EntryTimestamp.Format(TimeLayout))
	assert.Len(t, store.records, 1)
}

func TestRecordAttendanceCoercions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"numeric string classroom id", `{"student_mac_address":"aa:bb:cc:dd:ee:ff","classroom_id":"101","timestamp":"2024-01-15 09:30:00"}`},
		{"classroom id 1", `{"student_mac_address":"aa:bb:cc:dd:ee:ff","classroom_id":1,"timestamp":"2024-01-15 09:30:00"}`},
		{"padded mac and timestamp", `{"student_mac_address":"  aa:bb:cc:dd:ee:ff  ","classroom_id":101,"timestamp":"  2024-01-15 09:30:00  "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			rec, err := NewService(store).RecordAttendance(context.Background(), []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, "aa:bb:cc:dd:ee:ff", rec.StudentMACAddress)
		})
	}
}

func TestRecordAttendanceValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		code    Code
		message string
	}{
		{"empty body", ``, CodeInvalidRequest, "No JSON data provided"},
		{"not json", `not-json`, CodeInvalidRequest, "No JSON data provided"},
		{"json null", `null`, CodeInvalidRequest, "No JSON data provided"},
		{"json array", `[1,2]`, CodeInvalidRequest, "No JSON data provided"},
		{"all fields missing", `{}`, CodeMissingFields, "Missing required fields: student_mac_address, classroom_id, timestamp"},
		{"two fields missing", `{"student_mac_address":"aa:bb"}`, CodeMissingFields, "Missing required fields: classroom_id, timestamp"},
		{"one field missing", `{"student_mac_address":"aa:bb","classroom_id":1}`, CodeMissingFields, "Missing required fields: timestamp"},
		{"mac not a string", `{"student_mac_address":7,"classroom_id":1,"timestamp":"2024-01-15 09:30:00"}`, CodeInvalidField, "student_mac_address must be a string"},
		{"mac blank", `{"student_mac_address":"   ","classroom_id":1,"timestamp":"2024-01-15 09:30:00"}`, CodeInvalidField, "Student MAC address cannot be empty"},
		{"classroom id zero", `{"student_mac_address":"aa:bb","classroom_id":0,"timestamp":"2024-01-15 09:30:00"}`, CodeInvalidField, "Classroom ID must be a positive integer"},
		{"classroom id negative", `{"student_mac_address":"aa:bb","classroom_id":-3,"timestamp":"2024-01-15 09:30:00"}`, CodeInvalidField, "Classroom ID must be a positive integer"},
		{"classroom id fractional", `{"student_mac_address":"aa:bb","classroom_id":1.5,"timestamp":"2024-01-15 09:30:00"}`, CodeInvalidField, "classroom_id must be an integer"},
		{"classroom id word", `{"student_mac_address":"aa:bb","classroom_id":"abc","timestamp":"2024-01-15 09:30:00"}`, CodeInvalidField, "classroom_id must be an integer"},
		{"timestamp not a date", `{"student_mac_address":"aa:bb","classroom_id":1,"timestamp":"not-a-date"}`, CodeInvalidTimestamp, "Invalid timestamp format, expected YYYY-MM-DD HH:MM:SS"},
		{"timestamp wrong layout", `{"student_mac_address":"aa:bb","classroom_id":1,"timestamp":"2024-01-15T09:30:00Z"}`, CodeInvalidTimestamp, "Invalid timestamp format, expected YYYY-MM-DD HH:MM:SS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			_, err := NewService(store).RecordAttendance(context.Background(), []byte(tt.body))
			var svcErr *Error
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tt.code, svcErr.Code)
			assert.Equal(t, tt.message, svcErr.Message)
			assert.Empty(t, store.records, "no write may happen on validation failure")
		})
	}
}

func TestRecordAttendanceStoreFailure(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("connection reset")}
	_, err := NewService(store).RecordAttendance(context.Background(), validBody())

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeWriteFailed, svcErr.Code)
	assert.NotContains(t, svcErr.Message, "connection reset", "internal detail must not leak")
}

func TestRecentAttendanceLimits(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"default on zero", 0, DefaultRecentLimit},
		{"default on negative", -4, DefaultRecentLimit},
		{"passthrough", 5, 5},
		{"clamped to max", 200, MaxRecentLimit},
		{"exactly max", 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			_, err := NewService(store).RecentAttendance(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, store.lastLimit)
		})
	}
}

func TestRecentAttendanceEmptyStore(t *testing.T) {
	recs, err := NewService(&fakeStore{}).RecentAttendance(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecentAttendanceNewestFirst(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	for _, ts := range []string{"2024-01-15 09:00:00", "2024-01-15 11:00:00", "2024-01-15 10:00:00"} {
		_, err := svc.RecordAttendance(context.Background(),
			[]byte(`{"student_mac_address":"aa:bb","classroom_id":1,"timestamp":"`+ts+`"}`))
		require.NoError(t, err)
	}

	recs, err := svc.RecentAttendance(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "2024-01-15 11:00:00", recs[0].EntryTimestamp.Format(TimeLayout))
	assert.Equal(t, "2024-01-15 10:00:00", recs[1].EntryTimestamp.Format(TimeLayout))
}

func TestDatabaseStatus(t *testing.T) {
	assert.Equal(t, "connected", NewService(&fakeStore{}).DatabaseStatus(context.Background()))
	assert.Equal(t, "disconnected", NewService(&fakeStore{pingErr: errors.New("down")}).DatabaseStatus(context.Background()))
}

func TestTimestampRoundTrip(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	_, err := svc.RecordAttendance(context.Background(), validBody())
	require.NoError(t, err)

	recs, err := svc.RecentAttendance(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "2024-01-15 09:30:00", recs[0].EntryTimestamp.Format(TimeLayout))
}
