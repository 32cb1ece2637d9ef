package attendance

import "time"

// TimeLayout is the civil datetime format used on the wire and in storage,
// second precision, no zone.
const TimeLayout = "2006-01-02 15:04:05"

// Record is one persisted attendance row. Rows are written once per
// accepted sighting and never updated; duplicates are allowed (the store
// enforces no uniqueness, deduplication is the scanner's concern).
type Record struct {
	ID                int64
	StudentMACAddress string
	ClassroomID       int
	EntryTimestamp    time.Time
}

// RecordDTO is the JSON rendering of a Record with the timestamp
// formatted under TimeLayout.
type RecordDTO struct {
	ID                int64  `json:"id"`
	StudentMACAddress string `json:"student_mac_address"`
	ClassroomID       int    `json:"classroom_id"`
	EntryTimestamp    string `json:"entry_timestamp"`
}

func (r Record) toDTO() RecordDTO {
	return RecordDTO{
		ID:                r.ID,
		StudentMACAddress: r.StudentMACAddress,
		ClassroomID:       r.ClassroomID,
		EntryTimestamp:    r.EntryTimestamp.Format(TimeLayout),
	}
}
