package scanner

import "time"

// Sighting is one filtered observation of a beacon, stamped with civil
// time. It exists only in flight: the reporter transmits it and the loop
// forgets it.
type Sighting struct {
	DeviceAddr  string
	ClassroomID int
	ObservedAt  time.Time
	RSSI        int
}
