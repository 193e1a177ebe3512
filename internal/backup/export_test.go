package backup

import "time"

// SetClock fixes the time used to name snapshot files.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}
