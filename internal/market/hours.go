package market

import "time"

// IST is the NSE trading timezone.
var IST = time.FixedZone("IST", 5*3600+30*60)

// Session boundaries in seconds since midnight IST.
const (
	openSecs       = 9*3600 + 15*60  // 09:15:00
	closeSecs      = 15*3600 + 30*60 // 15:30:00
	guardStartSecs = 15*3600 + 29*60 + 30
	guardEndSecs   = 15*3600 + 31*60
)

// IsOpen reports whether the Indian cash market is trading at t
// (weekdays 09:15–15:30 IST).
func IsOpen(t time.Time) bool {
	local := t.In(IST)
	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	secs := secondsOfDay(local)
	return secs >= openSecs && secs <= closeSecs
}

// InCloseGuard reports whether t falls in the 15:29:30–15:31:00 IST window
// where open trades are force-closed.
func InCloseGuard(t time.Time) bool {
	secs := secondsOfDay(t.In(IST))
	return secs >= guardStartSecs && secs <= guardEndSecs
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
