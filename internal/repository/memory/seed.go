package memory

import (
	"time"

	"github.com/google/uuid"
)

// seedNamespace keeps seeded ids stable across restarts so links in the
// front end survive a reload.
var seedNamespace = uuid.MustParse("6f1d7c64-3b0a-4e55-9a43-2f6d2b7a9c10")

// SeedID returns the fixed id of a seeded record.
func SeedID(name string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(name))
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// at returns the wall time hh:mm on the day offset days from now.
func at(now time.Time, days, hour, minute int) time.Time {
	y, m, d := now.AddDate(0, 0, days).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, now.Location())
}
