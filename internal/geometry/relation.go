package geometry

import (
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// Classify places [start, end) relative to now. Exactly one relation holds
// for any start < end.
func Classify(now, start, end time.Time) domain.RelationToNow {
	switch {
	case now.Before(start):
		return domain.RelationFuture
	case now.Before(end):
		return domain.RelationPresent
	default:
		return domain.RelationPast
	}
}
