package geometry

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	cases := []struct {
		name string
		now  time.Time
		want domain.RelationToNow
	}{
		{"before start", start.Add(-time.Minute), domain.RelationFuture},
		{"at start", start, domain.RelationPresent},
		{"inside", start.Add(15 * time.Minute), domain.RelationPresent},
		{"at end", end, domain.RelationPast},
		{"after end", end.Add(time.Hour), domain.RelationPast},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.now, start, end))
		})
	}
}

func TestClassify_ExactlyOneRelation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	for trial := 0; trial < 300; trial++ {
		start := base.Add(time.Duration(rng.Intn(1440)) * time.Minute)
		end := start.Add(time.Duration(rng.Intn(240)+1) * time.Minute)
		now := base.Add(time.Duration(rng.Intn(1800)) * time.Minute)

		got := Classify(now, start, end)
		past := !now.Before(end)
		present := !now.Before(start) && now.Before(end)
		future := now.Before(start)

		matches := 0
		for _, ok := range []bool{past, present, future} {
			if ok {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "trial %d", trial)

		switch {
		case past:
			assert.Equal(t, domain.RelationPast, got)
		case present:
			assert.Equal(t, domain.RelationPresent, got)
		default:
			assert.Equal(t, domain.RelationFuture, got)
		}
	}
}
