package geofence

import (
	"math"
	"sync"
	"time"

	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
	"github.com/workforceone/fieldops-backend-go/internal/pkg/utils"
)

// Monitor tracks one guard against one site's geofence. All state is private
// to the instance; the registry serializes access per guard via the mutex.
type Monitor struct {
	mu sync.Mutex

	userID         string
	organizationID string
	site           site.Site

	// wasInside starts true: the guard clocked in at the site, so the first
	// outside sample is a genuine exit and must fire.
	wasInside   bool
	lastAlertAt time.Time
}

func NewMonitor(userID, organizationID string, s site.Site) *Monitor {
	return &Monitor{
		userID:         userID,
		organizationID: organizationID,
		site:           s,
		wasInside:      true,
	}
}

// Evaluation is the outcome of applying one sample to the monitor.
type Evaluation struct {
	DistanceMeters int
	Inside         bool
	FireAlert      bool
}

// Evaluate applies one position sample, updating the edge-trigger and
// cooldown state, and reports whether an alert fires. Only the transition
// inside→outside fires; staying outside does not, and re-entry re-arms the
// next exit. A fire within the cooldown window is suppressed but still
// consumes the transition.
func (m *Monitor) Evaluate(lat, lng float64, now time.Time, cooldown time.Duration) Evaluation {
	m.mu.Lock()
	defer m.mu.Unlock()

	distance := utils.CalculateHaversineDistance(lat, lng, m.site.Latitude, m.site.Longitude)
	outside := distance > float64(m.site.RadiusMeters)

	eval := Evaluation{
		DistanceMeters: int(math.Round(distance)),
		Inside:         !outside,
	}

	if !outside {
		m.wasInside = true
		return eval
	}

	if m.wasInside {
		m.wasInside = false
		if m.lastAlertAt.IsZero() || now.Sub(m.lastAlertAt) >= cooldown {
			m.lastAlertAt = now
			eval.FireAlert = true
		}
	}

	return eval
}

func (m *Monitor) Site() site.Site {
	return m.site
}
