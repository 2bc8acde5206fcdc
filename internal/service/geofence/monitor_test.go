package geofence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/workforceone/fieldops-backend-go/internal/domain/site"
)

// The test site sits at the origin with a 100 m radius. A latitude offset of
// 0.001 degrees is roughly 111 m, comfortably outside; 0.0005 degrees is
// roughly 55 m, comfortably inside.
var testSite = site.Site{
	ID:           "site-1",
	Name:         "Harbor Depot",
	Latitude:     0,
	Longitude:    0,
	RadiusMeters: 100,
}

const (
	outsideLat = 0.001
	insideLat  = 0.0005
)

func TestMonitor_FiresOnceOnExit(t *testing.T) {
	m := NewMonitor("user-1", "org-1", testSite)
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	cooldown := 5 * time.Minute

	eval := m.Evaluate(outsideLat, 0, now, cooldown)
	assert.False(t, eval.Inside)
	assert.True(t, eval.FireAlert)

	// Staying outside must not fire again.
	eval = m.Evaluate(outsideLat, 0, now.Add(time.Minute), cooldown)
	assert.False(t, eval.Inside)
	assert.False(t, eval.FireAlert)
}

func TestMonitor_InsideSampleDoesNotFire(t *testing.T) {
	m := NewMonitor("user-1", "org-1", testSite)
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

	eval := m.Evaluate(insideLat, 0, now, 5*time.Minute)
	assert.True(t, eval.Inside)
	assert.False(t, eval.FireAlert)
}

func TestMonitor_ReentryRearmsButCooldownSuppresses(t *testing.T) {
	m := NewMonitor("user-1", "org-1", testSite)
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	cooldown := 5 * time.Minute

	eval := m.Evaluate(outsideLat, 0, now, cooldown)
	assert.True(t, eval.FireAlert)

	// Back inside: the trigger re-arms.
	eval = m.Evaluate(insideLat, 0, now.Add(time.Minute), cooldown)
	assert.True(t, eval.Inside)
	assert.False(t, eval.FireAlert)

	// A second exit within the cooldown window is suppressed.
	eval = m.Evaluate(outsideLat, 0, now.Add(2*time.Minute), cooldown)
	assert.False(t, eval.Inside)
	assert.False(t, eval.FireAlert)
}

func TestMonitor_FiresAgainAfterCooldown(t *testing.T) {
	m := NewMonitor("user-1", "org-1", testSite)
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	cooldown := 5 * time.Minute

	eval := m.Evaluate(outsideLat, 0, now, cooldown)
	assert.True(t, eval.FireAlert)

	eval = m.Evaluate(insideLat, 0, now.Add(time.Minute), cooldown)
	assert.False(t, eval.FireAlert)

	eval = m.Evaluate(outsideLat, 0, now.Add(6*time.Minute), cooldown)
	assert.True(t, eval.FireAlert)
}

func TestMonitor_ReportsRoundedDistance(t *testing.T) {
	m := NewMonitor("user-1", "org-1", testSite)
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

	eval := m.Evaluate(outsideLat, 0, now, 5*time.Minute)
	// 0.001 degrees of latitude on a 6,371 km sphere is ~111 m.
	assert.InDelta(t, 111, eval.DistanceMeters, 1)
}
