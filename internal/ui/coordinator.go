package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fishit/fishit/internal/kvcache"
	"github.com/fishit/fishit/internal/models"
	"github.com/fishit/fishit/internal/spatial"
)

// detailStatus is the lifecycle of one detail-screen instance.
type detailStatus int

const (
	detailIdle detailStatus = iota
	detailInitializing
	detailReady    // both sources available, distance derived
	detailDegraded // at least one source failed; partial data renders
)

// detailState coordinates the resolution of one station detail screen:
// cached loads, at most two concurrent fetches, and the derived distance.
type detailState struct {
	status        detailStatus
	operationCode string
	spotName      string

	station  *models.StationDetail
	userLoc  *models.UserLocation
	distance *models.DistanceEstimate

	stationErr     error
	locationFailed bool

	loadingStation  bool
	loadingLocation bool
}

// start drives initialization for the given operation code. Calling it
// while an initialization is already in flight is a no-op, so a rapid
// double-trigger issues each fetch at most once.
func (m *Model) startDetail(operationCode, spotName string) tea.Cmd {
	if m.detail.status == detailInitializing && m.detail.operationCode == operationCode {
		return nil
	}

	m.detail = detailState{
		status:        detailInitializing,
		operationCode: operationCode,
		spotName:      spotName,
	}

	now := time.Now()

	// Serve both sources from the persistent cache when still fresh
	var cached models.StationDetail
	if m.cache.Get(kvcache.StationKey(operationCode), &cached) && cached.Valid(now) {
		m.detail.station = &cached
	}
	m.detail.userLoc = m.locations.Cached(now)

	var cmds []tea.Cmd
	if m.detail.station == nil {
		m.detail.loadingStation = true
		cmds = append(cmds, fetchStation(m.fish, operationCode))
	}
	if m.detail.userLoc == nil {
		m.detail.loadingLocation = true
		cmds = append(cmds, acquireLocation(m.locations))
	}

	if len(cmds) == 0 {
		m.detail.settle()
		return nil
	}
	// Concurrent, isolated: one branch failing never blocks the other
	return tea.Batch(cmds...)
}

// handleStationFetched folds a station fetch result into the screen state.
func (m *Model) handleStationFetched(msg stationFetchedMsg) {
	// Mounted-instance guard: discard results for a screen we left
	if msg.operationCode != m.detail.operationCode {
		return
	}

	m.detail.loadingStation = false
	if msg.err != nil {
		m.detail.stationErr = msg.err
	} else {
		m.detail.station = msg.detail
		m.cache.Set(kvcache.StationKey(msg.operationCode), msg.detail)
	}
	m.detail.settle()
}

// handleLocationResolved folds a user-location result into the screen
// state. Location failures degrade silently; the view shows a placeholder.
func (m *Model) handleLocationResolved(msg locationResolvedMsg) {
	m.detail.loadingLocation = false
	if msg.err != nil {
		m.detail.locationFailed = true
	} else {
		m.detail.userLoc = msg.location
	}
	m.detail.settle()
}

// settle recomputes the derived distance and, once every pending
// operation has finished, transitions to a terminal status exactly once.
func (d *detailState) settle() {
	// Reactive recompute: the two sources resolve in either order, so the
	// derivation runs from every completion path, first coexistence wins.
	if d.distance == nil && d.station != nil && d.userLoc != nil {
		est := spatial.Estimate(d.userLoc.Coordinates, d.station.Coordinates)
		d.distance = &est
	}

	if d.loadingStation || d.loadingLocation {
		return
	}
	if d.status != detailInitializing {
		return
	}

	if d.stationErr == nil && d.station != nil && !d.locationFailed {
		d.status = detailReady
	} else {
		d.status = detailDegraded
	}
}

// retryStation re-enters initialization after a station fetch failure.
// Only the failed branch is retried; a resolved user location is kept.
func (m *Model) retryStation() tea.Cmd {
	if m.detail.stationErr == nil {
		return nil
	}
	m.detail.status = detailInitializing
	m.detail.stationErr = nil
	m.detail.loadingStation = true
	return fetchStation(m.fish, m.detail.operationCode)
}
