/*
monitor.go - Background alert monitor

PURPOSE:
  Periodically recomputes lost-hours alerts over a trailing window of
  shift data and logs high-severity ones, so that chronic short-shift
  patterns surface without anyone polling the reports endpoints.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Each sweep aggregates the last WindowDays of shifts
  - Records the last sweep for the status endpoint

CONFIGURATION:
  - CheckInterval: How often to sweep (default: 1 hour)
  - WindowDays: How far back each sweep looks (default: 7)
  - Enabled: Whether the monitor is active (default: true)

USAGE:
  monitor := NewAlertMonitor(store, rules)
  monitor.Start()
  // ... later
  monitor.Stop()

SEE ALSO:
  - handlers.go: LostHoursReport endpoint (on-demand aggregation)
  - engine/aggregate.go: alert thresholds
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/labor-analytics/engine"
)

// MonitorStatus is a snapshot of the monitor's last sweep.
type MonitorStatus struct {
	Enabled     bool      `json:"enabled"`
	LastRun     time.Time `json:"last_run"`
	NextRun     time.Time `json:"next_run"`
	ShiftsSeen  int       `json:"shifts_seen"`
	AlertCount  int       `json:"alert_count"`
	HighAlerts  int       `json:"high_alerts"`
	WindowDays  int       `json:"window_days"`
	IntervalSec int       `json:"interval_seconds"`
}

// AlertMonitor sweeps recent shifts for lost-hours alerts.
type AlertMonitor struct {
	Store         engine.ShiftStore
	Rules         engine.Rules
	CheckInterval time.Duration
	WindowDays    int
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex

	lastStatus MonitorStatus
}

// NewAlertMonitor creates a monitor over the given store.
func NewAlertMonitor(store engine.ShiftStore, rules engine.Rules) *AlertMonitor {
	return &AlertMonitor{
		Store:         store,
		Rules:         rules,
		CheckInterval: 1 * time.Hour,
		WindowDays:    7,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the monitor.
func (m *AlertMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.Enabled {
		log.Println("[Monitor] Disabled, not starting")
		return
	}

	m.ticker = time.NewTicker(m.CheckInterval)
	m.wg.Add(1)

	go m.run()

	log.Printf("[Monitor] Started with check interval: %v", m.CheckInterval)
}

// Stop stops the monitor.
func (m *AlertMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ticker != nil {
		m.ticker.Stop()
		close(m.stop)
		m.wg.Wait()
		log.Println("[Monitor] Stopped")
	}
}

func (m *AlertMonitor) run() {
	defer m.wg.Done()

	// Sweep immediately on start
	m.sweep()

	for {
		select {
		case <-m.ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

func (m *AlertMonitor) sweep() {
	ctx := context.Background()
	now := time.Now()

	from := engine.DateOf(now.AddDate(0, 0, -m.WindowDays))
	shifts, err := m.Store.ListShifts(ctx, engine.ShiftFilter{From: from})
	if err != nil {
		log.Printf("[Monitor] Error listing shifts: %v", err)
		return
	}

	report := engine.AggregateLostHours(shifts, m.Rules)

	high := 0
	for _, alert := range report.Alerts {
		if alert.Severity == engine.SeverityHigh {
			high++
			log.Printf("[Monitor] HIGH alert: %s (%s) lost %s hours on %s",
				alert.Employee, alert.Department, alert.LostHours.StringFixed(2), alert.Date.Key())
		}
	}

	m.mu.Lock()
	m.lastStatus = MonitorStatus{
		Enabled:     m.Enabled,
		LastRun:     now,
		NextRun:     now.Add(m.CheckInterval),
		ShiftsSeen:  len(shifts),
		AlertCount:  len(report.Alerts),
		HighAlerts:  high,
		WindowDays:  m.WindowDays,
		IntervalSec: int(m.CheckInterval.Seconds()),
	}
	m.mu.Unlock()

	if len(report.Alerts) > 0 {
		log.Printf("[Monitor] Sweep completed: %d shifts, %d alerts (%d high)",
			len(shifts), len(report.Alerts), high)
	}
}

// RunNow triggers an immediate sweep (for testing/admin).
func (m *AlertMonitor) RunNow() {
	m.sweep()
}

// Status returns the last sweep's snapshot.
func (m *AlertMonitor) Status() MonitorStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastStatus
}
