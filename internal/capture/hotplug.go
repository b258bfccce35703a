package capture

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"camrec/internal/logging"
)

// HotplugEvent describes a sound-card add or remove observed via udev.
type HotplugEvent struct {
	Action string
	Device string
}

// HotplugMonitor listens for udev netlink events on the sound subsystem
// and reports card add/remove to a handler. It lets hosts re-probe the
// capture device without polling.
type HotplugMonitor struct {
	logger  *slog.Logger
	handler func(HotplugEvent)

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// NewHotplugMonitor creates a monitor delivering sound-card events to handler.
func NewHotplugMonitor(logger *slog.Logger, handler func(HotplugEvent)) *HotplugMonitor {
	return &HotplugMonitor{
		logger:  logging.NewComponentLogger(logger, "capture-hotplug"),
		handler: handler,
	}
}

// Start begins listening for udev netlink events. Connection failures are
// non-fatal: capture keeps working, only hotplug awareness is lost.
func (m *HotplugMonitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		m.logger.Warn("failed to connect to netlink socket; sound-card hotplug detection unavailable",
			logging.Error(err),
			logging.String(logging.FieldEventType, "hotplug_connect_failed"),
			logging.String(logging.FieldErrorHint, "ensure the process can access netlink sockets"),
		)
		return nil
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("hotplug monitor started",
		logging.String(logging.FieldEventType, "hotplug_monitor_started"),
	)
	return nil
}

// Stop shuts down the monitor.
func (m *HotplugMonitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false

	m.logger.Info("hotplug monitor stopped",
		logging.String(logging.FieldEventType, "hotplug_monitor_stopped"),
	)
}

// Running reports whether the monitor is active.
func (m *HotplugMonitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *HotplugMonitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, soundCardMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(uevent)
		case err := <-errs:
			m.logger.Warn("hotplug monitor error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "hotplug_monitor_error"),
				logging.String(logging.FieldErrorHint, "check kernel netlink subsystem"),
			)
		}
	}
}

// soundCardMatcher matches SUBSYSTEM=sound, ACTION=add|remove events.
func soundCardMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "sound",
		},
	})
	return rules
}

func (m *HotplugMonitor) handleEvent(uevent netlink.UEvent) {
	device := uevent.Env["DEVNAME"]
	if device == "" {
		device = uevent.KObj
	}
	m.logger.Debug("sound device event",
		logging.String("action", string(uevent.Action)),
		logging.String("device", device),
	)
	if m.handler != nil {
		m.handler(HotplugEvent{Action: string(uevent.Action), Device: device})
	}
}
