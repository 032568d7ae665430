// Package ratbag is the D-Bus client for ghostcatd.
//
// A Client mirrors the daemon's Manager, Device, Profile, Resolution and
// Button objects. Each object caches its properties; PropertiesChanged
// signals update the cache and are republished on the client's Bus as one
// Event per property, so views subscribe to the Bus instead of D-Bus.
package ratbag

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/ghostcat/ghostcat/common"
	"github.com/godbus/dbus/v5"
)

const defaultCallTimeout = common.CallTimeout

// Options configures a Client.
type Options struct {
	// DeveloperMode connects to the session bus instead of the system bus.
	DeveloperMode bool
	// APIVersion is the required Manager.APIVersion; zero means the
	// built-in version.
	APIVersion int
	// CallTimeout bounds regular method calls.
	CallTimeout time.Duration
	// Dispatch delivers Bus events on the control thread.
	Dispatch Dispatcher
	// Logger receives client diagnostics; the process logger when nil.
	Logger common.Logger
}

// Client is a connection to ghostcatd.
type Client struct {
	conn        *dbus.Conn
	manager     *object
	bus         *Bus
	logger      common.Logger
	callTimeout time.Duration

	mu      sync.Mutex
	objects map[dbus.ObjectPath]*object

	signals   chan *dbus.Signal
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient connects to the daemon and verifies its API version.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	var (
		conn *dbus.Conn
		err  error
	)
	if opts.DeveloperMode {
		conn, err = dbus.ConnectSessionBus(dbus.WithContext(ctx))
	} else {
		conn, err = dbus.ConnectSystemBus(dbus.WithContext(ctx))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrDaemonUnavailable, err)
	}

	c := newClient(opts)
	c.conn = conn
	c.manager = newObject(c, conn.Object(BusName, RootPath), ManagerInterface, nil)

	if err := c.manager.refresh(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrDaemonUnavailable, err)
	}

	want := opts.APIVersion
	if want == 0 {
		want = common.RequiredAPIVersion
	}
	if got := c.APIVersion(); got != want {
		conn.Close()
		return nil, fmt.Errorf("%w: daemon speaks %d, client requires %d", common.ErrVersionMismatch, got, want)
	}

	c.objects[RootPath] = c.manager

	if err := c.watch(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribing to daemon signals: %w", err)
	}

	c.logger.Info("Connected to %s (API %d)", BusName, want)
	return c, nil
}

func newClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = common.GetLogger()
	}
	timeout := opts.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Client{
		bus:         NewBus(opts.Dispatch),
		logger:      logger,
		callTimeout: timeout,
		objects:     make(map[dbus.ObjectPath]*object),
		done:        make(chan struct{}),
	}
}

// Bus returns the event bus fed by daemon signals.
func (c *Client) Bus() *Bus {
	return c.bus
}

// APIVersion returns the daemon's advertised API version.
func (c *Client) APIVersion() int {
	v, _ := c.manager.value(PropAPIVersion)
	switch n := v.(type) {
	case int32:
		return int(n)
	case uint32:
		return int(n)
	}
	return -1
}

// Devices returns the devices currently managed by the daemon.
func (c *Client) Devices(ctx context.Context) ([]*Device, error) {
	paths := c.manager.pathsProp(PropDevices)
	devices := make([]*Device, 0, len(paths))
	for _, p := range paths {
		obj, err := c.lookup(ctx, p, DeviceInterface)
		if err != nil {
			return nil, err
		}
		devices = append(devices, &Device{object: obj})
	}
	return devices, nil
}

// lookup returns the cached object at path, fetching its properties on
// first use.
func (c *Client) lookup(ctx context.Context, objPath dbus.ObjectPath, iface string) (*object, error) {
	if obj, ok := c.cached(objPath); ok {
		return obj, nil
	}

	obj := newObject(c, c.conn.Object(BusName, objPath), iface, nil)
	if err := obj.refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.objects[objPath]; ok {
		return existing, nil
	}
	c.objects[objPath] = obj
	return obj, nil
}

func (c *Client) cached(objPath dbus.ObjectPath) (*object, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	obj, ok := c.objects[objPath]
	return obj, ok
}

func (c *Client) watch(ctx context.Context) error {
	err := c.conn.AddMatchSignalContext(ctx,
		dbus.WithMatchInterface(propertiesInterface),
		dbus.WithMatchMember(propertiesChanged),
		dbus.WithMatchPathNamespace(RootPath),
	)
	if err != nil {
		return err
	}
	err = c.conn.AddMatchSignalContext(ctx,
		dbus.WithMatchInterface(DeviceInterface),
		dbus.WithMatchMember(resyncSignal),
	)
	if err != nil {
		return err
	}

	c.signals = make(chan *dbus.Signal, 64)
	c.conn.Signal(c.signals)
	go c.loop()
	return nil
}

func (c *Client) loop() {
	for {
		select {
		case <-c.done:
			return
		case sig, ok := <-c.signals:
			if !ok {
				return
			}
			c.handleSignal(sig)
		}
	}
}

// handleSignal runs on the signal goroutine. It only touches object
// caches and the Bus; views see the result through the dispatcher.
func (c *Client) handleSignal(sig *dbus.Signal) {
	switch sig.Name {
	case propertiesInterface + "." + propertiesChanged:
		if len(sig.Body) < 3 {
			return
		}
		iface, _ := sig.Body[0].(string)
		changed, _ := sig.Body[1].(map[string]dbus.Variant)
		invalidated, _ := sig.Body[2].([]string)

		obj, ok := c.cached(sig.Path)
		if !ok || obj.iface != iface {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), c.callTimeout)
		events := obj.applyChanged(ctx, changed, invalidated)
		cancel()
		for _, ev := range events {
			c.logger.Debug("%s %s = %v", ev.EntityID, ev.Property, ev.Value)
			c.bus.Publish(ev)
		}

	case DeviceInterface + "." + resyncSignal:
		c.logger.Info("Device %s requested a resync", sig.Path)
		c.refreshDevice(sig.Path)
		c.bus.Publish(Event{EntityID: string(sig.Path), Property: PropResync, Value: true})
	}
}

// refreshDevice re-reads every cached object belonging to device. Child
// objects live under RootPath/<kind>/<sysname>/..., not under the device
// path itself.
func (c *Client) refreshDevice(device dbus.ObjectPath) {
	sysname := path.Base(string(device))

	c.mu.Lock()
	var stale []*object
	for p, obj := range c.objects {
		if p == device || strings.HasPrefix(string(p), RootPath+"/") &&
			strings.Contains(string(p), "/"+sysname+"/") {
			stale = append(stale, obj)
		}
	}
	c.mu.Unlock()

	for _, obj := range stale {
		ctx, cancel := context.WithTimeout(context.Background(), c.callTimeout)
		if err := obj.refresh(ctx); err != nil {
			c.logger.Warn("Failed to refresh %s after resync: %v", obj.ID(), err)
		}
		cancel()
	}
}

// Close stops the signal watcher and closes the connection.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			c.conn.RemoveSignal(c.signals)
			err = c.conn.Close()
		}
	})
	return err
}
