package ratbag

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

// busObject is the subset of dbus.BusObject the client needs.
type busObject interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
	Path() dbus.ObjectPath
}

// object is a daemon object with a property cache kept current by
// PropertiesChanged signals.
type object struct {
	client *Client
	remote busObject
	iface  string

	mu    sync.RWMutex
	props map[string]dbus.Variant
}

func newObject(client *Client, remote busObject, iface string, props map[string]dbus.Variant) *object {
	if props == nil {
		props = make(map[string]dbus.Variant)
	}
	return &object{
		client: client,
		remote: remote,
		iface:  iface,
		props:  props,
	}
}

// ID returns the object path as a string.
func (o *object) ID() string {
	return string(o.remote.Path())
}

func (o *object) value(name string) (interface{}, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.props[name]
	if !ok {
		return nil, false
	}
	return v.Value(), true
}

func (o *object) boolProp(name string) bool {
	v, _ := o.value(name)
	b, _ := v.(bool)
	return b
}

func (o *object) stringProp(name string) string {
	v, _ := o.value(name)
	s, _ := v.(string)
	return s
}

func (o *object) uintProp(name string) uint32 {
	v, _ := o.value(name)
	n, _ := toUint32(v)
	return n
}

func (o *object) pathsProp(name string) []dbus.ObjectPath {
	v, _ := o.value(name)
	paths, _ := v.([]dbus.ObjectPath)
	return paths
}

func (o *object) timeout() time.Duration {
	if o.client == nil {
		return defaultCallTimeout
	}
	return o.client.callTimeout
}

// call invokes a method. Methods that reply with a u status fail when the
// status is non-zero.
func (o *object) call(ctx context.Context, method string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, o.timeout())
	defer cancel()

	call := o.remote.CallWithContext(ctx, o.iface+"."+method, 0, args...)
	if call.Err != nil {
		return fmt.Errorf("%s.%s on %s: %w", o.iface, method, o.ID(), call.Err)
	}
	if len(call.Body) == 0 {
		return nil
	}
	status, ok := toUint32(call.Body[0])
	if ok && status != 0 {
		return fmt.Errorf("%s.%s on %s returned %d", o.iface, method, o.ID(), status)
	}
	return nil
}

// set writes a property through org.freedesktop.DBus.Properties.Set.
func (o *object) set(ctx context.Context, name string, value interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, o.timeout())
	defer cancel()

	call := o.remote.CallWithContext(ctx, propertiesSet, 0, o.iface, name, dbus.MakeVariant(value))
	if call.Err != nil {
		return fmt.Errorf("setting %s on %s: %w", name, o.ID(), call.Err)
	}
	return nil
}

// live reads a property directly from the daemon, bypassing the cache.
// The daemon is not auto-started for the read.
func (o *object) live(ctx context.Context, name string) (dbus.Variant, error) {
	var v dbus.Variant
	err := o.remote.CallWithContext(ctx, propertiesGet, dbus.FlagNoAutoStart, o.iface, name).Store(&v)
	return v, err
}

// refresh re-reads every property.
func (o *object) refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, o.timeout())
	defer cancel()

	props := make(map[string]dbus.Variant)
	if err := o.remote.CallWithContext(ctx, propertiesGetAll, 0, o.iface).Store(&props); err != nil {
		return fmt.Errorf("reading properties of %s: %w", o.ID(), err)
	}
	o.mu.Lock()
	o.props = props
	o.mu.Unlock()
	return nil
}

// applyChanged merges a PropertiesChanged payload into the cache and
// returns one event per changed property. Invalidated properties are
// re-read from the daemon.
func (o *object) applyChanged(ctx context.Context, changed map[string]dbus.Variant, invalidated []string) []Event {
	events := make([]Event, 0, len(changed)+len(invalidated))

	o.mu.Lock()
	for name, v := range changed {
		o.props[name] = v
	}
	o.mu.Unlock()

	names := make([]string, 0, len(changed))
	for name := range changed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		events = append(events, Event{EntityID: o.ID(), Property: name, Value: decodeValue(name, changed[name])})
	}

	for _, name := range invalidated {
		readCtx, cancel := context.WithTimeout(ctx, o.timeout())
		v, err := o.live(readCtx, name)
		cancel()
		if err != nil {
			continue
		}
		o.mu.Lock()
		o.props[name] = v
		o.mu.Unlock()
		events = append(events, Event{EntityID: o.ID(), Property: name, Value: decodeValue(name, v)})
	}
	return events
}

// decodeValue turns a variant into the value published on the Bus.
// Mapping and Resolution are decoded; everything else is passed through.
func decodeValue(name string, v dbus.Variant) interface{} {
	switch name {
	case PropMapping:
		if m, err := decodeMapping(v.Value()); err == nil {
			return m
		}
	case PropResolution:
		if d, err := decodeDPI(v); err == nil {
			return d
		}
	}
	return v.Value()
}
