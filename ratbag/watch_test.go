package ratbag

import (
	"reflect"
	"testing"

	"github.com/godbus/dbus/v5"
)

func devicesChanged(paths ...dbus.ObjectPath) *dbus.Signal {
	return &dbus.Signal{
		Path: RootPath,
		Name: propertiesInterface + "." + propertiesChanged,
		Body: []interface{}{
			ManagerInterface,
			map[string]dbus.Variant{PropDevices: dbus.MakeVariant(paths)},
			[]string{},
		},
	}
}

func TestDeviceWatch_HotplugSurvivesEmptyDeviceList(t *testing.T) {
	c := newClient(Options{Logger: nopLogger{}})
	newTestObject(c, RootPath, ManagerInterface, map[string]dbus.Variant{
		PropDevices: dbus.MakeVariant([]dbus.ObjectPath{RootPath + "/device/hidraw0"}),
	})

	reloads := 0
	w := NewDeviceWatch(c.Bus(), func() { reloads++ }, func(string) {})
	w.Follow(RootPath + "/device/hidraw0")

	// Last device unplugged: the view drops its device.
	c.handleSignal(devicesChanged())
	w.Follow("")

	// A new device is plugged in while nothing is shown.
	c.handleSignal(devicesChanged(RootPath + "/device/hidraw1"))

	if reloads != 2 {
		t.Errorf("reloads = %d, want 2", reloads)
	}
	if got := w.Following(); got != "" {
		t.Errorf("Following() = %q, want empty", got)
	}
}

func TestDeviceWatch_FollowMovesResync(t *testing.T) {
	bus := NewBus(nil)
	var resynced []string
	w := NewDeviceWatch(bus, func() {}, func(id string) { resynced = append(resynced, id) })

	resync := func(id string) {
		bus.Publish(Event{EntityID: id, Property: PropResync, Value: true})
	}

	resync("/device/a")
	w.Follow("/device/a")
	w.Follow("/device/a")
	resync("/device/a")
	w.Follow("/device/b")
	resync("/device/a")
	resync("/device/b")

	want := []string{"/device/a", "/device/b"}
	if !reflect.DeepEqual(resynced, want) {
		t.Errorf("resynced = %v, want %v", resynced, want)
	}
	if bus.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bus.Len())
	}
}

func TestDeviceWatch_Close(t *testing.T) {
	bus := NewBus(nil)
	calls := 0
	w := NewDeviceWatch(bus, func() { calls++ }, func(string) { calls++ })
	w.Follow("/device/a")

	w.Close()
	w.Close()
	bus.Publish(Event{EntityID: RootPath, Property: PropDevices})
	bus.Publish(Event{EntityID: "/device/a", Property: PropResync})

	if calls != 0 {
		t.Errorf("calls after Close = %d, want 0", calls)
	}
	if bus.Len() != 0 {
		t.Errorf("Len() = %d, want 0", bus.Len())
	}
}
