package ratbag

// DeviceWatch follows the daemon's device list for as long as a view is
// open, and the Resync signal of whichever device the view shows.
type DeviceWatch struct {
	bus      *Bus
	onResync func(deviceID string)

	hotplug  func()
	resync   func()
	deviceID string
}

// NewDeviceWatch subscribes onDevices to changes of the manager's Devices
// property right away. Resync notifications start with Follow.
func NewDeviceWatch(bus *Bus, onDevices func(), onResync func(deviceID string)) *DeviceWatch {
	return &DeviceWatch{
		bus:      bus,
		onResync: onResync,
		hotplug: bus.Watch(RootPath, PropDevices, func(interface{}) {
			onDevices()
		}),
	}
}

// Bus returns the bus the watch is registered on.
func (w *DeviceWatch) Bus() *Bus {
	return w.bus
}

// Follow moves the Resync subscription to deviceID. An empty id drops it;
// the device list subscription is not affected.
func (w *DeviceWatch) Follow(deviceID string) {
	if deviceID == w.deviceID && (w.resync != nil || deviceID == "") {
		return
	}
	if w.resync != nil {
		w.resync()
		w.resync = nil
	}
	w.deviceID = deviceID
	if deviceID == "" {
		return
	}
	w.resync = w.bus.Watch(deviceID, PropResync, func(interface{}) {
		w.onResync(deviceID)
	})
}

// Following returns the device whose Resync is watched, or "".
func (w *DeviceWatch) Following() string {
	return w.deviceID
}

// Close drops both subscriptions.
func (w *DeviceWatch) Close() {
	w.Follow("")
	if w.hotplug != nil {
		w.hotplug()
		w.hotplug = nil
	}
}
