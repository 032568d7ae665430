package ratbag

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ghostcat/ghostcat/common"
	"github.com/godbus/dbus/v5"
)

type fakeCall struct {
	method string
	flags  dbus.Flags
	args   []interface{}
}

type fakeRemote struct {
	path    dbus.ObjectPath
	calls   []fakeCall
	replies map[string]*dbus.Call
}

func (f *fakeRemote) CallWithContext(_ context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	f.calls = append(f.calls, fakeCall{method: method, flags: flags, args: args})
	if reply, ok := f.replies[method]; ok {
		return reply
	}
	return &dbus.Call{}
}

func (f *fakeRemote) Path() dbus.ObjectPath { return f.path }

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestObject(c *Client, p dbus.ObjectPath, iface string, props map[string]dbus.Variant) (*object, *fakeRemote) {
	remote := &fakeRemote{path: p, replies: make(map[string]*dbus.Call)}
	obj := newObject(c, remote, iface, props)
	if c != nil {
		c.objects[p] = obj
	}
	return obj, remote
}

func TestResolution_CachedProperties(t *testing.T) {
	obj, _ := newTestObject(nil, "/r0", ResolutionInterface, map[string]dbus.Variant{
		PropIndex:            dbus.MakeVariant(uint32(2)),
		PropIsActive:         dbus.MakeVariant(true),
		PropIsDisabled:       dbus.MakeVariant(false),
		PropIsDpiShiftTarget: dbus.MakeVariant(true),
		PropResolution:       dbus.MakeVariant(uint32(1600)),
		PropResolutions:      dbus.MakeVariant([]uint32{400, 800, 1600}),
	})
	r := &Resolution{object: obj}

	if r.Index() != 2 {
		t.Errorf("Index() = %d, want 2", r.Index())
	}
	if !r.IsActive() || r.IsDisabled() || !r.IsDpiShiftTarget() {
		t.Errorf("flags = active %v disabled %v shift %v", r.IsActive(), r.IsDisabled(), r.IsDpiShiftTarget())
	}
	if r.DPI() != (DPI{X: 1600, Y: 1600}) {
		t.Errorf("DPI() = %+v, want 1600", r.DPI())
	}
	if len(r.SupportedDPIs()) != 3 {
		t.Errorf("SupportedDPIs() = %v, want 3 values", r.SupportedDPIs())
	}
	if r.ID() != "/r0" {
		t.Errorf("ID() = %v, want /r0", r.ID())
	}
}

func TestResolution_LiveIsActive(t *testing.T) {
	obj, remote := newTestObject(nil, "/r1", ResolutionInterface, nil)
	remote.replies[propertiesGet] = &dbus.Call{Body: []interface{}{dbus.MakeVariant(true)}}
	r := &Resolution{object: obj}

	active, err := r.LiveIsActive(context.Background())
	if err != nil {
		t.Fatalf("LiveIsActive() error = %v", err)
	}
	if !active {
		t.Error("LiveIsActive() = false, want true")
	}

	call := remote.calls[0]
	if call.flags&dbus.FlagNoAutoStart == 0 {
		t.Error("LiveIsActive() must not auto-start the daemon")
	}
	if len(call.args) != 2 || call.args[0] != ResolutionInterface || call.args[1] != PropIsActive {
		t.Errorf("LiveIsActive() args = %v", call.args)
	}
	// The cache is untouched by a live read.
	if r.IsActive() {
		t.Error("LiveIsActive() should not update the cache")
	}
}

func TestResolution_LiveIsActiveError(t *testing.T) {
	obj, remote := newTestObject(nil, "/r1", ResolutionInterface, nil)
	remote.replies[propertiesGet] = &dbus.Call{Err: context.DeadlineExceeded}
	r := &Resolution{object: obj}

	if _, err := r.LiveIsActive(context.Background()); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("LiveIsActive() error = %v, want deadline exceeded", err)
	}
}

func TestResolution_SetDisabled(t *testing.T) {
	obj, remote := newTestObject(nil, "/r1", ResolutionInterface, nil)
	r := &Resolution{object: obj}

	if err := r.SetDisabled(context.Background(), true); err != nil {
		t.Fatalf("SetDisabled() error = %v", err)
	}
	call := remote.calls[0]
	if call.method != propertiesSet {
		t.Fatalf("method = %v, want %v", call.method, propertiesSet)
	}
	v, ok := call.args[2].(dbus.Variant)
	if !ok || v.Value() != true {
		t.Errorf("Set value = %#v, want variant true", call.args[2])
	}
}

func TestDevice_Commit(t *testing.T) {
	tests := []struct {
		name    string
		reply   *dbus.Call
		wantErr bool
	}{
		{"success", &dbus.Call{Body: []interface{}{uint32(0)}}, false},
		{"non-zero status", &dbus.Call{Body: []interface{}{uint32(1)}}, true},
		{"transport error", &dbus.Call{Err: errors.New("disconnected")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, remote := newTestObject(nil, "/device/hidraw0", DeviceInterface, nil)
			remote.replies[DeviceInterface+".Commit"] = tt.reply
			d := &Device{object: obj}

			err := d.Commit(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Commit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, common.ErrCommitFailed) {
				t.Errorf("Commit() error = %v, want ErrCommitFailed", err)
			}
		})
	}
}

func TestProfile_SetActive(t *testing.T) {
	obj, remote := newTestObject(nil, "/profile/hidraw0/p1", ProfileInterface, nil)
	remote.replies[ProfileInterface+".SetActive"] = &dbus.Call{Body: []interface{}{uint32(0)}}
	p := &Profile{object: obj}

	if err := p.SetActive(context.Background()); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if len(remote.calls) != 1 || remote.calls[0].method != ProfileInterface+".SetActive" {
		t.Errorf("calls = %v, want one Profile.SetActive", remote.calls)
	}

	remote.replies[ProfileInterface+".SetActive"] = &dbus.Call{Body: []interface{}{uint32(1)}}
	if err := p.SetActive(context.Background()); err == nil {
		t.Error("SetActive() error = nil for non-zero status")
	}
}

func TestDevice_IsDirty(t *testing.T) {
	tests := []struct {
		name  string
		dirty []bool
		want  bool
	}{
		{"clean", []bool{false, false}, false},
		{"second profile dirty", []bool{false, true}, true},
		{"no profiles", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(Options{Logger: nopLogger{}})
			var paths []dbus.ObjectPath
			for i, dirty := range tt.dirty {
				p := dbus.ObjectPath(fmt.Sprintf("%s/profile/hidraw0/p%d", RootPath, i))
				newTestObject(c, p, ProfileInterface, map[string]dbus.Variant{
					PropIndex:   dbus.MakeVariant(uint32(i)),
					PropIsDirty: dbus.MakeVariant(dirty),
				})
				paths = append(paths, p)
			}
			obj, _ := newTestObject(c, RootPath+"/device/hidraw0", DeviceInterface, map[string]dbus.Variant{
				PropProfiles: dbus.MakeVariant(paths),
			})
			d := &Device{object: obj}

			got, err := d.IsDirty(context.Background())
			if err != nil {
				t.Fatalf("IsDirty() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsDirty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestButton_Mapping(t *testing.T) {
	obj, _ := newTestObject(nil, "/b4", ButtonInterface, map[string]dbus.Variant{
		PropIndex:   dbus.MakeVariant(uint32(4)),
		PropMapping: dbus.MakeVariant([]interface{}{uint32(ActionSpecial), dbus.MakeVariant(uint32(SpecialResolutionCycleUp))}),
	})
	b := &Button{object: obj}

	if b.Index() != 4 {
		t.Errorf("Index() = %d, want 4", b.Index())
	}
	if b.ActionType() != ActionSpecial {
		t.Errorf("ActionType() = %v, want special", b.ActionType())
	}
	if b.Special() != SpecialResolutionCycleUp {
		t.Errorf("Special() = %v, want %v", b.Special(), SpecialResolutionCycleUp)
	}

	empty, _ := newTestObject(nil, "/b5", ButtonInterface, nil)
	if got := (&Button{object: empty}).ActionType(); got != ActionUnknown {
		t.Errorf("ActionType() without mapping = %v, want unknown", got)
	}
}

func TestClient_PropertiesChangedUpdatesCacheAndPublishes(t *testing.T) {
	c := newClient(Options{Logger: nopLogger{}})
	obj, remote := newTestObject(c, "/r0", ResolutionInterface, map[string]dbus.Variant{
		PropIsActive: dbus.MakeVariant(false),
	})
	remote.replies[propertiesGet] = &dbus.Call{Body: []interface{}{dbus.MakeVariant(true)}}

	var events []Event
	c.Bus().Subscribe("/r0", "", func(ev Event) { events = append(events, ev) })

	c.handleSignal(&dbus.Signal{
		Path: "/r0",
		Name: propertiesInterface + "." + propertiesChanged,
		Body: []interface{}{
			ResolutionInterface,
			map[string]dbus.Variant{PropIsActive: dbus.MakeVariant(true)},
			[]string{PropIsDisabled},
		},
	})

	r := &Resolution{object: obj}
	if !r.IsActive() {
		t.Error("cache not updated from changed properties")
	}
	if !r.IsDisabled() {
		t.Error("cache not updated from invalidated property re-read")
	}
	if len(events) != 2 {
		t.Fatalf("events = %v, want 2", events)
	}
	if events[0].Property != PropIsActive || events[0].Value != true {
		t.Errorf("events[0] = %+v, want IsActive=true", events[0])
	}
	if events[1].Property != PropIsDisabled {
		t.Errorf("events[1] = %+v, want IsDisabled", events[1])
	}
}

func TestClient_PropertiesChangedIgnoresUnknownObjects(t *testing.T) {
	c := newClient(Options{Logger: nopLogger{}})
	newTestObject(c, "/r0", ResolutionInterface, nil)

	calls := 0
	c.Bus().Subscribe("/r9", "", func(Event) { calls++ })
	c.Bus().Subscribe("/r0", "", func(Event) { calls++ })

	c.handleSignal(&dbus.Signal{
		Path: "/r9",
		Name: propertiesInterface + "." + propertiesChanged,
		Body: []interface{}{ResolutionInterface, map[string]dbus.Variant{PropIsActive: dbus.MakeVariant(true)}, []string{}},
	})
	// Wrong interface for a known path.
	c.handleSignal(&dbus.Signal{
		Path: "/r0",
		Name: propertiesInterface + "." + propertiesChanged,
		Body: []interface{}{ButtonInterface, map[string]dbus.Variant{PropIsActive: dbus.MakeVariant(true)}, []string{}},
	})

	if calls != 0 {
		t.Errorf("handler calls = %d, want 0", calls)
	}
}

func TestClient_ResyncRefreshesDeviceObjects(t *testing.T) {
	c := newClient(Options{Logger: nopLogger{}})
	_, device := newTestObject(c, RootPath+"/device/hidraw3", DeviceInterface, nil)
	_, profile := newTestObject(c, RootPath+"/profile/hidraw3/p0", ProfileInterface, nil)
	_, other := newTestObject(c, RootPath+"/profile/hidraw7/p0", ProfileInterface, nil)

	resyncs := 0
	c.Bus().Subscribe(RootPath+"/device/hidraw3", PropResync, func(Event) { resyncs++ })

	c.handleSignal(&dbus.Signal{
		Path: RootPath + "/device/hidraw3",
		Name: DeviceInterface + "." + resyncSignal,
	})

	if len(device.calls) != 1 || device.calls[0].method != propertiesGetAll {
		t.Errorf("device calls = %v, want one GetAll", device.calls)
	}
	if len(profile.calls) != 1 {
		t.Errorf("profile calls = %v, want one GetAll", profile.calls)
	}
	if len(other.calls) != 0 {
		t.Errorf("unrelated profile was refreshed: %v", other.calls)
	}
	if resyncs != 1 {
		t.Errorf("resync events = %d, want 1", resyncs)
	}
}
