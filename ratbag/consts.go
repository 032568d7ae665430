package ratbag

// D-Bus names exported by ghostcatd.
const (
	BusName  = "org.freedesktop.ratbag1"
	RootPath = "/org/freedesktop/ratbag1"

	ManagerInterface    = BusName + ".Manager"
	DeviceInterface     = BusName + ".Device"
	ProfileInterface    = BusName + ".Profile"
	ResolutionInterface = BusName + ".Resolution"
	ButtonInterface     = BusName + ".Button"

	propertiesInterface = "org.freedesktop.DBus.Properties"
	propertiesGet       = propertiesInterface + ".Get"
	propertiesGetAll    = propertiesInterface + ".GetAll"
	propertiesSet       = propertiesInterface + ".Set"
	propertiesChanged   = "PropertiesChanged"
	resyncSignal        = "Resync"
)

// Property names published on the Bus.
const (
	PropAPIVersion       = "APIVersion"
	PropDevices          = "Devices"
	PropModel            = "Model"
	PropName             = "Name"
	PropProfiles         = "Profiles"
	PropIndex            = "Index"
	PropDisabled         = "Disabled"
	PropResolutions      = "Resolutions"
	PropButtons          = "Buttons"
	PropIsActive         = "IsActive"
	PropIsDirty          = "IsDirty"
	PropIsDisabled       = "IsDisabled"
	PropIsDpiShiftTarget = "IsDpiShiftTarget"
	PropResolution       = "Resolution"
	PropMapping          = "Mapping"

	// PropResync is the pseudo-property published when a device emits Resync.
	PropResync = "Resync"
)

// ActionType is the kind of action a button is mapped to.
type ActionType uint32

const (
	ActionNone    ActionType = 0
	ActionButton  ActionType = 1
	ActionSpecial ActionType = 2
	ActionKey     ActionType = 3
	ActionMacro   ActionType = 4
	ActionUnknown ActionType = 1000
)

// Special is a special button action such as a DPI cycle.
type Special int64

const (
	SpecialInvalid Special = -1
	SpecialUnknown Special = 1 << 30
)

const (
	SpecialDoubleClick Special = SpecialUnknown + 1 + iota
	SpecialWheelLeft
	SpecialWheelRight
	SpecialWheelUp
	SpecialWheelDown
	SpecialRatchetModeSwitch
	SpecialResolutionCycleUp
	SpecialResolutionCycleDown
	SpecialResolutionUp
	SpecialResolutionDown
	SpecialResolutionAlternate
	SpecialResolutionDefault
	SpecialProfileCycleUp
	SpecialProfileCycleDown
	SpecialProfileUp
	SpecialProfileDown
	SpecialSecondMode
	SpecialBatteryLevel
)
