package gamepad

import (
	"math"

	"github.com/soar/PadMouse/internal/control"
)

// AxisMapping defines how a raw axis index maps to a gamepad field.
type AxisMapping struct {
	Index     int32
	Target    control.ID
	IsTrigger bool
	Invert    bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping defines how a raw button index maps to a gamepad button.
type ButtonMapping struct {
	Index  int32
	Target control.ID
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// axis returns the mapping for a raw axis index.
func (m *DeviceMapping) axis(index int32) (AxisMapping, bool) {
	for _, am := range m.Axes {
		if am.Index == index {
			return am, true
		}
	}
	return AxisMapping{}, false
}

// button returns the control for a raw button index.
func (m *DeviceMapping) button(index int32) (control.ID, bool) {
	for _, bm := range m.Buttons {
		if bm.Index == index {
			return bm.Target, true
		}
	}
	return control.ID{}, false
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0. The arithmetic
// is done in float64: raw-rawMin overflows int16 for full-range triggers.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := (float64(raw) - float64(rawMin)) / (float64(rawMax) - float64(rawMin))
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// ApplyDeadzone returns 0 if the value is within the deadzone threshold.
func ApplyDeadzone(v float64, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}

// Built-in mappings for common controllers.

var xboxMapping = &DeviceMapping{
	Name: "xbox",
	Axes: []AxisMapping{
		{Index: 0, Target: control.LeftX},
		{Index: 1, Target: control.LeftY, Invert: true},
		{Index: 2, Target: control.RightX},
		{Index: 3, Target: control.RightY, Invert: true},
		{Index: 4, Target: control.LT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: control.RT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: control.A},
		{Index: 1, Target: control.B},
		{Index: 2, Target: control.X},
		{Index: 3, Target: control.Y},
		{Index: 4, Target: control.LB},
		{Index: 5, Target: control.RB},
		{Index: 6, Target: control.Select},
		{Index: 7, Target: control.Start},
		{Index: 8, Target: control.L3},
		{Index: 9, Target: control.R3},
		{Index: 10, Target: control.Home},
	},
	HasHat: true,
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Axes: []AxisMapping{
		{Index: 0, Target: control.LeftX},
		{Index: 1, Target: control.LeftY, Invert: true},
		{Index: 2, Target: control.RightX},
		{Index: 3, Target: control.RightY, Invert: true},
		{Index: 4, Target: control.LT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: control.RT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: control.A},      // Cross (×)
		{Index: 1, Target: control.B},      // Circle (○)
		{Index: 2, Target: control.X},      // Square (□)
		{Index: 3, Target: control.Y},      // Triangle (△)
		{Index: 4, Target: control.Select}, // Share / Create
		{Index: 5, Target: control.Home},   // PS button
		{Index: 6, Target: control.Start},  // Options
		{Index: 7, Target: control.L3},
		{Index: 8, Target: control.R3},
		{Index: 9, Target: control.LB},  // L1
		{Index: 10, Target: control.RB}, // R1
	},
	HasHat: true,
}

var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Axes: []AxisMapping{
		{Index: 0, Target: control.LeftX},
		{Index: 1, Target: control.LeftY, Invert: true},
		{Index: 2, Target: control.RightX},
		{Index: 3, Target: control.RightY, Invert: true},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: control.A},
		{Index: 1, Target: control.B},
		{Index: 2, Target: control.X},
		{Index: 3, Target: control.Y},
		{Index: 4, Target: control.LB},
		{Index: 5, Target: control.RB},
		{Index: 6, Target: control.Select},
		{Index: 7, Target: control.Start},
		{Index: 8, Target: control.L3},
		{Index: 9, Target: control.R3},
		{Index: 10, Target: control.Home},
	},
	HasHat: true,
}

var genericMapping = &DeviceMapping{
	Name: "generic",
	Axes: []AxisMapping{
		{Index: 0, Target: control.LeftX},
		{Index: 1, Target: control.LeftY, Invert: true},
		{Index: 2, Target: control.RightX},
		{Index: 3, Target: control.RightY, Invert: true},
		{Index: 4, Target: control.LT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: control.RT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: control.A},
		{Index: 1, Target: control.B},
		{Index: 2, Target: control.X},
		{Index: 3, Target: control.Y},
		{Index: 4, Target: control.LB},
		{Index: 5, Target: control.RB},
		{Index: 6, Target: control.Select},
		{Index: 7, Target: control.Start},
		{Index: 8, Target: control.L3},
		{Index: 9, Target: control.R3},
		{Index: 10, Target: control.Home},
	},
	HasHat: true,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// Lookup returns the mapping for a device identified by vendor/product ID,
// falling back to the generic layout.
func Lookup(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}
