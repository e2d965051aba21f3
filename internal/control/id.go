// Package control models physical controller inputs: control identifiers,
// their observed values, raw device events and the double-buffered store the
// dispatch engine diffs against.
package control

// Kind distinguishes button-like controls from axes.
type Kind uint8

const (
	KindButton Kind = iota + 1
	KindAxis
)

func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindAxis:
		return "axis"
	default:
		return "unknown"
	}
}

// ID identifies a physical control. It is comparable and usable as a map key.
type ID struct {
	Kind Kind
	Name string
}

// Button returns the ID of a button-like control (including analog triggers).
func Button(name string) ID { return ID{Kind: KindButton, Name: name} }

// Axis returns the ID of a bidirectional axis.
func Axis(name string) ID { return ID{Kind: KindAxis, Name: name} }

func (id ID) String() string {
	return id.Kind.String() + ":" + id.Name
}

// Well-known controls, named after the gamepad mapping targets.
var (
	A      = Button("a")
	B      = Button("b")
	X      = Button("x")
	Y      = Button("y")
	LB     = Button("lb")
	RB     = Button("rb")
	Select = Button("select")
	Start  = Button("start")
	Home   = Button("home")
	L3     = Button("l3")
	R3     = Button("r3")

	DpadUp    = Button("dpad_up")
	DpadDown  = Button("dpad_down")
	DpadLeft  = Button("dpad_left")
	DpadRight = Button("dpad_right")

	// Pressure-sensitive triggers report through ButtonChanged.
	LT = Button("lt")
	RT = Button("rt")

	LeftX  = Axis("left_x")
	LeftY  = Axis("left_y")
	RightX = Axis("right_x")
	RightY = Axis("right_y")
)
