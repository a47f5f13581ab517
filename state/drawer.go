package state

// Drawer is the slide-in cart panel's visibility. While open it listens for
// pointer-down events outside its bounds; closing tears the listener down.
type Drawer struct {
	open      bool
	listening bool
}

func (d *Drawer) SetOpen(open bool) {
	d.open = open
	d.listening = open
}

func (d *Drawer) Open()  { d.SetOpen(true) }
func (d *Drawer) Close() { d.SetOpen(false) }

// PointerDown reports whether an outside pointer-down closed the drawer.
func (d *Drawer) PointerDown(inside bool) bool {
	if !d.listening || inside {
		return false
	}
	d.Close()
	return true
}

func (d *Drawer) IsOpen() bool {
	return d.open
}

// Listening reports whether the outside-interaction listener is registered.
func (d *Drawer) Listening() bool {
	return d.listening
}
