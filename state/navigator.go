package state

import (
	"errors"
	"fmt"
)

// View is one of the mutually exclusive top-level screens.
type View string

const (
	ViewHome    View = "home"
	ViewShop    View = "shop"
	ViewProduct View = "product"
	ViewGym     View = "gym"
	ViewCart    View = "cart"
)

var ErrUnknownView = errors.New("unknown view")

// Views lists every screen in navbar order.
var Views = []View{ViewHome, ViewShop, ViewProduct, ViewGym, ViewCart}

func ParseView(s string) (View, error) {
	for _, v := range Views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Navigator tracks the current view and the selected product. It does not
// check that the selected product exists; the product screen does that.
type Navigator struct {
	current     View
	selectedID  string
	hasSelected bool
	resetScroll func()
}

// NewNavigator starts on the home view. resetScroll runs before every
// transition and may be nil.
func NewNavigator(resetScroll func()) *Navigator {
	return &Navigator{current: ViewHome, resetScroll: resetScroll}
}

// SetCurrentView resets the scroll position, then switches to v.
func (n *Navigator) SetCurrentView(v View) {
	if n.resetScroll != nil {
		n.resetScroll()
	}
	n.current = v
}

func (n *Navigator) SelectProduct(id string) {
	n.selectedID = id
	n.hasSelected = true
}

// OpenProduct selects id and shows the product view.
func (n *Navigator) OpenProduct(id string) {
	n.SelectProduct(id)
	n.SetCurrentView(ViewProduct)
}

func (n *Navigator) Current() View {
	return n.current
}

func (n *Navigator) SelectedProductID() (string, bool) {
	return n.selectedID, n.hasSelected
}
