package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
)

// sourcePager marks client messages as coming from a pager, which EWMH
// window managers honour without focus-stealing checks.
const sourcePager = 2

// sendClientMessage sends a 32-bit client message of type atomName about
// win. Messages for the window manager go to the root window; protocol
// messages go to the client itself.
//
// The messages are built by hand because the ewmh request helpers in the
// pinned xgbutil revision panic on some property types.
func (c *Connection) sendClientMessage(dest, win xproto.Window, mask uint32, atomName string, data ...uint32) error {
	atom, err := xprop.Atm(c.XUtil, atomName)
	if err != nil {
		return fmt.Errorf("intern %s: %w", atomName, err)
	}

	payload := make([]uint32, 5)
	copy(payload, data)

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New(payload),
	}
	return xproto.SendEventChecked(c.XUtil.Conn(), false, dest, mask, string(ev.Bytes())).Check()
}

func (c *Connection) sendToRoot(win xproto.Window, atomName string, data ...uint32) error {
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	return c.sendClientMessage(c.Root, win, mask, atomName, data...)
}

// ActivateWindow asks the window manager to focus and raise win, restoring it
// first if it is iconified.
func (c *Connection) ActivateWindow(win xproto.Window) error {
	return c.sendToRoot(win, "_NET_ACTIVE_WINDOW", sourcePager)
}

// IconifyWindow asks the window manager to iconify win (ICCCM 4.1.4).
func (c *Connection) IconifyWindow(win xproto.Window) error {
	const iconicState = 3
	return c.sendToRoot(win, "WM_CHANGE_STATE", iconicState)
}

// CloseWindow asks win to close itself through WM_DELETE_WINDOW.
func (c *Connection) CloseWindow(win xproto.Window) error {
	deleteAtom, err := xprop.Atm(c.XUtil, "WM_DELETE_WINDOW")
	if err != nil {
		return fmt.Errorf("intern WM_DELETE_WINDOW: %w", err)
	}
	return c.sendClientMessage(win, win, xproto.EventMaskNoEvent, "WM_PROTOCOLS", uint32(deleteAtom))
}
