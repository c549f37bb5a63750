package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/stackwm/internal/runtimepath"
	"github.com/1broseidon/stackwm/internal/wm"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default runtime socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for the daemon listening on socketPath.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, &DaemonError{Code: resp.Code, Message: resp.Error}
	}

	return &resp, nil
}

// call sends cmd with an optional payload and decodes the response data into
// out when out is non-nil.
func (c *Client) call(cmd CommandType, payload any, out any) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// ListWindows returns every managed window with its state.
func (c *Client) ListWindows() (*WindowsData, error) {
	var data WindowsData
	if err := c.call(CommandListWindows, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetLayout returns the layout the daemon currently renders.
func (c *Client) GetLayout() (*wm.Layout, error) {
	var layout wm.Layout
	if err := c.call(CommandGetLayout, nil, &layout); err != nil {
		return nil, err
	}
	return &layout, nil
}

func (c *Client) AddWindow(info wm.WindowInfo) error {
	return c.call(CommandAddWindow, info, nil)
}

func (c *Client) RemoveWindow(w wm.Window) error {
	return c.call(CommandRemoveWindow, WindowPayload{Window: w}, nil)
}

func (c *Client) Focus(w wm.Window) error {
	return c.call(CommandFocus, WindowPayload{Window: w}, nil)
}

func (c *Client) Unfocus() error {
	return c.call(CommandUnfocus, nil, nil)
}

func (c *Client) CycleFocus(dir wm.Direction) error {
	return c.call(CommandCycleFocus, DirectionPayload{Direction: dir}, nil)
}

func (c *Client) WindowInfo(w wm.Window) (*wm.WindowInfo, error) {
	var info wm.WindowInfo
	if err := c.call(CommandWindowInfo, WindowPayload{Window: w}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) GetScreen() (*wm.Screen, error) {
	var screen wm.Screen
	if err := c.call(CommandGetScreen, nil, &screen); err != nil {
		return nil, err
	}
	return &screen, nil
}

func (c *Client) ResizeScreen(screen wm.Screen) error {
	return c.call(CommandResizeScreen, screen, nil)
}

func (c *Client) SwapWithMaster(w wm.Window) error {
	return c.call(CommandSwapMaster, WindowPayload{Window: w}, nil)
}

func (c *Client) SwapWindows(dir wm.Direction) error {
	return c.call(CommandSwapWindows, DirectionPayload{Direction: dir}, nil)
}

func (c *Client) ToggleFloating(w wm.Window) error {
	return c.call(CommandToggleFloating, WindowPayload{Window: w}, nil)
}

func (c *Client) SetGeometry(w wm.Window, g wm.Geometry) error {
	return c.call(CommandSetGeometry, GeometryPayload{Window: w, Geometry: g}, nil)
}

func (c *Client) ToggleMinimised(w wm.Window) error {
	return c.call(CommandToggleMinimised, WindowPayload{Window: w}, nil)
}

// UnminimiseLast restores the most recently minimised window, if any.
func (c *Client) UnminimiseLast() (*UnminimiseData, error) {
	var data UnminimiseData
	if err := c.call(CommandUnminimiseLast, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) ToggleFullscreen(w wm.Window) error {
	return c.call(CommandToggleFullscreen, WindowPayload{Window: w}, nil)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
