package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/1broseidon/stackwm/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandListWindows      CommandType = "LIST_WINDOWS"
	CommandGetLayout        CommandType = "GET_LAYOUT"
	CommandAddWindow        CommandType = "ADD_WINDOW"
	CommandRemoveWindow     CommandType = "REMOVE_WINDOW"
	CommandFocus            CommandType = "FOCUS"
	CommandUnfocus          CommandType = "UNFOCUS"
	CommandCycleFocus       CommandType = "CYCLE_FOCUS"
	CommandWindowInfo       CommandType = "WINDOW_INFO"
	CommandGetScreen        CommandType = "GET_SCREEN"
	CommandResizeScreen     CommandType = "RESIZE_SCREEN"
	CommandSwapMaster       CommandType = "SWAP_MASTER"
	CommandSwapWindows      CommandType = "SWAP_WINDOWS"
	CommandToggleFloating   CommandType = "TOGGLE_FLOATING"
	CommandSetGeometry      CommandType = "SET_GEOMETRY"
	CommandToggleMinimised  CommandType = "TOGGLE_MINIMISED"
	CommandUnminimiseLast   CommandType = "UNMINIMISE_LAST"
	CommandToggleFullscreen CommandType = "TOGGLE_FULLSCREEN"
	CommandGetStatus        CommandType = "GET_STATUS"
	CommandReload           CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Code   string          `json:"code,omitempty"`
}

// Error codes carried by ERROR responses that map onto wm sentinels.
const (
	CodeUnknownWindow    = "unknown_window"
	CodeAlreadyManaged   = "already_managed"
	CodeNoFloatingWindow = "no_floating_window"
	CodeNoTiledWindow    = "no_tiled_window"
	CodeBadRequest       = "bad_request"
)

var codeSentinels = map[string]error{
	CodeUnknownWindow:    wm.ErrUnknownWindow,
	CodeAlreadyManaged:   wm.ErrAlreadyManaged,
	CodeNoFloatingWindow: wm.ErrNoFloatingWindow,
	CodeNoTiledWindow:    wm.ErrNoTiledWindow,
}

// ErrorCode returns the wire code for err, or "" when err is not one of the
// wm sentinels.
func ErrorCode(err error) string {
	for code, sentinel := range codeSentinels {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

// DaemonError is an ERROR response surfaced by the client. It unwraps to the
// matching wm sentinel so callers can use errors.Is across the socket.
type DaemonError struct {
	Code    string
	Message string
}

func (e *DaemonError) Error() string {
	return "daemon error: " + e.Message
}

func (e *DaemonError) Unwrap() error {
	return codeSentinels[e.Code]
}

// WindowPayload names a single window.
type WindowPayload struct {
	Window wm.Window `json:"window"`
}

// DirectionPayload carries the direction for CYCLE_FOCUS and SWAP_WINDOWS.
type DirectionPayload struct {
	Direction wm.Direction `json:"direction"`
}

// GeometryPayload is the payload of SET_GEOMETRY.
type GeometryPayload struct {
	Window   wm.Window   `json:"window"`
	Geometry wm.Geometry `json:"geometry"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows    []wm.WindowInfo `json:"windows"`
	Focused    *wm.Window      `json:"focused,omitempty"`
	Master     *wm.Window      `json:"master,omitempty"`
	Fullscreen *wm.Window      `json:"fullscreen,omitempty"`
	Minimised  []wm.Window     `json:"minimised"`
}

// UnminimiseData represents the data returned by UNMINIMISE_LAST
type UnminimiseData struct {
	Window   wm.Window `json:"window,omitempty"`
	Restored bool      `json:"restored"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Display       string     `json:"display,omitempty"`
	Screen        wm.Screen  `json:"screen"`
	Windows       int        `json:"windows"`
	Tiled         int        `json:"tiled"`
	Floating      int        `json:"floating"`
	Minimised     int        `json:"minimised"`
	Focused       *wm.Window `json:"focused,omitempty"`
	Fullscreen    *wm.Window `json:"fullscreen,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	DaemonRunning bool       `json:"daemon_running"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// NewErrorResponseFromErr creates an error response tagged with the wire code
// of err, if it has one.
func NewErrorResponseFromErr(err error) *Response {
	resp := NewErrorResponse(err.Error())
	resp.Code = ErrorCode(err)
	return resp
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
