package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/stackwm/internal/runtimepath"
	"github.com/1broseidon/stackwm/internal/wm"
)

// Controller is the window manager the server drives. Implementations must
// be safe for concurrent use; every connection is handled on its own
// goroutine.
type Controller interface {
	ListWindows() WindowsData
	Layout() wm.Layout
	AddWindow(info wm.WindowInfo) error
	RemoveWindow(w wm.Window) error
	FocusWindow(w wm.Window) error
	Unfocus()
	CycleFocus(dir wm.Direction)
	WindowInfo(w wm.Window) (wm.WindowInfo, error)
	Screen() wm.Screen
	ResizeScreen(screen wm.Screen)
	SwapWithMaster(w wm.Window) error
	SwapWindows(dir wm.Direction)
	ToggleFloating(w wm.Window) error
	SetWindowGeometry(w wm.Window, g wm.Geometry) error
	ToggleMinimised(w wm.Window) error
	UnminimiseLast() (wm.Window, bool)
	ToggleFullscreen(w wm.Window) error
	Status() StatusData
	Reload() error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	ctrl         Controller
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a server on the default runtime socket.
func NewServer(ctrl Controller) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, ctrl), nil
}

// NewServerAt creates a server listening on socketPath.
func NewServerAt(socketPath string, ctrl Controller) *Server {
	return &Server{
		socketPath: socketPath,
		ctrl:       ctrl,
		startTime:  time.Now(),
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// Remove a stale socket left by a previous run.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isShuttingDown() {
				return
			}
			log.Printf("IPC accept error: %v", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) isShuttingDown() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// handleConnection serves one request per connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(10 * time.Second))

	reader := bufio.NewReader(conn)

	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.writeResponse(conn, &Response{Status: "ERROR", Error: fmt.Sprintf("Invalid request: %v", err), Code: CodeBadRequest})
		return
	}

	s.writeResponse(conn, s.handleCommand(req))
}

func (s *Server) writeResponse(conn net.Conn, resp *Response) {
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandListWindows:
		return okResponse(s.ctrl.ListWindows())
	case CommandGetLayout:
		return okResponse(s.ctrl.Layout())
	case CommandAddWindow:
		var info wm.WindowInfo
		if resp := decodePayload(req, &info); resp != nil {
			return resp
		}
		return errResponse(s.ctrl.AddWindow(info))
	case CommandRemoveWindow:
		return s.withWindow(req, s.ctrl.RemoveWindow)
	case CommandFocus:
		return s.withWindow(req, s.ctrl.FocusWindow)
	case CommandUnfocus:
		s.ctrl.Unfocus()
		return okResponse(nil)
	case CommandCycleFocus:
		return s.withDirection(req, s.ctrl.CycleFocus)
	case CommandWindowInfo:
		var p WindowPayload
		if resp := decodePayload(req, &p); resp != nil {
			return resp
		}
		info, err := s.ctrl.WindowInfo(p.Window)
		if err != nil {
			return NewErrorResponseFromErr(err)
		}
		return okResponse(info)
	case CommandGetScreen:
		return okResponse(s.ctrl.Screen())
	case CommandResizeScreen:
		var screen wm.Screen
		if resp := decodePayload(req, &screen); resp != nil {
			return resp
		}
		if screen.Width == 0 || screen.Height == 0 {
			return &Response{Status: "ERROR", Error: "screen width and height must be > 0", Code: CodeBadRequest}
		}
		s.ctrl.ResizeScreen(screen)
		return okResponse(nil)
	case CommandSwapMaster:
		return s.withWindow(req, s.ctrl.SwapWithMaster)
	case CommandSwapWindows:
		return s.withDirection(req, s.ctrl.SwapWindows)
	case CommandToggleFloating:
		return s.withWindow(req, s.ctrl.ToggleFloating)
	case CommandSetGeometry:
		var p GeometryPayload
		if resp := decodePayload(req, &p); resp != nil {
			return resp
		}
		return errResponse(s.ctrl.SetWindowGeometry(p.Window, p.Geometry))
	case CommandToggleMinimised:
		return s.withWindow(req, s.ctrl.ToggleMinimised)
	case CommandUnminimiseLast:
		w, ok := s.ctrl.UnminimiseLast()
		return okResponse(UnminimiseData{Window: w, Restored: ok})
	case CommandToggleFullscreen:
		return s.withWindow(req, s.ctrl.ToggleFullscreen)
	case CommandGetStatus:
		status := s.ctrl.Status()
		status.StartedAt = s.startTime
		status.UptimeSeconds = int64(time.Since(s.startTime).Seconds())
		status.DaemonRunning = true
		return okResponse(status)
	case CommandReload:
		log.Println("IPC: Received RELOAD command")
		if err := s.ctrl.Reload(); err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
		}
		log.Println("IPC: Config reloaded successfully")
		return okResponse(nil)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) withWindow(req *Request, fn func(wm.Window) error) *Response {
	var p WindowPayload
	if resp := decodePayload(req, &p); resp != nil {
		return resp
	}
	return errResponse(fn(p.Window))
}

func (s *Server) withDirection(req *Request, fn func(wm.Direction)) *Response {
	p := DirectionPayload{Direction: wm.Next}
	if len(req.Payload) > 0 {
		if resp := decodePayload(req, &p); resp != nil {
			return resp
		}
	}
	fn(p.Direction)
	return okResponse(nil)
}

func decodePayload(req *Request, out any) *Response {
	if len(req.Payload) == 0 {
		return &Response{Status: "ERROR", Error: fmt.Sprintf("%s requires a payload", req.Command), Code: CodeBadRequest}
	}
	if err := json.Unmarshal(req.Payload, out); err != nil {
		return &Response{Status: "ERROR", Error: fmt.Sprintf("Invalid %s payload: %v", req.Command, err), Code: CodeBadRequest}
	}
	return nil
}

func okResponse(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func errResponse(err error) *Response {
	if err != nil {
		return NewErrorResponseFromErr(err)
	}
	return okResponse(nil)
}

// Stop gracefully shuts down the IPC server and waits for in-flight
// connections.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
