package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

// MPVOptions configures the mpv process.
type MPVOptions struct {
	// Command is the mpv binary, "mpv" when empty.
	Command string
	// Socket is the IPC socket path; a temp path is used when empty.
	Socket string
	// DialTimeout bounds how long to wait for the socket to appear.
	DialTimeout time.Duration
}

// MPV controls an mpv process over its JSON IPC socket.
type MPV struct {
	conn   net.Conn
	proc   *exec.Cmd
	socket string

	writeMu sync.Mutex
	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan mpvReply
	lastSec int

	events    chan Event
	done      chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

type mpvReply struct {
	data json.RawMessage
	err  error
}

type mpvMessage struct {
	RequestID *int64          `json:"request_id,omitempty"`
	Error     string          `json:"error,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Event     string          `json:"event,omitempty"`
	Name      string          `json:"name,omitempty"`
}

type mpvCommand struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// StartMPV launches mpv in idle mode and connects to its IPC socket.
func StartMPV(ctx context.Context, opts MPVOptions) (*MPV, error) {
	command := opts.Command
	if command == "" {
		command = "mpv"
	}
	if _, err := exec.LookPath(command); err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", command, err)
	}
	socket := opts.Socket
	if socket == "" {
		socket = filepath.Join(os.TempDir(), fmt.Sprintf("tuivoca-mpv-%d.sock", os.Getpid()))
	}
	_ = os.Remove(socket)
	timeout := opts.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cmd := exec.Command(command,
		"--idle=yes",
		"--force-window=yes",
		"--no-terminal",
		"--keep-open=yes",
		"--input-ipc-server="+socket,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", command, err)
	}

	conn, err := dialSocket(ctx, socket, timeout)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	m, err := newMPV(ctx, conn)
	if err != nil {
		_ = conn.Close()
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	m.proc = cmd
	m.socket = socket
	return m, nil
}

func dialSocket(ctx context.Context, socket string, timeout time.Duration) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "unix", socket)
		if err == nil {
			return conn, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to connect to mpv socket %s: %w", socket, err)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// newMPV wraps an established IPC connection and subscribes to the
// properties the playback view needs.
func newMPV(ctx context.Context, conn net.Conn) (*MPV, error) {
	loopCtx, cancel := context.WithCancel(context.Background())
	m := &MPV{
		conn:    conn,
		pending: map[int64]chan mpvReply{},
		lastSec: -1,
		events:  make(chan Event, eventBuffer),
		done:    make(chan struct{}),
		ctx:     loopCtx,
		cancel:  cancel,
	}
	go m.readLoop()
	for i, name := range []string{"time-pos", "pause", "eof-reached"} {
		if _, err := m.command(ctx, "observe_property", i+1, name); err != nil {
			m.shutdown()
			return nil, fmt.Errorf("failed to observe %s: %w", name, err)
		}
	}
	return m, nil
}

// Events returns the notification stream.
func (m *MPV) Events() <-chan Event {
	return m.events
}

// Load opens a video paused at the start.
func (m *MPV) Load(ctx context.Context, videoID string) error {
	if _, err := m.command(ctx, "set_property", "pause", true); err != nil {
		return err
	}
	m.mu.Lock()
	m.lastSec = -1
	m.mu.Unlock()
	if _, err := m.command(ctx, "loadfile", WatchURL(videoID), "replace"); err != nil {
		return fmt.Errorf("failed to load video %s: %w", videoID, err)
	}
	return nil
}

// Seek jumps to an absolute position.
func (m *MPV) Seek(ctx context.Context, seconds int) error {
	if seconds < 0 {
		seconds = 0
	}
	if _, err := m.command(ctx, "seek", seconds, "absolute"); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	return nil
}

// Play resumes playback.
func (m *MPV) Play(ctx context.Context) error {
	_, err := m.command(ctx, "set_property", "pause", false)
	return err
}

// Pause pauses playback.
func (m *MPV) Pause(ctx context.Context) error {
	_, err := m.command(ctx, "set_property", "pause", true)
	return err
}

// CurrentTime returns the playback position in whole seconds.
func (m *MPV) CurrentTime(ctx context.Context) (int, error) {
	data, err := m.command(ctx, "get_property", "time-pos")
	if err != nil {
		return 0, err
	}
	var pos float64
	if err := json.Unmarshal(data, &pos); err != nil {
		return 0, fmt.Errorf("failed to decode time-pos: %w", err)
	}
	return floorSeconds(pos), nil
}

// Close quits mpv and closes the event stream.
func (m *MPV) Close() error {
	select {
	case <-m.done:
	default:
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_, _ = m.command(ctx, "quit")
		cancel()
	}
	m.shutdown()
	if m.proc != nil {
		done := make(chan struct{})
		go func() {
			_ = m.proc.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			_ = m.proc.Process.Kill()
			<-done
		}
	}
	if m.socket != "" {
		_ = os.Remove(m.socket)
	}
	return nil
}

func (m *MPV) shutdown() {
	m.closeOnce.Do(func() {
		m.cancel()
		_ = m.conn.Close()
		<-m.done
	})
}

func (m *MPV) command(ctx context.Context, args ...any) (json.RawMessage, error) {
	m.mu.Lock()
	select {
	case <-m.done:
		m.mu.Unlock()
		return nil, ErrClosed
	default:
	}
	m.nextID++
	id := m.nextID
	reply := make(chan mpvReply, 1)
	m.pending[id] = reply
	m.mu.Unlock()

	line, err := json.Marshal(mpvCommand{Command: args, RequestID: id})
	if err != nil {
		m.forget(id)
		return nil, fmt.Errorf("failed to encode mpv command: %w", err)
	}
	m.writeMu.Lock()
	_, err = m.conn.Write(append(line, '\n'))
	m.writeMu.Unlock()
	if err != nil {
		m.forget(id)
		return nil, fmt.Errorf("failed to write mpv command: %w", err)
	}

	select {
	case r := <-reply:
		return r.data, r.err
	case <-ctx.Done():
		m.forget(id)
		return nil, ctx.Err()
	case <-m.done:
		return nil, ErrClosed
	}
}

func (m *MPV) forget(id int64) {
	m.mu.Lock()
	delete(m.pending, id)
	m.mu.Unlock()
}

func (m *MPV) readLoop() {
	defer func() {
		m.mu.Lock()
		for id, ch := range m.pending {
			ch <- mpvReply{err: ErrClosed}
			delete(m.pending, id)
		}
		close(m.done)
		m.mu.Unlock()
		close(m.events)
	}()

	scanner := bufio.NewScanner(m.conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var msg mpvMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}
		if msg.Event == "" {
			m.resolve(msg)
			continue
		}
		m.dispatch(msg)
	}
}

func (m *MPV) resolve(msg mpvMessage) {
	if msg.RequestID == nil {
		return
	}
	m.mu.Lock()
	ch, ok := m.pending[*msg.RequestID]
	delete(m.pending, *msg.RequestID)
	m.mu.Unlock()
	if !ok {
		return
	}
	r := mpvReply{data: msg.Data}
	if msg.Error != "" && msg.Error != "success" {
		r.err = fmt.Errorf("mpv: %s", msg.Error)
	}
	ch <- r
}

func (m *MPV) dispatch(msg mpvMessage) {
	switch msg.Event {
	case "file-loaded":
		emit(m.ctx, m.events, Event{Kind: Ready})
	case "property-change":
		switch msg.Name {
		case "time-pos":
			var pos float64
			if json.Unmarshal(msg.Data, &pos) != nil {
				return
			}
			sec := floorSeconds(pos)
			m.mu.Lock()
			changed := sec != m.lastSec
			m.lastSec = sec
			m.mu.Unlock()
			if changed {
				emit(m.ctx, m.events, Event{Kind: Time, Seconds: sec})
			}
		case "pause":
			var paused bool
			if json.Unmarshal(msg.Data, &paused) != nil {
				return
			}
			if paused {
				emit(m.ctx, m.events, Event{Kind: Paused})
			} else {
				emit(m.ctx, m.events, Event{Kind: Playing})
			}
		case "eof-reached":
			var eof bool
			if json.Unmarshal(msg.Data, &eof) == nil && eof {
				emit(m.ctx, m.events, Event{Kind: Ended})
			}
		}
	}
}

func floorSeconds(pos float64) int {
	if pos <= 0 || math.IsNaN(pos) {
		return 0
	}
	return int(math.Floor(pos))
}
