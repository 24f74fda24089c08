package bridge

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// SocketListener accepts intervention lines from the native host over a
// unix socket. Each line is an event kind; unknown kinds are logged and
// dropped.
type SocketListener struct {
	ln  net.Listener
	src *ChanSource
	log *zap.Logger
}

// ListenSocket binds path and starts feeding src. A stale socket file from
// a previous run is removed first.
func ListenSocket(path string, src *ChanSource, log *zap.Logger) (*SocketListener, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", path, err)
	}

	l := &SocketListener{ln: ln, src: src, log: log}
	go l.acceptLoop()
	return l, nil
}

func (l *SocketListener) acceptLoop() {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			return
		}
		go l.serve(conn)
	}
}

func (l *SocketListener) serve(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := l.src.Emit(line); err != nil {
			l.log.Warn("dropped bridge line", zap.String("line", line), zap.Error(err))
		}
	}
}

// Close stops accepting and removes the socket file.
func (l *SocketListener) Close() error {
	return l.ln.Close()
}

// FileRateSampler reads an input-frequency figure the native host writes to
// path. A missing file samples as zero so an idle host stays quiet.
func FileRateSampler(path string) SampleFunc {
	return func() (float64, error) {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		if err != nil {
			return 0, fmt.Errorf("read rate file: %w", err)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
		if err != nil {
			return 0, fmt.Errorf("parse rate file: %w", err)
		}
		return rate, nil
	}
}
