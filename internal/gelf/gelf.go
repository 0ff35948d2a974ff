package gelf

import (
	"encoding/json"
	"net"
	"os"
	"strings"
	"time"
)

// Writer sends GELF messages over UDP. It implements io.Writer with a
// no-op Sync so it can serve as a secondary zap sink alongside stdout.
type Writer struct {
	conn     net.Conn
	hostname string
}

// New creates a GELF UDP writer connected to addr (e.g. "172.17.0.1:12201").
func New(addr string) (*Writer, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "onboarding-server"
	}

	return &Writer{conn: conn, hostname: hostname}, nil
}

// Write sends one GELF message per log line. zap's JSON encoder emits
// one object per line; its msg and level are lifted into the GELF
// envelope and the full line rides along as full_message.
func (w *Writer) Write(p []byte) (int, error) {
	var entry struct {
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}
	json.Unmarshal(p, &entry)

	level := 6 // Informational
	switch entry.Level {
	case "error", "fatal", "panic":
		level = 3
	case "warn":
		level = 4
	}

	short := entry.Msg
	if short == "" {
		short = strings.TrimRight(string(p), "\n")
	}

	msg := map[string]any{
		"version":       "1.1",
		"host":          w.hostname,
		"short_message": short,
		"full_message":  strings.TrimRight(string(p), "\n"),
		"timestamp":     float64(time.Now().UnixNano()) / 1e9,
		"level":         level,
		"_service":      "onboarding",
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return len(p), nil
	}
	w.conn.Write(data)
	return len(p), nil
}

func (w *Writer) Sync() error {
	return nil
}

func (w *Writer) Close() error {
	return w.conn.Close()
}
