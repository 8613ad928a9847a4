// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blog is a concrete backend behind the github.com/btcsuite/btclog
// interface: a *blog.Subsystem is a tagged btclog.Logger. No other package
// in this module creates a Subsystem; the script machine and the validation
// pipeline do not log. It is adapted from the teacher's pktlog/log, trimmed to a
// single backend (no per-subsystem color helpers for coins/addresses/IPs,
// which don't apply to a consensus library) and wired through btclog.Logger
// instead of package-level functions.
package blog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/btcsuite/btclog"

	"github.com/libbitcoin-go/core/internal/er"
)

// Level is an alias of btclog.Level, re-exported so callers configuring this
// backend don't need to import btclog directly for SetLevel/SetLevels.
type Level = btclog.Level

const (
	LevelTrace    = btclog.LevelTrace
	LevelDebug    = btclog.LevelDebug
	LevelInfo     = btclog.LevelInfo
	LevelWarn     = btclog.LevelWarn
	LevelError    = btclog.LevelError
	LevelCritical = btclog.LevelCritical
	LevelOff      = btclog.LevelOff
)

// LevelFromString returns a level based on the input string s. If the input
// can't be interpreted as a valid log level, LevelInfo and false are
// returned.
func LevelFromString(s string) (l Level, ok bool) {
	switch strings.ToLower(s) {
	case "trace", "trc":
		return LevelTrace, true
	case "debug", "dbg":
		return LevelDebug, true
	case "info", "inf":
		return LevelInfo, true
	case "warn", "wrn":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	case "critical", "crt":
		return LevelCritical, true
	case "off":
		return LevelOff, true
	default:
		return LevelInfo, false
	}
}

// backend serializes writes from every Subsystem to a single io.Writer.
// Subsystems created by the same backend share one lock and one output
// stream, the way the teacher's pktlog backend does.
type backend struct {
	w    io.Writer
	lock sync.Mutex
	lvl  Level
	lmap map[string]Level
}

func newBackend(w io.Writer) *backend {
	return &backend{w: w, lvl: LevelInfo, lmap: make(map[string]Level)}
}

var b = newBackend(os.Stdout)

// SetLevel sets the backend-wide filter level; subsystem-specific overrides
// set with SetLevels still apply on top of it.
func SetLevel(lvl Level) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.lvl = lvl
}

// SetLevels parses a debug-level spec of either a single level name
// ("debug") or a comma-separated subsystem=level list ("SCRIPT=trace,
// VALIDATE=info"), matching the teacher's SetLogLevels grammar.
func SetLevels(spec string) er.R {
	if !strings.Contains(spec, ",") && !strings.Contains(spec, "=") {
		lvl, ok := LevelFromString(spec)
		if !ok {
			return er.Errorf("invalid debug level %q", spec)
		}
		SetLevel(lvl)
		return nil
	}
	m := make(map[string]Level)
	for _, pair := range strings.Split(spec, ",") {
		fields := strings.SplitN(pair, "=", 2)
		if len(fields) != 2 {
			return er.Errorf("invalid subsystem/level pair %q", pair)
		}
		lvl, ok := LevelFromString(fields[1])
		if !ok {
			return er.Errorf("invalid debug level %q", fields[1])
		}
		m[strings.ToUpper(fields[0])] = lvl
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.lmap = m
	return nil
}

// Subsystem is a tagged btclog.Logger writing through the package's shared
// backend, one per package the way the teacher wires log.Disabled/log.Tagged
// instances in each package's log.go.
type Subsystem struct {
	tag string
}

// NewSubsystem returns a Subsystem tagged with the given short subsystem
// name (conventionally an all-caps abbreviation: "SCRT", "VALD", "MACH").
func NewSubsystem(tag string) *Subsystem {
	return &Subsystem{tag: tag}
}

func (s *Subsystem) level() Level {
	b.lock.Lock()
	defer b.lock.Unlock()
	if lvl, ok := b.lmap[s.tag]; ok {
		return lvl
	}
	return b.lvl
}

func (s *Subsystem) write(lvl Level, msg string) {
	if lvl < s.level() {
		return
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s [%s] %s: %s\n", time.Now().Format("2006-01-02 15:04:05.000"), lvl, s.tag, msg)
	b.lock.Lock()
	defer b.lock.Unlock()
	b.w.Write(buf.Bytes())
}

func (s *Subsystem) Tracef(format string, params ...interface{})    { s.write(LevelTrace, fmt.Sprintf(format, params...)) }
func (s *Subsystem) Debugf(format string, params ...interface{})    { s.write(LevelDebug, fmt.Sprintf(format, params...)) }
func (s *Subsystem) Infof(format string, params ...interface{})     { s.write(LevelInfo, fmt.Sprintf(format, params...)) }
func (s *Subsystem) Warnf(format string, params ...interface{})     { s.write(LevelWarn, fmt.Sprintf(format, params...)) }
func (s *Subsystem) Errorf(format string, params ...interface{})    { s.write(LevelError, fmt.Sprintf(format, params...)) }
func (s *Subsystem) Criticalf(format string, params ...interface{}) { s.write(LevelCritical, fmt.Sprintf(format, params...)) }

func (s *Subsystem) Trace(v ...interface{})    { s.write(LevelTrace, fmt.Sprint(v...)) }
func (s *Subsystem) Debug(v ...interface{})    { s.write(LevelDebug, fmt.Sprint(v...)) }
func (s *Subsystem) Info(v ...interface{})     { s.write(LevelInfo, fmt.Sprint(v...)) }
func (s *Subsystem) Warn(v ...interface{})     { s.write(LevelWarn, fmt.Sprint(v...)) }
func (s *Subsystem) Error(v ...interface{})    { s.write(LevelError, fmt.Sprint(v...)) }
func (s *Subsystem) Critical(v ...interface{}) { s.write(LevelCritical, fmt.Sprint(v...)) }

func (s *Subsystem) Level() Level     { return s.level() }
func (s *Subsystem) SetLevel(lvl Level) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.lmap == nil {
		b.lmap = make(map[string]Level)
	}
	b.lmap[s.tag] = lvl
}

var _ btclog.Logger = (*Subsystem)(nil)

// Closure defers an expensive log message's construction until the level
// check passes, matching the teacher's log.C helper.
type Closure func() string

func (c Closure) String() string { return c() }

// C wraps fn as a fmt.Stringer for use as a Tracef/Debugf argument.
func C(fn func() string) Closure { return Closure(fn) }
