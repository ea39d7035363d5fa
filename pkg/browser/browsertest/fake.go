// Package browsertest provides an in-memory browser.Session for tests.
package browsertest

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/systemstart/icomoon-cli/pkg/browser"
)

// Call records one session method invocation.
type Call struct {
	Action string
	Target string
	Args   []string
}

func (c Call) String() string {
	s := c.Action
	if c.Target != "" {
		s += " " + c.Target
	}
	if len(c.Args) > 0 {
		s += " " + strings.Join(c.Args, ",")
	}
	return s
}

// namesPattern finds the names literal of a glyph rename script.
var namesPattern = regexp.MustCompile(`const names = (\[.*?\]);`)

// Session is a cooperative fake: every selector is visible, every action
// succeeds, unless configured otherwise. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	// Hidden selectors never become visible.
	Hidden map[string]bool

	// Glyphs are the generated glyph names in app order. A rename script
	// overwrites them by index.
	Glyphs []string

	// OnClick runs after a successful click on the selector.
	OnClick map[string]func() error

	faults  map[string]error
	calls   []Call
	closes  int
	config  browser.Config
	opened  int
	openErr error
}

func New() *Session {
	return &Session{
		Hidden:  make(map[string]bool),
		OnClick: make(map[string]func() error),
		faults:  make(map[string]error),
	}
}

// FailOn makes the action on target return err, e.g. FailOn("click", ".btn4", err).
func (s *Session) FailOn(action, target string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[action+" "+target] = err
}

// FailOpen makes the factory fail.
func (s *Session) FailOpen(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openErr = err
}

// Factory returns a browser.Factory that hands out this session.
func (s *Session) Factory() browser.Factory {
	return func(_ context.Context, cfg browser.Config) (browser.Session, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.openErr != nil {
			return nil, s.openErr
		}
		s.opened++
		s.config = cfg
		return s, nil
	}
}

func (s *Session) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Actions returns the calls as strings, skipping visibility checks.
func (s *Session) Actions() []string {
	var out []string
	for _, c := range s.Calls() {
		if c.Action == "visible" {
			continue
		}
		out = append(out, c.String())
	}
	return out
}

// Count returns how often action was called.
func (s *Session) Count(action string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Action == action {
			n++
		}
	}
	return n
}

func (s *Session) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

func (s *Session) Opened() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

// Config returns the configuration of the last opened session.
func (s *Session) Config() browser.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

func (s *Session) GlyphNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Glyphs...)
}

func (s *Session) record(action, target string, args ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Action: action, Target: target, Args: args})
	if err := s.faults[action+" "+target]; err != nil {
		return &browser.ActionError{Action: action, Target: target, Err: err}
	}
	return nil
}

func (s *Session) Navigate(_ context.Context, url string) error {
	return s.record("navigate", url)
}

func (s *Session) Visible(_ context.Context, selector string) (bool, error) {
	if err := s.record("visible", selector); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.Hidden[selector], nil
}

func (s *Session) Click(_ context.Context, selector string) error {
	if err := s.record("click", selector); err != nil {
		return err
	}
	s.mu.Lock()
	hook := s.OnClick[selector]
	s.mu.Unlock()
	if hook != nil {
		return hook()
	}
	return nil
}

func (s *Session) SetFiles(_ context.Context, selector string, paths ...string) error {
	return s.record("set-files", selector, paths...)
}

// Evaluate applies a glyph rename script to Glyphs. Other scripts are
// only recorded.
func (s *Session) Evaluate(_ context.Context, script string, out any) error {
	if err := s.record("evaluate", ""); err != nil {
		return err
	}

	m := namesPattern.FindStringSubmatch(script)
	if m == nil {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(m[1]), &names); err != nil {
		return &browser.ActionError{Action: "evaluate", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, name := range names {
		if i >= len(s.Glyphs) {
			return &browser.ActionError{Action: "evaluate", Err: fmt.Errorf("TypeError: selection[%d] is undefined", i)}
		}
		s.Glyphs[i] = name
	}
	if n, ok := out.(*int); ok {
		*n = len(names)
	}
	return nil
}

func (s *Session) Send(_ context.Context, method string, params any) error {
	var args []string
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return err
		}
		args = append(args, string(data))
	}
	return s.record("send", method, args...)
}

func (s *Session) AwaitPageLoad(context.Context) error {
	return s.record("await-load", "")
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return s.faults["close "]
}
