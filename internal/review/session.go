package review

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"menuscan/internal/extraction"
	"menuscan/internal/menuitem"
)

// ErrNoExtraction is returned when an action needs a scoped extraction and
// the session is closed. No network call is made in that case.
var ErrNoExtraction = errors.New("no extraction is open")

type Tab int

const (
	TabConfidence Tab = iota
	TabEdit
	TabValidate
	TabMenu
)

func (t Tab) String() string {
	switch t {
	case TabConfidence:
		return "confidence"
	case TabEdit:
		return "edit"
	case TabValidate:
		return "validate"
	case TabMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// ParseTab maps a tab name to its identifier.
func ParseTab(name string) (Tab, error) {
	switch name {
	case "confidence":
		return TabConfidence, nil
	case "edit":
		return TabEdit, nil
	case "validate":
		return TabValidate, nil
	case "menu":
		return TabMenu, nil
	default:
		return 0, fmt.Errorf("unknown tab %q", name)
	}
}

type Repository interface {
	SaveCorrection(ctx context.Context, id, text string) error
}

type Validator interface {
	Validate(ctx context.Context, text string) (*Report, error)
}

// Session is the review overlay: scoped to exactly one extraction, or
// closed. Opening, closing, and switching tabs bump a generation counter;
// an in-flight request finishing under a stale generation is discarded
// instead of overwriting newer state.
type Session struct {
	mu sync.Mutex

	repo      Repository
	validator Validator
	menu      *menuitem.Service

	ext  *extraction.Extraction
	tab  Tab
	gen  uint64
	text string // working copy for the edit tab

	menuItems []menuitem.MenuItem
	report    *Report
}

func NewSession(repo Repository, validator Validator, menu *menuitem.Service) *Session {
	return &Session{repo: repo, validator: validator, menu: menu}
}

// Open scopes the session to one extraction and defaults to the
// confidence tab. Any previous scope is replaced.
func (s *Session) Open(ext extraction.Extraction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ext = &ext
	s.tab = TabConfidence
	s.text = ext.Text
	s.menuItems = nil
	s.report = nil
	s.gen++
}

// Close clears the scoped extraction. No extraction is implicitly active
// afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ext = nil
	s.menuItems = nil
	s.report = nil
	s.gen++
}

// ID returns the scoped extraction id, empty when closed.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ext == nil {
		return ""
	}
	return s.ext.ID
}

func (s *Session) Tab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

func (s *Session) Extraction() *extraction.Extraction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ext == nil {
		return nil
	}
	clone := *s.ext
	return &clone
}

// Switch selects a tab and supersedes any in-flight load or validation.
// The menu tab additionally reloads the scoped extraction's menu items.
func (s *Session) Switch(ctx context.Context, tab Tab) error {
	s.mu.Lock()
	if s.ext == nil {
		s.mu.Unlock()
		return ErrNoExtraction
	}
	s.tab = tab
	s.gen++
	if tab != TabMenu {
		s.mu.Unlock()
		return nil
	}
	gen := s.gen
	id := s.ext.ID
	s.mu.Unlock()

	items, err := s.menu.List(ctx, id)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		log.Printf("[review] discarding stale menu load for extraction=%s", id)
		return nil
	}
	s.menuItems = items
	return nil
}

func (s *Session) MenuItems() []menuitem.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menuItems
}

// SetText updates the edit tab's working copy.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// Text returns the current (possibly edited) text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// SaveCorrection persists the working text as the extraction's new text.
// With no scoped extraction it fails locally, before any network call.
func (s *Session) SaveCorrection(ctx context.Context) error {
	s.mu.Lock()
	if s.ext == nil {
		s.mu.Unlock()
		return ErrNoExtraction
	}
	id := s.ext.ID
	text := s.text
	s.mu.Unlock()

	if err := s.repo.SaveCorrection(ctx, id, text); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ext != nil && s.ext.ID == id {
		s.ext.Text = text
		s.ext.Corrected = true
	}
	log.Printf("[review] saved correction id=%s chars=%d", id, len(text))
	return nil
}

// RunValidation sends the current text to the NLP validation endpoint and
// keeps the report, unless the session moved on meanwhile.
func (s *Session) RunValidation(ctx context.Context) (*Report, error) {
	s.mu.Lock()
	if s.ext == nil {
		s.mu.Unlock()
		return nil, ErrNoExtraction
	}
	text := s.text
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		return nil, errors.New("no text to validate")
	}
	s.tab = TabValidate
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	report, err := s.validator.Validate(ctx, text)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		log.Printf("[review] discarding stale validation report")
		return report, nil
	}
	s.report = report
	return report, nil
}

func (s *Session) Report() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}
