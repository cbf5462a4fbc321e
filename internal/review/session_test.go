package review

import (
	"context"
	"errors"
	"testing"

	"menuscan/internal/extraction"
	"menuscan/internal/menuitem"
)

// --------------------------------------------------
// Mocks
// --------------------------------------------------

type mockCorrections struct {
	saved map[string]string
	err   error
}

func (m *mockCorrections) SaveCorrection(ctx context.Context, id, text string) error {
	if m.err != nil {
		return m.err
	}
	if m.saved == nil {
		m.saved = map[string]string{}
	}
	m.saved[id] = text
	return nil
}

type mockValidator struct {
	report  *Report
	calls   int
	entered chan struct{} // closed when Validate is reached
	block   chan struct{} // when set, Validate waits until closed
}

func (m *mockValidator) Validate(ctx context.Context, text string) (*Report, error) {
	m.calls++
	if m.entered != nil {
		close(m.entered)
	}
	if m.block != nil {
		<-m.block
	}
	if m.report == nil {
		return &Report{}, nil
	}
	return m.report, nil
}

type mockMenuRepo struct {
	items []menuitem.MenuItem
	calls int
	block chan struct{}
}

func (m *mockMenuRepo) ListByExtraction(ctx context.Context, extractionID string) ([]menuitem.MenuItem, error) {
	m.calls++
	if m.block != nil {
		<-m.block
	}
	return m.items, nil
}

func (m *mockMenuRepo) Create(ctx context.Context, item menuitem.MenuItem) (string, string, error) {
	return "", "", nil
}
func (m *mockMenuRepo) Update(ctx context.Context, item menuitem.MenuItem) error { return nil }
func (m *mockMenuRepo) Delete(ctx context.Context, id string) error              { return nil }

func newTestSession(corrections *mockCorrections, validator *mockValidator, menuRepo *mockMenuRepo) *Session {
	if corrections == nil {
		corrections = &mockCorrections{}
	}
	if validator == nil {
		validator = &mockValidator{}
	}
	if menuRepo == nil {
		menuRepo = &mockMenuRepo{}
	}
	return NewSession(corrections, validator, menuitem.NewService(menuRepo, "https://cdn.example.com"))
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestOpen_DefaultsToConfidenceTab(t *testing.T) {
	s := newTestSession(nil, nil, nil)

	s.Open(extraction.Extraction{ID: "e1", Text: "Pizza Margherita", AvgConfidence: 92})

	if s.ID() != "e1" {
		t.Fatalf("expected scoped id e1, got %q", s.ID())
	}
	if s.Tab() != TabConfidence {
		t.Errorf("expected default confidence tab, got %s", s.Tab())
	}
	if extraction.TierOf(s.Extraction().AvgConfidence) != extraction.TierMedium {
		t.Error("92 should classify as medium tier")
	}
}

func TestClose_ClearsScope(t *testing.T) {
	s := newTestSession(nil, nil, nil)
	s.Open(extraction.Extraction{ID: "e1"})
	s.Close()

	if s.ID() != "" {
		t.Errorf("closed session should have no scoped id, got %q", s.ID())
	}
	if s.Extraction() != nil {
		t.Error("closed session should expose no extraction")
	}
}

func TestSwitch_IdempotentAndNoSideEffects(t *testing.T) {
	menuRepo := &mockMenuRepo{}
	s := newTestSession(nil, nil, menuRepo)
	s.Open(extraction.Extraction{ID: "e1"})

	for i := 0; i < 3; i++ {
		if err := s.Switch(context.Background(), TabEdit); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if s.Tab() != TabEdit {
		t.Errorf("expected edit tab, got %s", s.Tab())
	}
	if menuRepo.calls != 0 {
		t.Error("switching a non-menu tab must not touch the backend")
	}
}

func TestSwitch_MenuTabReloadsItems(t *testing.T) {
	menuRepo := &mockMenuRepo{items: []menuitem.MenuItem{{ID: "m1", DishName: "Pizza"}}}
	s := newTestSession(nil, nil, menuRepo)
	s.Open(extraction.Extraction{ID: "e1"})

	if err := s.Switch(context.Background(), TabMenu); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if menuRepo.calls != 1 {
		t.Fatalf("expected one menu load, got %d", menuRepo.calls)
	}
	if len(s.MenuItems()) != 1 || s.MenuItems()[0].ID != "m1" {
		t.Fatalf("menu items not adopted: %v", s.MenuItems())
	}
}

func TestSwitch_ClosedSession(t *testing.T) {
	s := newTestSession(nil, nil, nil)
	if err := s.Switch(context.Background(), TabEdit); !errors.Is(err, ErrNoExtraction) {
		t.Fatalf("expected ErrNoExtraction, got %v", err)
	}
}

func TestSaveCorrection(t *testing.T) {
	corrections := &mockCorrections{}
	s := newTestSession(corrections, nil, nil)
	s.Open(extraction.Extraction{ID: "e1", Text: "Pizza Margerita"})

	s.SetText("Pizza Margherita")
	if err := s.SaveCorrection(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if corrections.saved["e1"] != "Pizza Margherita" {
		t.Errorf("correction not sent, saved=%v", corrections.saved)
	}
	ext := s.Extraction()
	if !ext.Corrected || ext.Text != "Pizza Margherita" {
		t.Errorf("session state not updated after save: %+v", ext)
	}
}

func TestSaveCorrection_NoScopedExtraction(t *testing.T) {
	corrections := &mockCorrections{}
	s := newTestSession(corrections, nil, nil)

	err := s.SaveCorrection(context.Background())
	if !errors.Is(err, ErrNoExtraction) {
		t.Fatalf("expected ErrNoExtraction, got %v", err)
	}
	if len(corrections.saved) != 0 {
		t.Fatal("no network call may happen without a scoped extraction")
	}
}

func TestRunValidation_UsesEditedText(t *testing.T) {
	validator := &mockValidator{report: &Report{Sentiment: &Sentiment{Label: "NEUTRAL"}}}
	s := newTestSession(nil, validator, nil)
	s.Open(extraction.Extraction{ID: "e1", Text: "original"})
	s.SetText("edited text")

	report, err := s.RunValidation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Sentiment == nil || report.Sentiment.Label != "NEUTRAL" {
		t.Fatalf("report not returned: %+v", report)
	}
	if s.Tab() != TabValidate {
		t.Errorf("validation should land on the validate tab, got %s", s.Tab())
	}
	if s.Report() != report {
		t.Error("report should be retained on the session")
	}
}

func TestRunValidation_BlankText(t *testing.T) {
	validator := &mockValidator{}
	s := newTestSession(nil, validator, nil)
	s.Open(extraction.Extraction{ID: "e1", Text: "   "})

	if _, err := s.RunValidation(context.Background()); err == nil {
		t.Fatal("expected error for blank text")
	}
	if validator.calls != 0 {
		t.Fatal("blank text must be rejected before any network call")
	}
}

func TestRunValidation_StaleReportDiscarded(t *testing.T) {
	validator := &mockValidator{
		report:  &Report{Sentiment: &Sentiment{Label: "POSITIVE"}},
		entered: make(chan struct{}),
		block:   make(chan struct{}),
	}
	s := newTestSession(nil, validator, nil)
	s.Open(extraction.Extraction{ID: "e1", Text: "menu text"})

	done := make(chan struct{})
	go func() {
		s.RunValidation(context.Background())
		close(done)
	}()

	// A newer action supersedes the in-flight validation.
	<-validator.entered
	s.Open(extraction.Extraction{ID: "e2", Text: "other"})
	close(validator.block)
	<-done

	if s.Report() != nil {
		t.Error("stale report must be discarded, not attached to the new scope")
	}
	if s.ID() != "e2" {
		t.Errorf("scope should remain e2, got %q", s.ID())
	}
}

func TestRunValidation_DiscardedAfterTabSwitch(t *testing.T) {
	validator := &mockValidator{
		report:  &Report{Sentiment: &Sentiment{Label: "POSITIVE"}},
		entered: make(chan struct{}),
		block:   make(chan struct{}),
	}
	s := newTestSession(nil, validator, nil)
	s.Open(extraction.Extraction{ID: "e1", Text: "menu text"})

	done := make(chan struct{})
	go func() {
		s.RunValidation(context.Background())
		close(done)
	}()

	// Switching to any other tab supersedes the in-flight validation.
	<-validator.entered
	if err := s.Switch(context.Background(), TabEdit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(validator.block)
	<-done

	if s.Report() != nil {
		t.Error("report finishing after a tab switch must be discarded")
	}
	if s.Tab() != TabEdit {
		t.Errorf("expected edit tab, got %s", s.Tab())
	}
}

func TestParseTab(t *testing.T) {
	for _, name := range []string{"confidence", "edit", "validate", "menu"} {
		tab, err := ParseTab(name)
		if err != nil {
			t.Fatalf("ParseTab(%q): %v", name, err)
		}
		if tab.String() != name {
			t.Errorf("round trip failed for %q: got %s", name, tab)
		}
	}
	if _, err := ParseTab("bogus"); err == nil {
		t.Error("expected error for unknown tab")
	}
}
