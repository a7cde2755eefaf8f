package router

import (
	"testing"

	"github.com/verte-zerg/agroscan/internal/model"
)

func TestActivateEachPage(t *testing.T) {
	r := New("")
	for i, page := range model.Pages() {
		refresh := r.Activate(page.String())
		if r.Active() != page {
			t.Fatalf("expected active page %s, got %s", page, r.Active())
		}
		if r.IndicatorIndex() != i {
			t.Fatalf("expected indicator %d for %s, got %d", i, page, r.IndicatorIndex())
		}
		if wantRefresh := page == model.PageDashboard; refresh != wantRefresh {
			t.Fatalf("unexpected dashboard refresh %v for %s", refresh, page)
		}
		if r.Fragment() != "#"+page.String() {
			t.Fatalf("unexpected fragment %q", r.Fragment())
		}
	}
}

func TestActivateUnknownKeepsPrevious(t *testing.T) {
	r := New("#gallery")
	if r.Active() != model.PageGallery {
		t.Fatalf("expected gallery from fragment, got %s", r.Active())
	}
	if r.Activate("settings") {
		t.Fatalf("unknown page must not trigger a refresh")
	}
	if r.Active() != model.PageGallery {
		t.Fatalf("unknown page must keep previous view, got %s", r.Active())
	}
}

func TestNewDefaultsToHome(t *testing.T) {
	for _, fragment := range []string{"", "#", "#nope", "nope"} {
		if got := New(fragment).Active(); got != model.PageHome {
			t.Fatalf("fragment %q: expected home, got %s", fragment, got)
		}
	}
}

func TestNewAcceptsBareKeyword(t *testing.T) {
	if got := New("dashboard").Active(); got != model.PageDashboard {
		t.Fatalf("expected dashboard, got %s", got)
	}
}
