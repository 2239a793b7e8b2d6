package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("got limit=%d offset=%d, want %d/0", p.Limit, p.Offset, DefaultLimit)
	}
}

func TestFromContext_Clamped(t *testing.T) {
	p := paramsFor(t, "limit=5000&offset=40")
	if p.Limit != MaxLimit {
		t.Errorf("limit = %d, want clamped to %d", p.Limit, MaxLimit)
	}
	if p.Offset != 40 {
		t.Errorf("offset = %d, want 40", p.Offset)
	}
}

func TestFromContext_Invalid(t *testing.T) {
	p := paramsFor(t, "limit=abc&offset=-3")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("got limit=%d offset=%d, want defaults", p.Limit, p.Offset)
	}
}

func TestParams_SQL(t *testing.T) {
	p := Params{Limit: 10, Offset: 30}
	if got := p.SQL(); got != "LIMIT 10 OFFSET 30" {
		t.Errorf("SQL() = %q", got)
	}
}

func TestParams_Navigation(t *testing.T) {
	p := Params{Limit: 10, Offset: 20}
	if !p.HasNext(100) {
		t.Error("expected next page at offset 20 of 100")
	}
	if p.HasNext(25) {
		t.Error("no next page at offset 20 of 25")
	}
	if !p.HasPrevious() || p.PreviousOffset() != 10 {
		t.Errorf("previous offset = %d, want 10", p.PreviousOffset())
	}
	if p.NextOffset() != 30 {
		t.Errorf("next offset = %d, want 30", p.NextOffset())
	}

	first := Params{Limit: 10, Offset: 5}
	if first.PreviousOffset() != 0 {
		t.Errorf("previous offset = %d, want 0", first.PreviousOffset())
	}
}

func TestNewResponse(t *testing.T) {
	r := NewResponse([]int{1, 2, 3}, 50, 3, 0)
	if !r.HasMore {
		t.Error("expected has_more for partial page")
	}
	r = NewResponse([]int{1}, 1, 20, 0)
	if r.HasMore {
		t.Error("single full result set must not report has_more")
	}
}
