package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/form"
)

type stubReferenceLoader struct {
	refs form.References
	err  error
}

func (s *stubReferenceLoader) Load(context.Context) (form.References, error) {
	return s.refs, s.err
}

type stubServiceAPI struct {
	created   []domain.ServicePayload
	recurring []domain.RecurringServicePayload
	err       error
}

func (s *stubServiceAPI) CreateService(_ context.Context, p domain.ServicePayload) (*domain.Service, error) {
	s.created = append(s.created, p)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Service{ID: 100, Status: "pending", ScheduledDate: p.ScheduledDate}, nil
}

func (s *stubServiceAPI) CreateRecurringService(_ context.Context, p domain.RecurringServicePayload) (*domain.Service, error) {
	s.recurring = append(s.recurring, p)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Service{ID: 200}, nil
}

func (s *stubServiceAPI) RecurringAction(context.Context, int64, domain.RecurringAction) (json.RawMessage, error) {
	return json.RawMessage(`{}`), s.err
}

func testReferences() form.References {
	return form.References{
		Clients: []domain.Client{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex"}},
		Locations: []domain.Location{
			{ID: 10, Name: "Acme plant", ClientIDs: []int64{1}},
			{ID: 20, Name: "Globex yard", ClientIDs: []int64{2}},
		},
		Wastes:        []domain.Waste{{ID: 5, Name: "Plastic"}, {ID: 6, Name: "Metal"}},
		Subcategories: []domain.WasteSubcategory{{ID: 50, Name: "PET", WasteID: 5}, {ID: 60, Name: "Steel", WasteID: 6}},
		TypeServices:  []domain.TypeService{{ID: 3, Name: "Recolección General"}, {ID: 4, Name: "Consulting"}},
		Loaded:        true,
	}
}

var (
	adminSession  = domain.Session{ID: 1, Token: "t", Role: domain.RoleAdmin}
	clientSession = domain.Session{ID: 2, Token: "t", Role: domain.RoleClient, RoleProfile: &domain.RoleProfile{ID: 2}}
)

func formRequest(method, variant, body string, s domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := newEcho()
	req := httptest.NewRequest(method, "/forms/"+variant, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("variant")
	c.SetParamValues(variant)
	c.Set("session", s)
	c.Set("role", s.Role)
	return c, rec
}

func decodeForm(t *testing.T, rec *httptest.ResponseRecorder) formResponse {
	t.Helper()
	var resp formResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestFormHandler_Get_InitialState(t *testing.T) {
	h := NewFormHandler(&stubReferenceLoader{refs: testReferences()}, &stubServiceAPI{})

	c, rec := formRequest(http.MethodGet, "admin", "", adminSession)
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeForm(t, rec)
	if !resp.State.Loaded || resp.State.Variant != form.VariantAdmin {
		t.Fatalf("unexpected state %+v", resp.State)
	}
	if loc := resp.State.Fields[form.FieldLocation]; len(loc.Options) != 0 || loc.Hint == "" {
		t.Fatalf("expected no location options before a client is chosen, got %+v", loc)
	}
}

func TestFormHandler_Get_ForbiddenVariant(t *testing.T) {
	h := NewFormHandler(&stubReferenceLoader{refs: testReferences()}, &stubServiceAPI{})

	c, _ := formRequest(http.MethodGet, "admin", "", clientSession)
	if err := h.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	c, _ = formRequest(http.MethodGet, "nope", "", adminSession)
	if err := h.Get(c); !errors.Is(err, form.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestFormHandler_Resolve_FiltersLocationsByClient(t *testing.T) {
	h := NewFormHandler(&stubReferenceLoader{refs: testReferences()}, &stubServiceAPI{})

	c, rec := formRequest(http.MethodPost, "admin", `{"selection":{},"field":"client","value":"2"}`, adminSession)
	if err := h.Resolve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeForm(t, rec)
	if resp.State.Selection.Client != 2 {
		t.Fatalf("expected client 2, got %+v", resp.State.Selection)
	}
	opts := resp.State.Fields[form.FieldLocation].Options
	if len(opts) != 1 || opts[0].ID != 20 {
		t.Fatalf("expected only location 20, got %+v", opts)
	}
}

func TestFormHandler_Resolve_ClearsForeignLocation(t *testing.T) {
	h := NewFormHandler(&stubReferenceLoader{refs: testReferences()}, &stubServiceAPI{})

	body := `{"selection":{"client":1,"location":"10"},"field":"client","value":2}`
	c, rec := formRequest(http.MethodPost, "admin", body, adminSession)
	if err := h.Resolve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	sel := decodeForm(t, rec).State.Selection
	if sel.Client != 2 || sel.Location != 0 {
		t.Fatalf("expected location cleared on client change, got %+v", sel)
	}
}

func TestFormHandler_Resolve_RejectedChangeIsANotice(t *testing.T) {
	h := NewFormHandler(&stubReferenceLoader{refs: testReferences()}, &stubServiceAPI{})

	c, rec := formRequest(http.MethodPost, "client", `{"selection":{},"field":"client","value":"1"}`, clientSession)
	if err := h.Resolve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeForm(t, rec)
	if rec.Code != http.StatusOK || resp.Notice == "" {
		t.Fatalf("expected a notice for a locked field, got %d %+v", rec.Code, resp)
	}
	if resp.State.Selection.Client != 2 {
		t.Fatalf("locked client must stay pre-filled, got %+v", resp.State.Selection)
	}
}

func TestFormHandler_Resolve_UnknownField(t *testing.T) {
	h := NewFormHandler(&stubReferenceLoader{refs: testReferences()}, &stubServiceAPI{})

	c, rec := formRequest(http.MethodPost, "admin", `{"selection":{},"field":"colour","value":"1"}`, adminSession)
	_ = h.Resolve(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFormHandler_Submit_BlocksIncompleteWasteCollection(t *testing.T) {
	api := &stubServiceAPI{}
	h := NewFormHandler(&stubReferenceLoader{refs: testReferences()}, api)

	body := `{"client":1,"location":10,"type_service":3,"scheduled_date":"2030-01-15"}`
	c, _ := formRequest(http.MethodPost, "admin", body, adminSession)
	err := h.Submit(c)

	var fe form.FieldErrors
	if !errors.As(err, &fe) || fe["waste"] == "" {
		t.Fatalf("expected waste field error, got %v", err)
	}
	if len(api.created) != 0 {
		t.Fatalf("no network call expected, got %d", len(api.created))
	}
}

func TestFormHandler_Submit_CreatesOnce(t *testing.T) {
	api := &stubServiceAPI{}
	h := NewFormHandler(&stubReferenceLoader{refs: testReferences()}, api)

	body := `{"client":"1","location":"10","type_service":"3","waste":"5","waste_subcategory":"","scheduled_date":"2030-01-15"}`
	c, rec := formRequest(http.MethodPost, "admin", body, adminSession)
	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(api.created) != 1 {
		t.Fatalf("expected exactly one call, got %d", len(api.created))
	}
	p := api.created[0]
	if p.Client != 1 || p.Location != 10 || p.TypeService != 3 || p.Waste == nil || *p.Waste != 5 {
		t.Fatalf("unexpected payload %+v", p)
	}
	if p.WasteSubcategory != nil {
		t.Fatalf("expected subcategory omitted")
	}

	var resp submitResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Service == nil || resp.Service.ID != 100 || resp.Redirect != "/admin/services" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestFormHandler_Submit_ClientVariantUsesOwnClient(t *testing.T) {
	api := &stubServiceAPI{}
	h := NewFormHandler(&stubReferenceLoader{refs: testReferences()}, api)

	body := `{"client":1,"location":20,"type_service":4,"scheduled_date":"2030-01-15"}`
	c, _ := formRequest(http.MethodPost, "client", body, clientSession)
	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(api.created) != 1 || api.created[0].Client != 2 || api.created[0].Waste != nil {
		t.Fatalf("expected client 2 without waste, got %+v", api.created)
	}
}

func TestFormHandler_Submit_Recurring(t *testing.T) {
	api := &stubServiceAPI{}
	h := NewFormHandler(&stubReferenceLoader{refs: testReferences()}, api)

	body := `{"client":1,"location":10,"type_service":4,"scheduled_date":"2030-01-15","frequency":"weekly"}`
	c, _ := formRequest(http.MethodPost, "recurring", body, adminSession)
	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(api.recurring) != 1 || api.recurring[0].Frequency != domain.FrequencyWeekly {
		t.Fatalf("expected one recurring call, got %+v", api.recurring)
	}
}

func TestFormHandler_Submit_ReferenceFailure(t *testing.T) {
	boom := &domain.RemoteError{Kind: domain.KindNetwork}
	api := &stubServiceAPI{}
	h := NewFormHandler(&stubReferenceLoader{err: boom}, api)

	c, _ := formRequest(http.MethodPost, "admin", `{}`, adminSession)
	if err := h.Submit(c); !errors.Is(err, boom) {
		t.Fatalf("expected reference error, got %v", err)
	}
	if len(api.created) != 0 {
		t.Fatalf("no network call expected")
	}
}

func TestFlexID(t *testing.T) {
	var sel selectionRequest
	if err := json.Unmarshal([]byte(`{"client":"7","location":8,"waste":null,"type_service":""}`), &sel); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sel.Client != 7 || sel.Location != 8 || sel.Waste != 0 || sel.TypeService != 0 {
		t.Fatalf("unexpected selection %+v", sel)
	}
	if err := json.Unmarshal([]byte(`{"client":"seven"}`), &sel); err == nil {
		t.Fatalf("expected error for non-numeric id")
	}
	if err := json.Unmarshal([]byte(`{"client":-1}`), &sel); err == nil {
		t.Fatalf("expected error for negative id")
	}
}
