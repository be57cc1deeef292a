package form

import (
	"errors"
	"testing"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

const (
	clientA = 10
	clientB = 20

	wasteW1 = 100
	wasteW2 = 200

	tsCollection = 7
	tsConsulting = 8
)

func seededRefs() References {
	return References{
		Clients: []domain.Client{{ID: clientA, Name: "Acme"}, {ID: clientB, Name: "Beta"}},
		Locations: []domain.Location{
			{ID: 1, Name: "North plant", City: "Quito", ClientIDs: []int64{clientA}},
			{ID: 2, Name: "South plant", City: "Cuenca", ClientIDs: []int64{clientB}},
			{ID: 3, Name: "Shared yard", ClientIDs: []int64{clientA, clientB}},
		},
		Wastes: []domain.Waste{{ID: wasteW1, Name: "Plastic"}, {ID: wasteW2, Name: "Glass"}},
		Subcategories: []domain.WasteSubcategory{
			{ID: 1001, Name: "PET", WasteID: wasteW1},
			{ID: 1002, Name: "HDPE", WasteID: wasteW1},
			{ID: 2001, Name: "Green glass", WasteID: wasteW2},
		},
		TypeServices: []domain.TypeService{
			{ID: tsCollection, Name: "Recolección General"},
			{ID: tsConsulting, Name: "Consulting"},
		},
		Loaded: true,
	}
}

func newAdminResolver() *Resolver {
	return NewResolver(Config{Variant: VariantAdmin}, seededRefs())
}

func locationIDs(ls []domain.Location) []int64 {
	out := make([]int64, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResolver_LocationOptionsFollowClient(t *testing.T) {
	refs := References{
		Clients: []domain.Client{{ID: clientA, Name: "A"}, {ID: clientB, Name: "B"}},
		Locations: []domain.Location{
			{ID: 1, Name: "one", ClientIDs: []int64{clientA}},
			{ID: 2, Name: "two", ClientIDs: []int64{clientB}},
		},
		Loaded: true,
	}
	r := NewResolver(Config{Variant: VariantAdmin}, refs)

	if got := r.LocationOptions(); len(got) != 0 {
		t.Fatalf("expected no options without client, got %v", locationIDs(got))
	}

	if err := r.SelectClient(clientA); err != nil {
		t.Fatalf("select client A: %v", err)
	}
	if got := locationIDs(r.LocationOptions()); !equalIDs(got, []int64{1}) {
		t.Fatalf("client A: expected [1], got %v", got)
	}

	if err := r.SelectClient(clientB); err != nil {
		t.Fatalf("select client B: %v", err)
	}
	if got := locationIDs(r.LocationOptions()); !equalIDs(got, []int64{2}) {
		t.Fatalf("client B: expected [2], got %v", got)
	}

	if err := r.SelectClient(0); err != nil {
		t.Fatalf("clear client: %v", err)
	}
	if got := r.LocationOptions(); len(got) != 0 {
		t.Fatalf("expected no options after clearing client, got %v", locationIDs(got))
	}
}

func TestResolver_ClientChangeClearsForeignLocation(t *testing.T) {
	r := newAdminResolver()
	_ = r.SelectClient(clientA)
	if err := r.SelectLocation(1); err != nil {
		t.Fatalf("select location: %v", err)
	}

	_ = r.SelectClient(clientB)
	if r.Selection().Location != 0 {
		t.Fatalf("expected location cleared, got %d", r.Selection().Location)
	}
}

func TestResolver_ClientChangeKeepsSharedLocation(t *testing.T) {
	r := newAdminResolver()
	_ = r.SelectClient(clientA)
	if err := r.SelectLocation(3); err != nil {
		t.Fatalf("select location: %v", err)
	}

	_ = r.SelectClient(clientB)
	if r.Selection().Location != 3 {
		t.Fatalf("expected shared location kept, got %d", r.Selection().Location)
	}
}

func TestResolver_SelectLocationRejectsForeignOrDisabled(t *testing.T) {
	r := newAdminResolver()

	if err := r.SelectLocation(1); !errors.Is(err, ErrFieldDisabled) {
		t.Fatalf("expected ErrFieldDisabled without client, got %v", err)
	}

	_ = r.SelectClient(clientA)
	if err := r.SelectLocation(2); !errors.Is(err, ErrOptionUnavailable) {
		t.Fatalf("expected ErrOptionUnavailable, got %v", err)
	}
	if r.Selection().Location != 0 {
		t.Fatalf("rejected selection must not stick")
	}
}

func TestResolver_LocationDisabledUntilLoaded(t *testing.T) {
	refs := seededRefs()
	refs.Loaded = false
	r := NewResolver(Config{Variant: VariantClient, LockClient: true, Client: clientA}, refs)

	if got := r.LocationOptions(); len(got) != 0 {
		t.Fatalf("expected no options before load, got %v", locationIDs(got))
	}
	st := r.State()
	if st.Fields[FieldLocation].Enabled {
		t.Fatalf("location must be disabled before references load")
	}
}

func TestResolver_WasteChangeClearsSubcategory(t *testing.T) {
	r := newAdminResolver()
	_ = r.SelectTypeService(tsCollection)
	if err := r.SelectWaste(wasteW1); err != nil {
		t.Fatalf("select waste: %v", err)
	}
	if err := r.SelectSubcategory(1001); err != nil {
		t.Fatalf("select subcategory: %v", err)
	}

	if err := r.SelectWaste(wasteW2); err != nil {
		t.Fatalf("change waste: %v", err)
	}
	if r.Selection().Subcategory != 0 {
		t.Fatalf("expected subcategory cleared, got %d", r.Selection().Subcategory)
	}

	var ids []int64
	for _, s := range r.SubcategoryOptions() {
		ids = append(ids, s.ID)
	}
	if !equalIDs(ids, []int64{2001}) {
		t.Fatalf("expected subcategories of W2, got %v", ids)
	}
}

func TestResolver_SubcategoryDisabledWithoutWaste(t *testing.T) {
	r := newAdminResolver()
	_ = r.SelectTypeService(tsCollection)

	if err := r.SelectSubcategory(1001); !errors.Is(err, ErrFieldDisabled) {
		t.Fatalf("expected ErrFieldDisabled, got %v", err)
	}
	st := r.State()
	if st.Fields[FieldSubcategory].Enabled {
		t.Fatalf("subcategory must be disabled without waste")
	}
	if st.Fields[FieldSubcategory].Hint == "" {
		t.Fatalf("expected hint on subcategory")
	}
}

func TestResolver_NonCollectionClearsWaste(t *testing.T) {
	r := newAdminResolver()
	_ = r.SelectTypeService(tsCollection)
	_ = r.SelectWaste(wasteW1)
	_ = r.SelectSubcategory(1002)

	if err := r.SelectTypeService(tsConsulting); err != nil {
		t.Fatalf("select consulting: %v", err)
	}
	sel := r.Selection()
	if sel.Waste != 0 || sel.Subcategory != 0 {
		t.Fatalf("expected waste fields cleared, got %+v", sel)
	}
	if err := r.SelectWaste(wasteW1); !errors.Is(err, ErrFieldDisabled) {
		t.Fatalf("expected waste disabled for consulting, got %v", err)
	}
	if r.State().Fields[FieldWaste].Visible {
		t.Fatalf("waste must be hidden for consulting")
	}
}

func TestIsWasteCollection(t *testing.T) {
	cases := map[string]bool{
		"Recolección General":   true,
		"waste pickup":          true,
		"General":               true,
		"RECOLECCION semanal":   true,
		"Retiro de residuos":    true,
		"Bulk Collection":       true,
		"Consulting":            false,
		"Auditoría ambiental":   false,
		"":                      false,
	}
	for name, want := range cases {
		if got := IsWasteCollection(name); got != want {
			t.Errorf("IsWasteCollection(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestResolver_ClientVariantLocksClient(t *testing.T) {
	sess := domain.Session{ID: 5, Token: "t", Role: domain.RoleClient, RoleProfile: &domain.RoleProfile{ID: clientB}}
	r := NewResolver(ConfigFor(VariantClient, sess), seededRefs())

	if r.Selection().Client != clientB {
		t.Fatalf("expected client pre-filled from session, got %d", r.Selection().Client)
	}
	if err := r.SelectClient(clientA); !errors.Is(err, ErrFieldLocked) {
		t.Fatalf("expected ErrFieldLocked, got %v", err)
	}
	if got := locationIDs(r.LocationOptions()); !equalIDs(got, []int64{2, 3}) {
		t.Fatalf("expected client B locations, got %v", got)
	}
	if r.State().Fields[FieldClient].Visible {
		t.Fatalf("client selector must be hidden")
	}
}

func TestResolver_ApplyCoercesIDs(t *testing.T) {
	r := newAdminResolver()
	if err := r.Apply(FieldClient, " 10 "); err != nil {
		t.Fatalf("apply client: %v", err)
	}
	if err := r.Apply(FieldLocation, "1"); err != nil {
		t.Fatalf("apply location: %v", err)
	}
	if err := r.Apply(FieldWaste, "abc"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if err := r.Apply(Field("colour"), "1"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := r.Apply(FieldScheduledDate, "2026-13-01"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for date, got %v", err)
	}
	sel := r.Selection()
	if sel.Client != clientA || sel.Location != 1 {
		t.Fatalf("unexpected selection %+v", sel)
	}
}

func TestResolver_RestoreDropsInconsistentValues(t *testing.T) {
	r := newAdminResolver()
	r.Restore(Selection{
		Client:        clientA,
		Location:      2, // belongs to client B
		TypeService:   tsConsulting,
		Waste:         wasteW1,
		Subcategory:   1001,
		ScheduledDate: "2026-11-02",
	})

	sel := r.Selection()
	if sel.Client != clientA || sel.Location != 0 {
		t.Fatalf("expected foreign location dropped, got %+v", sel)
	}
	if sel.Waste != 0 || sel.Subcategory != 0 {
		t.Fatalf("expected waste dropped for consulting, got %+v", sel)
	}
	if sel.ScheduledDate != "2026-11-02" {
		t.Fatalf("expected date kept, got %q", sel.ScheduledDate)
	}
}

func TestResolver_Validate(t *testing.T) {
	r := newAdminResolver()
	fe := r.Validate()
	for _, f := range []Field{FieldClient, FieldLocation, FieldTypeService, FieldScheduledDate} {
		if _, ok := fe[string(f)]; !ok {
			t.Errorf("expected error for %s", f)
		}
	}

	_ = r.SelectClient(clientA)
	_ = r.SelectLocation(1)
	_ = r.SelectTypeService(tsCollection)
	_ = r.SetScheduledDate("2026-11-02")
	fe = r.Validate()
	if len(fe) != 1 || fe[string(FieldWaste)] == "" {
		t.Fatalf("expected only waste error, got %v", fe)
	}

	_ = r.SelectTypeService(tsConsulting)
	if fe := r.Validate(); fe != nil {
		t.Fatalf("expected valid consulting form, got %v", fe)
	}
}

func TestResolver_RecurringRequiresFrequency(t *testing.T) {
	r := NewResolver(ConfigFor(VariantRecurring, domain.Session{ID: 1, Token: "t", Role: domain.RoleAdmin}), seededRefs())
	_ = r.SelectClient(clientA)
	_ = r.SelectLocation(1)
	_ = r.SelectTypeService(tsConsulting)
	_ = r.SetScheduledDate("2026-11-02")

	if fe := r.Validate(); fe[string(FieldFrequency)] == "" {
		t.Fatalf("expected frequency error, got %v", fe)
	}
	if err := r.SetFrequency("hourly"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if err := r.SetFrequency(domain.FrequencyWeekly); err != nil {
		t.Fatalf("set frequency: %v", err)
	}
	p, err := r.RecurringPayload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.Frequency != domain.FrequencyWeekly || p.Client != clientA {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestResolver_FrequencyDisabledOutsideRecurring(t *testing.T) {
	r := newAdminResolver()
	if err := r.SetFrequency(domain.FrequencyDaily); !errors.Is(err, ErrFieldDisabled) {
		t.Fatalf("expected ErrFieldDisabled, got %v", err)
	}
}
