package form

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

const dateLayout = "2006-01-02"

// Selection is the current value of every form control. Zero IDs mean unset.
type Selection struct {
	Client        int64            `json:"client"`
	Location      int64            `json:"location"`
	TypeService   int64            `json:"type_service"`
	Waste         int64            `json:"waste"`
	Subcategory   int64            `json:"waste_subcategory"`
	ScheduledDate string           `json:"scheduled_date"`
	Frequency     domain.Frequency `json:"frequency,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// Option is one choice offered by a select control.
type Option struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// FieldState tells the view how to render a control.
type FieldState struct {
	Visible  bool     `json:"visible"`
	Enabled  bool     `json:"enabled"`
	Required bool     `json:"required"`
	Options  []Option `json:"options,omitempty"`
	Hint     string   `json:"hint,omitempty"`
}

// State is a snapshot of the form after the rules have been applied.
type State struct {
	Variant         Variant              `json:"variant"`
	Loaded          bool                 `json:"loaded"`
	WasteCollection bool                 `json:"waste_collection"`
	Selection       Selection            `json:"selection"`
	Fields          map[Field]FieldState `json:"fields"`
}

// Resolver enforces the selection dependencies of a service form.
// It is not safe for concurrent use; each form session owns one.
type Resolver struct {
	cfg  Config
	refs References
	sel  Selection
}

// NewResolver starts an empty form, with the client pre-filled when the
// config locks it.
func NewResolver(cfg Config, refs References) *Resolver {
	r := &Resolver{cfg: cfg, refs: refs}
	if cfg.LockClient {
		r.sel.Client = cfg.Client
	}
	return r
}

// Config returns the configuration the resolver was built with.
func (r *Resolver) Config() Config { return r.cfg }

// Selection returns the current selection.
func (r *Resolver) Selection() Selection { return r.sel }

// Restore replays a previously resolved selection through the rules,
// dropping anything that is no longer consistent with the references.
func (r *Resolver) Restore(sel Selection) {
	if !r.cfg.LockClient {
		_ = r.SelectClient(sel.Client)
	}
	_ = r.SelectLocation(sel.Location)
	_ = r.SelectTypeService(sel.TypeService)
	_ = r.SelectWaste(sel.Waste)
	_ = r.SelectSubcategory(sel.Subcategory)
	_ = r.SetScheduledDate(sel.ScheduledDate)
	_ = r.SetFrequency(sel.Frequency)
	r.SetNotes(sel.Notes)
}

// SelectClient changes the client. The location survives only if it also
// serves the new client.
func (r *Resolver) SelectClient(id int64) error {
	if r.cfg.LockClient {
		if id == r.sel.Client {
			return nil
		}
		return fmt.Errorf("%s: %w", FieldClient, ErrFieldLocked)
	}
	if id != 0 && r.client(id) == nil {
		return fmt.Errorf("%s %d: %w", FieldClient, id, ErrOptionUnavailable)
	}

	r.sel.Client = id
	if loc := r.location(r.sel.Location); loc == nil || !loc.ServesClient(id) {
		r.sel.Location = 0
	}
	return nil
}

// SelectLocation picks one of the locations serving the selected client.
func (r *Resolver) SelectLocation(id int64) error {
	if id == 0 {
		r.sel.Location = 0
		return nil
	}
	if !r.locationEnabled() {
		return fmt.Errorf("%s: %w", FieldLocation, ErrFieldDisabled)
	}
	loc := r.location(id)
	if loc == nil || !loc.ServesClient(r.sel.Client) {
		return fmt.Errorf("%s %d: %w", FieldLocation, id, ErrOptionUnavailable)
	}
	r.sel.Location = id
	return nil
}

// SelectTypeService changes the type of service. Switching to a service that
// is not a waste collection clears waste and subcategory.
func (r *Resolver) SelectTypeService(id int64) error {
	if id != 0 && r.typeService(id) == nil {
		return fmt.Errorf("%s %d: %w", FieldTypeService, id, ErrOptionUnavailable)
	}
	r.sel.TypeService = id
	if !r.WasteCollection() {
		r.sel.Waste = 0
		r.sel.Subcategory = 0
	}
	return nil
}

// SelectWaste changes the waste type. The subcategory survives only if it
// belongs to the new waste.
func (r *Resolver) SelectWaste(id int64) error {
	if id == 0 {
		r.sel.Waste = 0
		r.sel.Subcategory = 0
		return nil
	}
	if !r.refs.Loaded || !r.WasteCollection() {
		return fmt.Errorf("%s: %w", FieldWaste, ErrFieldDisabled)
	}
	if r.waste(id) == nil {
		return fmt.Errorf("%s %d: %w", FieldWaste, id, ErrOptionUnavailable)
	}

	r.sel.Waste = id
	if sub := r.subcategory(r.sel.Subcategory); sub == nil || sub.WasteID != id {
		r.sel.Subcategory = 0
	}
	return nil
}

// SelectSubcategory picks one of the subcategories of the selected waste.
func (r *Resolver) SelectSubcategory(id int64) error {
	if id == 0 {
		r.sel.Subcategory = 0
		return nil
	}
	if r.sel.Waste == 0 {
		return fmt.Errorf("%s: %w", FieldSubcategory, ErrFieldDisabled)
	}
	sub := r.subcategory(id)
	if sub == nil || sub.WasteID != r.sel.Waste {
		return fmt.Errorf("%s %d: %w", FieldSubcategory, id, ErrOptionUnavailable)
	}
	r.sel.Subcategory = id
	return nil
}

// SetScheduledDate accepts an ISO date (YYYY-MM-DD) or "" to unset.
func (r *Resolver) SetScheduledDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		r.sel.ScheduledDate = ""
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("%s %q: %w", FieldScheduledDate, s, ErrInvalidValue)
	}
	r.sel.ScheduledDate = s
	return nil
}

// SetFrequency sets the cadence of a recurring schedule.
func (r *Resolver) SetFrequency(f domain.Frequency) error {
	if f == "" {
		r.sel.Frequency = ""
		return nil
	}
	if !r.cfg.RequireFrequency {
		return fmt.Errorf("%s: %w", FieldFrequency, ErrFieldDisabled)
	}
	if !f.Valid() {
		return fmt.Errorf("%s %q: %w", FieldFrequency, f, ErrInvalidValue)
	}
	r.sel.Frequency = f
	return nil
}

// SetNotes sets the free-text notes.
func (r *Resolver) SetNotes(s string) {
	r.sel.Notes = strings.TrimSpace(s)
}

// Apply sets a field from its raw textual value. IDs are coerced to integers;
// an empty value unsets the field.
func (r *Resolver) Apply(field Field, value string) error {
	switch field {
	case FieldScheduledDate:
		return r.SetScheduledDate(value)
	case FieldFrequency:
		return r.SetFrequency(domain.Frequency(strings.TrimSpace(value)))
	case FieldNotes:
		r.SetNotes(value)
		return nil
	}

	id, err := parseID(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	switch field {
	case FieldClient:
		return r.SelectClient(id)
	case FieldLocation:
		return r.SelectLocation(id)
	case FieldTypeService:
		return r.SelectTypeService(id)
	case FieldWaste:
		return r.SelectWaste(id)
	case FieldSubcategory:
		return r.SelectSubcategory(id)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func parseID(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidValue)
	}
	return id, nil
}

// WasteCollection reports whether the selected type service asks for waste details.
func (r *Resolver) WasteCollection() bool {
	ts := r.typeService(r.sel.TypeService)
	return ts != nil && IsWasteCollection(ts.Name)
}

// LocationOptions are the locations serving the selected client, in reference order.
func (r *Resolver) LocationOptions() []domain.Location {
	if !r.locationEnabled() {
		return nil
	}
	var out []domain.Location
	for _, l := range r.refs.Locations {
		if l.ServesClient(r.sel.Client) {
			out = append(out, l)
		}
	}
	return out
}

// SubcategoryOptions are the subcategories of the selected waste.
func (r *Resolver) SubcategoryOptions() []domain.WasteSubcategory {
	if r.sel.Waste == 0 {
		return nil
	}
	var out []domain.WasteSubcategory
	for _, s := range r.refs.Subcategories {
		if s.WasteID == r.sel.Waste {
			out = append(out, s)
		}
	}
	return out
}

func (r *Resolver) locationEnabled() bool {
	return r.refs.Loaded && r.sel.Client != 0
}

// State renders the form for the view.
func (r *Resolver) State() State {
	waste := r.WasteCollection()
	loaded := r.refs.Loaded

	fields := map[Field]FieldState{
		FieldClient: {
			Visible:  !r.cfg.LockClient,
			Enabled:  loaded && !r.cfg.LockClient,
			Required: true,
		},
		FieldLocation: {
			Visible:  true,
			Enabled:  r.locationEnabled(),
			Required: true,
		},
		FieldTypeService: {
			Visible:  true,
			Enabled:  loaded,
			Required: true,
		},
		FieldWaste: {
			Visible:  waste,
			Enabled:  loaded && waste,
			Required: waste,
		},
		FieldSubcategory: {
			Visible: waste,
			Enabled: waste && r.sel.Waste != 0,
		},
		FieldScheduledDate: {Visible: true, Enabled: true, Required: true},
		FieldNotes:         {Visible: true, Enabled: true},
	}
	if r.cfg.RequireFrequency {
		fields[FieldFrequency] = FieldState{
			Visible:  true,
			Enabled:  true,
			Required: true,
			Options: []Option{
				{Label: string(domain.FrequencyDaily)},
				{Label: string(domain.FrequencyWeekly)},
				{Label: string(domain.FrequencyBiweekly)},
				{Label: string(domain.FrequencyMonthly)},
			},
		}
	}

	if loaded {
		setOptions(fields, FieldClient, clientOptions(r.refs.Clients))
		setOptions(fields, FieldTypeService, typeServiceOptions(r.refs.TypeServices))
		if waste {
			setOptions(fields, FieldWaste, wasteOptions(r.refs.Wastes))
		}
	}
	setOptions(fields, FieldLocation, locationOptions(r.LocationOptions()))
	setOptions(fields, FieldSubcategory, subcategoryOptions(r.SubcategoryOptions()))

	if r.sel.Client == 0 {
		setHint(fields, FieldLocation, "select a client first")
	}
	if waste && r.sel.Waste == 0 {
		setHint(fields, FieldSubcategory, "select a waste first")
	}

	return State{
		Variant:         r.cfg.Variant,
		Loaded:          loaded,
		WasteCollection: waste,
		Selection:       r.sel,
		Fields:          fields,
	}
}

// Validate applies the submission guard: client, location, type service and
// date are always required, and waste is required for collection services.
func (r *Resolver) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.sel.Client == 0 {
		fe[string(FieldClient)] = "client is required"
	}
	if r.sel.Location == 0 {
		fe[string(FieldLocation)] = "location is required"
	}
	if r.sel.TypeService == 0 {
		fe[string(FieldTypeService)] = "type of service is required"
	}
	if r.sel.ScheduledDate == "" {
		fe[string(FieldScheduledDate)] = "scheduled date is required"
	}
	if r.WasteCollection() && r.sel.Waste == 0 {
		fe[string(FieldWaste)] = "waste is required for collection services"
	}
	if r.cfg.RequireFrequency && r.sel.Frequency == "" {
		fe[string(FieldFrequency)] = "frequency is required"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Payload builds the request body for a one-off service. Waste fields are
// only included for collection services, and the subcategory only when set.
func (r *Resolver) Payload() (domain.ServicePayload, error) {
	if fe := r.Validate(); fe != nil {
		return domain.ServicePayload{}, fe
	}
	p := domain.ServicePayload{
		Client:        r.sel.Client,
		Location:      r.sel.Location,
		TypeService:   r.sel.TypeService,
		ScheduledDate: r.sel.ScheduledDate,
		Notes:         r.sel.Notes,
	}
	if r.WasteCollection() {
		waste := r.sel.Waste
		p.Waste = &waste
		if r.sel.Subcategory != 0 {
			sub := r.sel.Subcategory
			p.WasteSubcategory = &sub
		}
	}
	return p, nil
}

// RecurringPayload builds the request body for a recurring schedule.
func (r *Resolver) RecurringPayload() (domain.RecurringServicePayload, error) {
	p, err := r.Payload()
	if err != nil {
		return domain.RecurringServicePayload{}, err
	}
	return domain.RecurringServicePayload{ServicePayload: p, Frequency: r.sel.Frequency}, nil
}

// --- reference lookups ---

func (r *Resolver) client(id int64) *domain.Client {
	for i := range r.refs.Clients {
		if r.refs.Clients[i].ID == id {
			return &r.refs.Clients[i]
		}
	}
	return nil
}

func (r *Resolver) location(id int64) *domain.Location {
	if id == 0 {
		return nil
	}
	for i := range r.refs.Locations {
		if r.refs.Locations[i].ID == id {
			return &r.refs.Locations[i]
		}
	}
	return nil
}

func (r *Resolver) typeService(id int64) *domain.TypeService {
	if id == 0 {
		return nil
	}
	for i := range r.refs.TypeServices {
		if r.refs.TypeServices[i].ID == id {
			return &r.refs.TypeServices[i]
		}
	}
	return nil
}

func (r *Resolver) waste(id int64) *domain.Waste {
	for i := range r.refs.Wastes {
		if r.refs.Wastes[i].ID == id {
			return &r.refs.Wastes[i]
		}
	}
	return nil
}

func (r *Resolver) subcategory(id int64) *domain.WasteSubcategory {
	if id == 0 {
		return nil
	}
	for i := range r.refs.Subcategories {
		if r.refs.Subcategories[i].ID == id {
			return &r.refs.Subcategories[i]
		}
	}
	return nil
}

// --- option rendering ---

func setOptions(fields map[Field]FieldState, f Field, opts []Option) {
	fs := fields[f]
	fs.Options = opts
	fields[f] = fs
}

func setHint(fields map[Field]FieldState, f Field, hint string) {
	fs := fields[f]
	fs.Hint = hint
	fields[f] = fs
}

func clientOptions(in []domain.Client) []Option {
	out := make([]Option, 0, len(in))
	for _, c := range in {
		out = append(out, Option{ID: c.ID, Label: c.Name})
	}
	return out
}

func locationOptions(in []domain.Location) []Option {
	out := make([]Option, 0, len(in))
	for _, l := range in {
		label := l.Name
		if l.City != "" {
			label += " (" + l.City + ")"
		}
		out = append(out, Option{ID: l.ID, Label: label})
	}
	return out
}

func typeServiceOptions(in []domain.TypeService) []Option {
	out := make([]Option, 0, len(in))
	for _, t := range in {
		out = append(out, Option{ID: t.ID, Label: t.Name})
	}
	return out
}

func wasteOptions(in []domain.Waste) []Option {
	out := make([]Option, 0, len(in))
	for _, w := range in {
		out = append(out, Option{ID: w.ID, Label: w.Name})
	}
	return out
}

func subcategoryOptions(in []domain.WasteSubcategory) []Option {
	out := make([]Option, 0, len(in))
	for _, s := range in {
		out = append(out, Option{ID: s.ID, Label: s.Name})
	}
	return out
}
