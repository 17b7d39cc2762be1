package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aznadocs/docsuneed/internal/model"
)

// Store is the sole owner of the service tree and the checked-state map.
// Every mutation goes through it, and the tree invariant (every section
// belongs to exactly one service, every item to exactly one section)
// holds before and after each call.
//
// Reads hand out deep copies, so callers can never alias the live tree:
// editing one section is never observable through a sibling.
//
// The Store is not safe for concurrent use. The process is driven by a
// single event loop and mutation and persistence run in sequence on the
// same goroutine.
type Store struct {
	services []model.Service
	checked  model.CheckedState

	persistTree    func([]model.Service) error
	persistChecked func(model.CheckedState) error
	log            zerolog.Logger
}

// SectionData carries the editable fields of a section. Edits replace
// all of them unconditionally; there is no partial-update semantics.
type SectionData struct {
	Title       string
	Description string
	Hint        model.DisplayHint
}

// ItemData carries the fields of a new item.
type ItemData struct {
	Name        string
	Mandatory   bool
	OfflineOnly bool
}

// Option configures a Store during construction in New.
type Option func(*Store)

// WithTreePersist installs the hook invoked after every accepted tree
// mutation. Persistence is best effort: hook errors are logged and
// swallowed, never returned to the mutating caller.
func WithTreePersist(fn func([]model.Service) error) Option {
	return func(s *Store) { s.persistTree = fn }
}

// WithCheckedPersist installs the hook invoked after every toggle. Tree
// saves are never triggered by toggles; the checked map lives apart from
// the tree record.
func WithCheckedPersist(fn func(model.CheckedState) error) Option {
	return func(s *Store) { s.persistChecked = fn }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New builds a Store over an already-loaded tree and checked map. Both
// may be nil. The Store takes ownership of the passed values.
func New(services []model.Service, checked model.CheckedState, opts ...Option) *Store {
	s := &Store{
		services: services,
		checked:  checked,
		log:      zerolog.Nop(),
	}
	if s.checked == nil {
		s.checked = model.CheckedState{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ---------------------------------------------------
// Reads
// ---------------------------------------------------

// Services returns a deep copy of the full tree, in display order.
func (s *Store) Services() []model.Service {
	return model.CloneServices(s.services)
}

// Service returns a deep copy of one service, if present.
func (s *Store) Service(id string) (model.Service, bool) {
	for i := range s.services {
		if s.services[i].ID == id {
			return s.services[i].Clone(), true
		}
	}
	return model.Service{}, false
}

// Checked returns a copy of the checked-state map.
func (s *Store) Checked() model.CheckedState {
	return s.checked.Clone()
}

// IsChecked reports whether an item has been ticked off. Unknown ids
// read as false.
func (s *Store) IsChecked(itemID string) bool {
	return s.checked[itemID]
}

// ---------------------------------------------------
// Service CRUD
// ---------------------------------------------------

// AddService appends a new service and returns its id so the caller can
// select it. An empty icon falls back to the default.
func (s *Store) AddService(name, icon string) (string, error) {
	name, err := requiredText("service name", name)
	if err != nil {
		return "", err
	}
	svc := model.Service{
		ID:       newID("svc"),
		Name:     name,
		Icon:     model.ParseIcon(icon),
		Sections: []model.Section{},
	}
	s.services = append(s.services, svc)
	s.treeChanged("add service")
	return svc.ID, nil
}

// EditService replaces the name and icon of an existing service, keeping
// its id and sections. A missing id is a silent no-op: the tree can
// change between opening an edit form and submitting it, and stale
// submissions must land as "nothing happened".
func (s *Store) EditService(id, name, icon string) error {
	name, err := requiredText("service name", name)
	if err != nil {
		return err
	}
	for i := range s.services {
		if s.services[i].ID != id {
			continue
		}
		s.services[i].Name = name
		s.services[i].Icon = model.ParseIcon(icon)
		s.treeChanged("edit service")
		return nil
	}
	return nil
}

// DeleteService removes a service with all its sections and items.
// Deleting an absent id is a no-op, so the call is idempotent. Checked
// entries for the discarded items stay behind as tolerated orphans.
func (s *Store) DeleteService(id string) {
	for i := range s.services {
		if s.services[i].ID != id {
			continue
		}
		s.services = append(s.services[:i], s.services[i+1:]...)
		s.treeChanged("delete service")
		return
	}
}

// ---------------------------------------------------
// Section CRUD
// ---------------------------------------------------

// AddSection appends an empty section to a service and returns the new
// id, or "" when the parent service does not exist.
func (s *Store) AddSection(serviceID string, data SectionData) (string, error) {
	title, err := requiredText("section title", data.Title)
	if err != nil {
		return "", err
	}
	svc := s.findService(serviceID)
	if svc == nil {
		return "", nil
	}
	sec := model.Section{
		ID:          newID("sec"),
		Title:       title,
		Description: strings.TrimSpace(data.Description),
		Hint:        data.Hint,
		Items:       []model.Item{},
	}
	svc.Sections = append(svc.Sections, sec)
	s.treeChanged("add section")
	return sec.ID, nil
}

// EditSection replaces a section's title, description and display hint,
// keeping its id and items. Missing ids are silent no-ops.
func (s *Store) EditSection(serviceID, sectionID string, data SectionData) error {
	title, err := requiredText("section title", data.Title)
	if err != nil {
		return err
	}
	sec := s.findSection(serviceID, sectionID)
	if sec == nil {
		return nil
	}
	sec.Title = title
	sec.Description = strings.TrimSpace(data.Description)
	sec.Hint = data.Hint
	s.treeChanged("edit section")
	return nil
}

// DeleteSection removes a section and its items. Idempotent.
func (s *Store) DeleteSection(serviceID, sectionID string) {
	svc := s.findService(serviceID)
	if svc == nil {
		return
	}
	for i := range svc.Sections {
		if svc.Sections[i].ID != sectionID {
			continue
		}
		svc.Sections = append(svc.Sections[:i], svc.Sections[i+1:]...)
		s.treeChanged("delete section")
		return
	}
}

// ---------------------------------------------------
// Item CRUD
// ---------------------------------------------------

// AddItem appends an item to a section and returns the new id, or ""
// when either parent is missing. Items always land at the tail; the
// existing order is untouched.
func (s *Store) AddItem(serviceID, sectionID string, data ItemData) (string, error) {
	name, err := requiredText("item name", data.Name)
	if err != nil {
		return "", err
	}
	sec := s.findSection(serviceID, sectionID)
	if sec == nil {
		return "", nil
	}
	it := model.Item{
		ID:          newID("item"),
		Name:        name,
		Mandatory:   data.Mandatory,
		OfflineOnly: data.OfflineOnly,
	}
	sec.Items = append(sec.Items, it)
	s.treeChanged("add item")
	return it.ID, nil
}

// DeleteItem removes one item. Idempotent; its checked entry survives
// as an orphan.
func (s *Store) DeleteItem(serviceID, sectionID, itemID string) {
	sec := s.findSection(serviceID, sectionID)
	if sec == nil {
		return
	}
	for i := range sec.Items {
		if sec.Items[i].ID != itemID {
			continue
		}
		sec.Items = append(sec.Items[:i], sec.Items[i+1:]...)
		s.treeChanged("delete item")
		return
	}
}

// ---------------------------------------------------
// Checked state
// ---------------------------------------------------

// ToggleItem flips the checked flag for an item id and returns the new
// value. The id is deliberately not validated against the tree: toggling
// an unknown id just parks an unused entry in the map. Toggles never
// trigger a tree save.
func (s *Store) ToggleItem(itemID string) bool {
	s.checked[itemID] = !s.checked[itemID]
	if s.persistChecked != nil {
		if err := s.persistChecked(s.checked); err != nil {
			s.log.Warn().Err(err).Msg("persist checked state")
		}
	}
	return s.checked[itemID]
}

// ---------------------------------------------------
// internals
// ---------------------------------------------------

func (s *Store) findService(id string) *model.Service {
	for i := range s.services {
		if s.services[i].ID == id {
			return &s.services[i]
		}
	}
	return nil
}

func (s *Store) findSection(serviceID, sectionID string) *model.Section {
	svc := s.findService(serviceID)
	if svc == nil {
		return nil
	}
	for i := range svc.Sections {
		if svc.Sections[i].ID == sectionID {
			return &svc.Sections[i]
		}
	}
	return nil
}

func (s *Store) treeChanged(op string) {
	if s.persistTree == nil {
		return
	}
	if err := s.persistTree(s.services); err != nil {
		s.log.Warn().Err(err).Str("op", op).Msg("persist tree")
	}
}

func requiredText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &model.ValidationError{Field: field}
	}
	return value, nil
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
