package doctor

import (
	"slices"
	"strings"
	"sync"

	"github.com/thoreinstein/mongo-toolkit/internal/errors"
)

// Category groups related issues.
type Category struct {
	ID     string   `json:"id" yaml:"id"`
	Title  string   `json:"title" yaml:"title"`
	Issues []*Issue `json:"issues" yaml:"issues"`
}

// Registry is the catalog of issues, grouped by category in registration
// order. It is populated at startup and frozen before use; a frozen
// registry is safe for concurrent reads.
type Registry struct {
	mu         sync.RWMutex
	categories []*Category
	byCategory map[string]*Category
	issues     []*Issue
	byID       map[string]*Issue
	frozen     bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byCategory: make(map[string]*Category),
		byID:       make(map[string]*Issue),
	}
}

// AddCategory declares a category. Issues can only be registered into
// declared categories.
func (r *Registry) AddCategory(id, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Mark(errors.Newf("registry is frozen; cannot add category %q", id), errors.ErrConfig)
	}
	if id == "" || strings.Contains(id, ":") {
		return errors.Mark(errors.Newf("invalid category id %q", id), errors.ErrConfig)
	}
	if _, exists := r.byCategory[id]; exists {
		return errors.Mark(errors.Newf("duplicate category %q", id), errors.ErrConfig)
	}

	c := &Category{ID: id, Title: title}
	r.categories = append(r.categories, c)
	r.byCategory[id] = c
	return nil
}

// Register adds issue to its category. It fails with errors.ErrConfig when
// the id is already taken, the category is unknown, the id is not
// namespaced by its category, or the descriptor is otherwise malformed.
func (r *Registry) Register(issue *Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := validateIssue(issue); err != nil {
		return err
	}
	if r.frozen {
		return errors.Mark(errors.Newf("registry is frozen; cannot register %q", issue.ID), errors.ErrConfig)
	}
	if _, exists := r.byID[issue.ID]; exists {
		return errors.Mark(errors.Newf("duplicate issue id %q", issue.ID), errors.ErrConfig)
	}
	c, ok := r.byCategory[issue.Category]
	if !ok {
		return errors.Mark(errors.Newf("issue %q: unknown category %q", issue.ID, issue.Category), errors.ErrConfig)
	}

	c.Issues = append(c.Issues, issue)
	r.issues = append(r.issues, issue)
	r.byID[issue.ID] = issue
	return nil
}

// MustRegister is like Register but panics on error. It is intended for
// static startup tables.
func (r *Registry) MustRegister(issues ...*Issue) {
	for _, issue := range issues {
		if err := r.Register(issue); err != nil {
			panic(err)
		}
	}
}

// Freeze rejects any further registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Get returns the issue with exactly the given id.
func (r *Registry) Get(id string) (*Issue, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	issue, ok := r.byID[id]
	return issue, ok
}

// Lookup is like Get but returns an error wrapping errors.ErrUnknownIssue.
func (r *Registry) Lookup(id string) (*Issue, error) {
	if issue, ok := r.Get(id); ok {
		return issue, nil
	}
	return nil, errors.Wrapf(errors.ErrUnknownIssue, "%q", id)
}

// List returns issues in registration order. An empty filter returns every
// issue; otherwise an issue matches when its category equals filter
// case-insensitively or its id starts with the lower-cased filter followed
// by ':'.
func (r *Registry) List(filter string) []*Issue {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if filter == "" {
		return slices.Clone(r.issues)
	}

	prefix := strings.ToLower(filter) + ":"
	out := make([]*Issue, 0)
	for _, issue := range r.issues {
		if strings.EqualFold(issue.Category, filter) || strings.HasPrefix(issue.ID, prefix) {
			out = append(out, issue)
		}
	}
	return out
}

// Categories returns a snapshot of the declared categories.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, Category{ID: c.ID, Title: c.Title, Issues: slices.Clone(c.Issues)})
	}
	return out
}

// Len returns the number of registered issues.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.issues)
}

func validateIssue(issue *Issue) error {
	if issue == nil {
		return errors.Mark(errors.New("nil issue"), errors.ErrConfig)
	}
	switch {
	case issue.ID == "":
		return errors.Mark(errors.New("issue id is required"), errors.ErrConfig)
	case !strings.HasPrefix(issue.ID, issue.Category+":") || len(issue.ID) == len(issue.Category)+1:
		return errors.Mark(errors.Newf("issue id %q must be namespaced as %s:<name>", issue.ID, issue.Category), errors.ErrConfig)
	case issue.Check == nil:
		return errors.Mark(errors.Newf("issue %q has no check", issue.ID), errors.ErrConfig)
	case !issue.Severity.Valid():
		return errors.Mark(errors.Newf("issue %q has invalid severity %q", issue.ID, issue.Severity), errors.ErrConfig)
	}

	generic := 0
	seen := make(map[string]bool, len(issue.Options))
	for _, opt := range issue.Options {
		key := strings.ToLower(opt.Name)
		if key == "" || key == GenericThreshold || seen[key] {
			return errors.Mark(errors.Newf("issue %q declares invalid option %q", issue.ID, opt.Name), errors.ErrConfig)
		}
		seen[key] = true
		if opt.Generic {
			generic++
		}
	}
	if generic > 1 {
		return errors.Mark(errors.Newf("issue %q declares %d generic options", issue.ID, generic), errors.ErrConfig)
	}
	return nil
}
