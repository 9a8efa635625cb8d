package widgets

import (
	"slices"

	"github.com/goliatone/go-formwidgets/pkg/binding"
	"github.com/goliatone/go-formwidgets/pkg/menu"
)

// SearchWithCategoryProps configures a SearchWithCategory.
type SearchWithCategoryProps struct {
	Base
	Term       binding.Value[string]
	Category   binding.Value[string]
	Categories []string
	OnSearch   func()
}

// SearchWithCategoryOption mutates props during construction or Update.
type SearchWithCategoryOption func(*SearchWithCategoryProps)

// DefaultSearchWithCategoryProps returns the documented defaults. The selected
// category starts as "All".
func DefaultSearchWithCategoryProps() SearchWithCategoryProps {
	return SearchWithCategoryProps{
		Base: Base{
			ID:          "search-category",
			HTMLFor:     "search-dropdown",
			Placeholder: "Search value...",
			Style:       DefaultStyle("lg"),
		},
		Category: binding.Static("All"),
	}
}

// SearchWithCategory is a search input prefixed with a category dropdown.
type SearchWithCategory struct {
	props SearchWithCategoryProps
	menu  *menu.Menu
}

// NewSearchWithCategory builds a SearchWithCategory from the defaults plus fns.
func NewSearchWithCategory(fns ...SearchWithCategoryOption) *SearchWithCategory {
	props := DefaultSearchWithCategoryProps()
	for _, fn := range fns {
		if fn != nil {
			fn(&props)
		}
	}
	return &SearchWithCategory{
		props: props,
		menu:  menu.New(props.Categories, props.Category),
	}
}

func (s *SearchWithCategory) Kind() Kind        { return KindSearchCategory }
func (s *SearchWithCategory) ID() string        { return s.props.ID }
func (s *SearchWithCategory) FieldName() string { return s.props.fieldName() }

// Props returns a copy of the current configuration.
func (s *SearchWithCategory) Props() SearchWithCategoryProps {
	props := s.props
	props.Categories = slices.Clone(s.props.Categories)
	return props
}

// Update applies fns to the current props, keeping the menu's open state.
func (s *SearchWithCategory) Update(fns ...SearchWithCategoryOption) {
	for _, fn := range fns {
		if fn != nil {
			fn(&s.props)
		}
	}
	s.menu.SetOptions(s.props.Categories)
	s.menu.Rebind(s.props.Category)
}

// Rebind replaces both bindings with the host's latest state.
func (s *SearchWithCategory) Rebind(term, category binding.Value[string]) {
	s.props.Term = term
	s.props.Category = category
	s.menu.Rebind(category)
}

// Term returns the bound search term.
func (s *SearchWithCategory) Term() string { return s.props.Term.Current }

// Category returns the bound category.
func (s *SearchWithCategory) Category() string { return s.props.Category.Current }

// Menu exposes the category menu state machine.
func (s *SearchWithCategory) Menu() *menu.Menu { return s.menu }

// MenuOpen reports whether the category list is showing.
func (s *SearchWithCategory) MenuOpen() bool { return s.menu.IsOpen() }

// ToggleMenu opens or closes the category list.
func (s *SearchWithCategory) ToggleMenu() { s.menu.Toggle() }

// DismissMenu closes the category list without selecting.
func (s *SearchWithCategory) DismissMenu() { s.menu.Dismiss() }

// SelectCategory pushes category upward and closes the list. The list must be
// open and contain category.
func (s *SearchWithCategory) SelectCategory(category string) error {
	return s.menu.Select(category)
}

// Change pushes an edited term upward.
func (s *SearchWithCategory) Change(term string) {
	s.props.Term.Push(term)
}

// Search fires the search trigger. It reports false when no OnSearch is wired.
func (s *SearchWithCategory) Search() bool {
	if s.props.OnSearch == nil {
		return false
	}
	s.props.OnSearch()
	return true
}

func (s *SearchWithCategory) View() View {
	view := baseView(KindSearchCategory, s.props.Base)
	view.ReadOnly = s.props.Term.ReadOnly()
	view.Value = s.props.Term.Current
	view.InputType = "search"
	view.Searchable = s.props.OnSearch != nil
	view.MenuOpen = s.menu.IsOpen()
	view.TermName = s.props.fieldName() + ".term"
	selected := s.props.Category.Current
	for _, category := range s.menu.Options() {
		view.Categories = append(view.Categories, OptionView{
			Value:    category,
			Label:    category,
			Selected: category == selected,
		})
	}
	view.Category = selected
	return view
}
