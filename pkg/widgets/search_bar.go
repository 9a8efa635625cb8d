package widgets

import (
	"regexp"

	"github.com/goliatone/go-formwidgets/pkg/binding"
)

// SearchBarProps configures a SearchBar.
type SearchBarProps struct {
	Base
	Term binding.Value[string]
	// Pattern is reserved; search terms are not validated.
	Pattern  *regexp.Regexp
	OnSearch func()
}

// SearchBarOption mutates props during construction or Update.
type SearchBarOption func(*SearchBarProps)

// DefaultSearchBarProps returns the documented defaults.
func DefaultSearchBarProps() SearchBarProps {
	return SearchBarProps{
		Base: Base{
			ID:          "default",
			HTMLFor:     "search",
			Placeholder: "Search value...",
			Style:       DefaultStyle("full"),
		},
	}
}

// SearchBar is a search input with a trigger button.
type SearchBar struct {
	props SearchBarProps
}

// NewSearchBar builds a SearchBar from the defaults plus fns.
func NewSearchBar(fns ...SearchBarOption) *SearchBar {
	props := DefaultSearchBarProps()
	for _, fn := range fns {
		if fn != nil {
			fn(&props)
		}
	}
	return &SearchBar{props: props}
}

func (s *SearchBar) Kind() Kind        { return KindSearchBar }
func (s *SearchBar) ID() string        { return s.props.ID }
func (s *SearchBar) FieldName() string { return s.props.fieldName() }

// Props returns a copy of the current configuration.
func (s *SearchBar) Props() SearchBarProps { return s.props }

// Update applies fns to the current props.
func (s *SearchBar) Update(fns ...SearchBarOption) {
	for _, fn := range fns {
		if fn != nil {
			fn(&s.props)
		}
	}
}

// Rebind replaces the term binding with the host's latest state.
func (s *SearchBar) Rebind(term binding.Value[string]) {
	s.props.Term = term
}

// Term returns the bound search term.
func (s *SearchBar) Term() string { return s.props.Term.Current }

// Change pushes an edited term upward.
func (s *SearchBar) Change(term string) {
	s.props.Term.Push(term)
}

// Search fires the search trigger. It reports false when no OnSearch is wired.
func (s *SearchBar) Search() bool {
	if s.props.OnSearch == nil {
		return false
	}
	s.props.OnSearch()
	return true
}

func (s *SearchBar) View() View {
	view := baseView(KindSearchBar, s.props.Base)
	view.ReadOnly = s.props.Term.ReadOnly()
	view.Value = s.props.Term.Current
	view.InputType = "text"
	view.Searchable = s.props.OnSearch != nil
	view.TermName = s.props.fieldName()
	return view
}
