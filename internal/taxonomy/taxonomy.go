package taxonomy

import (
	"siteforge/internal/services"
)

// Kind distinguishes sections that hold a single asset from sections that
// hold any number of them.
type Kind string

const (
	KindSingleton Kind = "singleton"
	KindMulti     Kind = "multi"
)

// Well-known section names. The section set is fixed at session start.
const (
	SectionLogo     = "Logo"
	SectionHero     = "Hero"
	SectionAbout    = "About"
	SectionEvents   = "Events"
	SectionGallery  = "Gallery"
	SectionProducts = "Products"
)

// DefaultCategory is the category every categorized section starts with and
// the fallback target when a category is deleted.
const DefaultCategory = "Main"

// Section describes one top-level taxonomy bucket.
type Section struct {
	Name             string
	Kind             Kind
	AllowsCategories bool
}

type sectionNode struct {
	info     Section
	catOrder []string
	// categories maps a category name to its ordered subcategory names.
	// Present only when the section allows categories.
	categories map[string][]string
}

// Store owns the section/category/subcategory hierarchy. Categories and
// subcategories are value records keyed by name, so deletions are plain data
// operations with no dangling references.
type Store struct {
	order    []string
	sections map[string]*sectionNode
}

// NewStore builds the fixed six-section hierarchy. Gallery and Products allow
// categories and start with "Main".
func NewStore() *Store {
	s := &Store{sections: make(map[string]*sectionNode)}
	s.addSection(Section{Name: SectionLogo, Kind: KindSingleton})
	s.addSection(Section{Name: SectionHero, Kind: KindSingleton})
	s.addSection(Section{Name: SectionAbout, Kind: KindSingleton})
	s.addSection(Section{Name: SectionEvents, Kind: KindMulti})
	s.addSection(Section{Name: SectionGallery, Kind: KindMulti, AllowsCategories: true})
	s.addSection(Section{Name: SectionProducts, Kind: KindMulti, AllowsCategories: true})
	return s
}

func (s *Store) addSection(info Section) {
	node := &sectionNode{info: info}
	if info.AllowsCategories {
		node.categories = map[string][]string{DefaultCategory: nil}
		node.catOrder = []string{DefaultCategory}
	}
	s.order = append(s.order, info.Name)
	s.sections[info.Name] = node
}

// Sections returns every section in declaration order.
func (s *Store) Sections() []Section {
	out := make([]Section, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.sections[name].info)
	}
	return out
}

// Section looks up a section by name.
func (s *Store) Section(name string) (Section, bool) {
	node, ok := s.sections[name]
	if !ok {
		return Section{}, false
	}
	return node.info, true
}

// Categories returns a section's category names in creation order. Sections
// without categories yield nil.
func (s *Store) Categories(section string) []string {
	node, ok := s.sections[section]
	if !ok || node.categories == nil {
		return nil
	}
	return append([]string(nil), node.catOrder...)
}

// HasCategory reports whether the named category exists under the section.
func (s *Store) HasCategory(section, name string) bool {
	node, ok := s.sections[section]
	if !ok || node.categories == nil {
		return false
	}
	_, ok = node.categories[name]
	return ok
}

// Subcategories returns a category's subcategory names in creation order.
func (s *Store) Subcategories(section, category string) []string {
	node, ok := s.sections[section]
	if !ok || node.categories == nil {
		return nil
	}
	return append([]string(nil), node.categories[category]...)
}

// AddCategory creates an empty category under the section. Duplicate names
// are rejected without mutation.
func (s *Store) AddCategory(section, name string) error {
	node, ok := s.sections[section]
	if !ok {
		return services.Wrap(services.ErrValidation, "taxonomy", "add category", "unknown section "+section, nil)
	}
	if node.categories == nil {
		return services.Wrap(services.ErrValidation, "taxonomy", "add category", "section "+section+" does not allow categories", nil)
	}
	if _, exists := node.categories[name]; exists {
		return services.Wrap(services.ErrDuplicateName, "taxonomy", "add category", name+" already exists under "+section, nil)
	}
	node.categories[name] = nil
	node.catOrder = append(node.catOrder, name)
	return nil
}

// AddSubcategory appends a subcategory to an existing category. A missing
// parent category or a duplicate name is rejected without mutation.
func (s *Store) AddSubcategory(section, category, name string) error {
	node, ok := s.sections[section]
	if !ok || node.categories == nil {
		return services.Wrap(services.ErrValidation, "taxonomy", "add subcategory", "unknown section "+section, nil)
	}
	subs, exists := node.categories[category]
	if !exists {
		return services.Wrap(services.ErrUnknownParent, "taxonomy", "add subcategory", "category "+category+" does not exist under "+section, nil)
	}
	for _, sub := range subs {
		if sub == name {
			return services.Wrap(services.ErrDuplicateName, "taxonomy", "add subcategory", name+" already exists under "+category, nil)
		}
	}
	node.categories[category] = append(subs, name)
	return nil
}

// DeleteCategory removes the category and all its subcategories. Deleting an
// absent category is a no-op. Callers owning assets must reassign dependents
// (see studio.Session.DeleteCategory).
func (s *Store) DeleteCategory(section, name string) {
	node, ok := s.sections[section]
	if !ok || node.categories == nil {
		return
	}
	if _, exists := node.categories[name]; !exists {
		return
	}
	delete(node.categories, name)
	for i, cat := range node.catOrder {
		if cat == name {
			node.catOrder = append(node.catOrder[:i], node.catOrder[i+1:]...)
			break
		}
	}
}

// DeleteSubcategory removes the name from the category's list. Absent entries
// are a no-op.
func (s *Store) DeleteSubcategory(section, category, name string) {
	node, ok := s.sections[section]
	if !ok || node.categories == nil {
		return
	}
	subs, exists := node.categories[category]
	if !exists {
		return
	}
	for i, sub := range subs {
		if sub == name {
			node.categories[category] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}
