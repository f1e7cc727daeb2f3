package assets

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"siteforge/internal/services"
	"siteforge/internal/taxonomy"
)

// Registry owns the ordered in-memory collection of uploaded assets. Iteration
// order is insertion order and determines both counter increments and document
// appends on export, so it must stay stable.
type Registry struct {
	tags  *taxonomy.Store
	items []*Asset
}

// NewRegistry builds an empty registry bound to the taxonomy store it
// validates section assignments against.
func NewRegistry(tags *taxonomy.Store) *Registry {
	return &Registry{tags: tags}
}

// Add registers a new asset with the default path (Gallery/Main) and auto
// placement. The ID is an opaque unique token.
func (r *Registry) Add(kind MediaKind, sourcePath, extension string) (*Asset, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "registry", "add asset", "generate id", err)
	}
	asset := &Asset{
		ID:         id,
		Kind:       kind,
		SourcePath: sourcePath,
		Extension:  extension,
		Path: TagPath{
			Section:  taxonomy.SectionGallery,
			Category: taxonomy.DefaultCategory,
		},
		Mode:      ModeAuto,
		Transform: Identity(),
	}
	r.items = append(r.items, asset)
	return asset, nil
}

// Get returns the asset with the given ID.
func (r *Registry) Get(id string) (*Asset, bool) {
	for _, asset := range r.items {
		if asset.ID == id {
			return asset, true
		}
	}
	return nil, false
}

// Items returns the assets in insertion order. The slice is a copy; the
// assets are shared.
func (r *Registry) Items() []*Asset {
	return append([]*Asset(nil), r.items...)
}

// Len reports the number of registered assets.
func (r *Registry) Len() int {
	return len(r.items)
}

// Remove deletes the asset with the given ID, preserving the order of the
// remaining assets. Removing an unknown ID is a no-op.
func (r *Registry) Remove(id string) {
	for i, asset := range r.items {
		if asset.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

// AssignSection moves the asset into the named section.
//
// Singleton destinations evict any current holder back to Gallery/Main with
// auto placement and an identity transform, and force the assigned asset into
// manual mode. Leaving a singleton for a multi section resets placement the
// same way. Category defaults to "Main" when the destination has categories.
// Product/event payloads are initialized the first time the asset enters
// Products/Events and are never cleared afterwards.
func (r *Registry) AssignSection(id, section string) error {
	asset, ok := r.Get(id)
	if !ok {
		return services.Wrap(services.ErrValidation, "registry", "assign section", "unknown asset "+id, nil)
	}
	info, ok := r.tags.Section(section)
	if !ok {
		return services.Wrap(services.ErrValidation, "registry", "assign section", "unknown section "+section, nil)
	}

	oldSection := asset.Path.Section

	if info.Kind == taxonomy.KindSingleton {
		for _, other := range r.items {
			if other.ID != id && other.Path.Section == section {
				r.evict(other)
			}
		}
		asset.Mode = ModeManual
	} else if oldSection != section {
		if prev, ok := r.tags.Section(oldSection); ok && prev.Kind == taxonomy.KindSingleton {
			asset.Mode = ModeAuto
			asset.Transform = Identity()
		}
	}

	asset.Path.Section = section
	if info.AllowsCategories {
		asset.Path.Category = taxonomy.DefaultCategory
	} else {
		asset.Path.Category = ""
	}
	asset.Path.Subcategory = ""

	if section == taxonomy.SectionProducts && asset.Product == nil {
		asset.Product = &ProductDetails{}
	}
	if section == taxonomy.SectionEvents && asset.Event == nil {
		asset.Event = &EventDetails{Duration: DurationList}
	}
	return nil
}

// evict returns a displaced singleton holder to the default multi slot.
func (r *Registry) evict(asset *Asset) {
	asset.Path = TagPath{
		Section:  taxonomy.SectionGallery,
		Category: taxonomy.DefaultCategory,
	}
	asset.Mode = ModeAuto
	asset.Transform = Identity()
}

// AssignCategory sets the asset's category and unconditionally clears its
// subcategory. The name is stored as given; offering only valid names is the
// caller's concern.
func (r *Registry) AssignCategory(id, name string) error {
	asset, ok := r.Get(id)
	if !ok {
		return services.Wrap(services.ErrValidation, "registry", "assign category", "unknown asset "+id, nil)
	}
	asset.Path.Category = name
	asset.Path.Subcategory = ""
	return nil
}

// AssignSubcategory sets the asset's subcategory with no other side effects.
func (r *Registry) AssignSubcategory(id, name string) error {
	asset, ok := r.Get(id)
	if !ok {
		return services.Wrap(services.ErrValidation, "registry", "assign subcategory", "unknown asset "+id, nil)
	}
	asset.Path.Subcategory = name
	return nil
}

// SetPlacement updates the placement mode. Switching to auto resets the
// transform to identity; switching to manual applies the given transform,
// defaulting the scale to 1 when unset.
func (r *Registry) SetPlacement(id string, mode PlacementMode, transform Transform) error {
	asset, ok := r.Get(id)
	if !ok {
		return services.Wrap(services.ErrValidation, "registry", "set placement", "unknown asset "+id, nil)
	}
	asset.Mode = mode
	if mode == ModeAuto {
		asset.Transform = Identity()
		return nil
	}
	if transform.Scale <= 0 {
		transform.Scale = 1
	}
	asset.Transform = transform
	return nil
}

// UpdateProduct replaces the asset's product payload.
func (r *Registry) UpdateProduct(id string, details ProductDetails) error {
	asset, ok := r.Get(id)
	if !ok {
		return services.Wrap(services.ErrValidation, "registry", "update product", "unknown asset "+id, nil)
	}
	asset.Product = &details
	return nil
}

// UpdateEvent replaces the asset's event payload.
func (r *Registry) UpdateEvent(id string, details EventDetails) error {
	asset, ok := r.Get(id)
	if !ok {
		return services.Wrap(services.ErrValidation, "registry", "update event", "unknown asset "+id, nil)
	}
	asset.Event = &details
	return nil
}

// ReassignDeletedCategory moves every asset pointing at the deleted
// (section, category) pair to "Main" when that category still exists under
// the section, otherwise to no category. Subcategories are cleared either
// way. Call after the taxonomy deletion so the fallback check sees the
// post-delete hierarchy.
func (r *Registry) ReassignDeletedCategory(section, category string) {
	fallback := ""
	if r.tags.HasCategory(section, taxonomy.DefaultCategory) {
		fallback = taxonomy.DefaultCategory
	}
	for _, asset := range r.items {
		if asset.Path.Section == section && asset.Path.Category == category {
			asset.Path.Category = fallback
			asset.Path.Subcategory = ""
		}
	}
}

// ReassignDeletedSubcategory clears the subcategory of every asset pointing
// at the deleted (section, category, subcategory) triple, keeping the
// category.
func (r *Registry) ReassignDeletedSubcategory(section, category, subcategory string) {
	for _, asset := range r.items {
		if asset.Path.Section == section && asset.Path.Category == category && asset.Path.Subcategory == subcategory {
			asset.Path.Subcategory = ""
		}
	}
}
