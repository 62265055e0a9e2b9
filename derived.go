package dynview

import "slices"

// DerivedConfig describes a view layered on top of another view.
type DerivedConfig[K comparable, T any] struct {
	// Name identifies the derived view in its parent's registry.
	Name string

	// Filters are registered on the new view in order.
	Filters []Filterer[T]

	// Sort sets the view's comparator, if any.
	Sort Comparer[T]

	// Init, when set, runs after construction for additional setup such as
	// registering dynamic filters or subscriptions.
	Init func(view *DerivedView[K, T]) error
}

// DerivedView is a view layered over a parent view. It shares the parent's
// backing container and reduces the parent's visible set with its own
// filters and comparator. Derived views can be nested.
type DerivedView[K comparable, T any] struct {
	viewBase[K, T]
	name string
}

// Name returns the name the view was registered under.
func (d *DerivedView[K, T]) Name() string { return d.name }

// DerivedViews is the registry of views layered on top of one view. Parent
// index updates propagate to every registered view in creation order.
type DerivedViews[K comparable, T any] struct {
	owner     *viewBase[K, T]
	views     map[string]*DerivedView[K, T]
	order     []string
	destroyed bool
}

// Create builds a derived view and registers it under cfg.Name. Creating a
// view under a name already in use destroys the previous view first. Create
// fails with ErrDestroyed once the parent has been destroyed.
func (dv *DerivedViews[K, T]) Create(cfg DerivedConfig[K, T]) (*DerivedView[K, T], error) {
	if dv.destroyed || dv.owner.destroyed {
		return nil, ErrDestroyed
	}
	if cfg.Name == "" {
		return nil, ErrMissingName
	}

	child := &DerivedView[K, T]{name: cfg.Name}
	child.init(dv.owner.h, &dv.owner.ix, dv.owner.logger, dv.owner.metrics, dv.owner.codec, dv.owner.compression)

	if err := child.applyReducers(cfg.Filters, cfg.Sort, false); err != nil {
		return nil, err
	}
	if cfg.Init != nil {
		if err := cfg.Init(child); err != nil {
			return nil, err
		}
	}
	// Seed the index for views whose setup triggered no update of its own,
	// e.g. a plain mirror of an actively reduced parent.
	child.triggerUpdate(updateOptions{})

	if prev, ok := dv.views[cfg.Name]; ok {
		prev.Destroy()
		dv.order = slices.DeleteFunc(dv.order, func(n string) bool { return n == cfg.Name })
	}
	if dv.views == nil {
		dv.views = make(map[string]*DerivedView[K, T])
	}
	dv.views[cfg.Name] = child
	dv.order = append(dv.order, cfg.Name)
	dv.owner.logger.LogDerivedCreate(cfg.Name)
	return child, nil
}

// Get returns the derived view registered under name, or nil.
func (dv *DerivedViews[K, T]) Get(name string) *DerivedView[K, T] {
	return dv.views[name]
}

// Delete destroys and removes the derived view registered under name. It
// reports whether a view was removed.
func (dv *DerivedViews[K, T]) Delete(name string) (bool, error) {
	if dv.destroyed {
		return false, ErrDestroyed
	}
	v, ok := dv.views[name]
	if !ok {
		return false, nil
	}
	v.Destroy()
	delete(dv.views, name)
	dv.order = slices.DeleteFunc(dv.order, func(n string) bool { return n == name })
	return true, nil
}

// Clear destroys and removes all derived views.
func (dv *DerivedViews[K, T]) Clear() {
	for _, name := range dv.order {
		dv.views[name].Destroy()
	}
	dv.views = nil
	dv.order = nil
}

// Len returns the number of registered derived views.
func (dv *DerivedViews[K, T]) Len() int { return len(dv.order) }

// Names returns the registered names in creation order.
func (dv *DerivedViews[K, T]) Names() []string {
	return slices.Clone(dv.order)
}

func (dv *DerivedViews[K, T]) destroy() {
	if dv.destroyed {
		return
	}
	dv.Clear()
	dv.destroyed = true
}

// propagate forwards a parent index update to every derived view in
// creation order.
func (dv *DerivedViews[K, T]) propagate(o updateOptions) {
	for _, name := range dv.order {
		dv.views[name].triggerUpdate(o)
	}
}
