package dnd

// Option configures a container registration.
type Option func(*options)

// options holds all container configuration via the extensions map.
// All options use the unified OptKey system for type safety.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for container options.
// All options (built-in and custom) use this system for consistency.
//
// Example:
//
//	// Define option keys (built-in ones are already defined below)
//	var OptCustomThing = dnd.NewOptKey("customThing", defaultValue)
//
//	// Set options
//	engine.RegisterContainer(cfg, dnd.WithOpt(OptCustomThing, value))
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value with type safety.
// Returns the key's default value if not set.
func GetOpt[T any](o options, key OptKey[T]) T {
	if o.extensions == nil {
		return key.def
	}
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set.
func HasOpt[T any](o options, key OptKey[T]) bool {
	if o.extensions == nil {
		return false
	}
	_, ok := o.extensions[key.name]
	return ok
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// =============================================================================
// Built-in Option Keys
// =============================================================================

// --- List geometry ---
var (
	// OptFixedRowHeight switches the container to fixed-height mode.
	// Every row is assumed to be exactly this tall; no measurements needed.
	OptFixedRowHeight = NewOptKey[float32]("fixedRowHeight", 0)

	// OptEstimatedHeight is the fallback height for unmeasured rows in
	// dynamic-height mode.
	OptEstimatedHeight = NewOptKey[float32]("estimatedHeight", 40)

	// OptOverscan is the number of extra rows rendered beyond the strictly
	// visible range on each side.
	OptOverscan = NewOptKey("overscan", 2)

	// OptContentOffset is the vertical space consumed by non-virtualized
	// header content above the list, in container units.
	OptContentOffset = NewOptKey[float32]("contentOffset", 0)
)

// --- Drag behavior ---
var (
	// OptGroup restricts which containers a dragged item may target.
	// Items only drop into containers sharing the source's group.
	OptGroup = NewOptKey("group", "")

	// OptDragDelay is how long the pointer must stay down before a drag
	// attempt is armed, in seconds. Zero arms immediately.
	OptDragDelay = NewOptKey[float32]("dragDelay", 0)

	// OptMoveThreshold is the movement in units that aborts a not-yet-armed
	// drag attempt (quick swipes are scrolls, not drags).
	OptMoveThreshold = NewOptKey[float32]("moveThreshold", 6)

	// OptAxisLock constrains which pointer delta components affect
	// placeholder resolution and the drag preview.
	OptAxisLock = NewOptKey("axisLock", AxisNone)

	// OptConstrain clamps out-of-bounds pointer positions back into the
	// origin container so a placeholder is always resolved.
	OptConstrain = NewOptKey("constrain", false)

	// OptDisabledItems is consulted on drag start; items for which it
	// returns true never start a drag.
	OptDisabledItems = NewOptKey[func(ItemID) bool]("disabledItems", nil)

	// OptAutoScroll tunes edge-proximity scrolling for the container.
	OptAutoScroll = NewOptKey("autoScroll", DefaultAutoScrollConfig())
)

// =============================================================================
// Convenience Option Functions (wrap WithOpt for common cases)
// =============================================================================

// WithFixedRowHeight uses O(1) fixed-height arithmetic for the container.
func WithFixedRowHeight(h float32) Option { return WithOpt(OptFixedRowHeight, h) }

// WithEstimatedHeight sets the fallback height for unmeasured rows.
func WithEstimatedHeight(h float32) Option { return WithOpt(OptEstimatedHeight, h) }

// WithOverscan sets how many extra rows render beyond the visible range.
func WithOverscan(n int) Option { return WithOpt(OptOverscan, n) }

// WithContentOffset reserves space for header content above the list.
func WithContentOffset(px float32) Option { return WithOpt(OptContentOffset, px) }

// WithGroup assigns the container to a drag group.
func WithGroup(group string) Option { return WithOpt(OptGroup, group) }

// WithDragDelay requires the pointer to stay down this long (seconds)
// before a drag can begin. Useful on touch surfaces.
func WithDragDelay(seconds float32) Option { return WithOpt(OptDragDelay, seconds) }

// WithMoveThreshold sets the movement distance that cancels a pending drag
// attempt before its delay elapses.
func WithMoveThreshold(units float32) Option { return WithOpt(OptMoveThreshold, units) }

// WithAxisLock constrains drag movement to a single axis.
func WithAxisLock(axis Axis) Option { return WithOpt(OptAxisLock, axis) }

// ConstrainToContainer keeps the placeholder inside the origin container
// even when the pointer wanders outside its bounds.
func ConstrainToContainer() Option { return WithOpt(OptConstrain, true) }

// WithDisabledItems marks individual items as non-draggable.
func WithDisabledItems(fn func(ItemID) bool) Option { return WithOpt(OptDisabledItems, fn) }

// WithAutoScroll overrides the container's autoscroll tuning.
func WithAutoScroll(cfg AutoScrollConfig) Option { return WithOpt(OptAutoScroll, cfg) }
