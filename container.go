package dnd

// ContainerConfig carries the accessors a scroll container must provide when
// registering with the engine. The engine never touches the DOM-equivalent
// directly: geometry and scroll state are always read through these
// functions at the moment they are needed, so "scroll happened" can
// originate anywhere (autoscroll or user input) without staleness.
type ContainerConfig struct {
	// ID must be unique among registered containers.
	ID ContainerID

	// Bounds returns the container's viewport rectangle in the same
	// coordinate space as incoming gesture positions.
	Bounds func() Rect

	// ScrollTop and SetScrollTop read and write the scroll position.
	ScrollTop    func() float32
	SetScrollTop func(float32)

	// ViewportHeight returns the visible height. Optional; when nil the
	// bounds height is used.
	ViewportHeight func() float32
}

// Container is one registered virtualized list: its accessors, tuning
// options, and the Window that answers render-range queries for it.
type Container struct {
	id     ContainerID
	cfg    ContainerConfig
	window *Window

	group         string
	contentOffset float32
	autoScroll    AutoScrollConfig
	dragDelay     float32
	moveThreshold float32
	axis          Axis
	constrain     bool
	disabled      func(ItemID) bool

	// order is the registration sequence position; it defines keyboard
	// Left/Right adjacency between containers.
	order int

	// enteredSeq stamps when the pointer last entered this container's
	// bounds; ties between overlapping containers go to the most recent.
	enteredSeq uint64
	underPtr   bool
}

func newContainer(cfg ContainerConfig, opts []Option) *Container {
	o := applyOptions(opts)

	var cache HeightCache
	if row := GetOpt(o, OptFixedRowHeight); row > 0 {
		cache = NewFixedHeightCache(row)
	} else {
		cache = NewHeightCache(GetOpt(o, OptEstimatedHeight))
	}

	return &Container{
		id:            cfg.ID,
		cfg:           cfg,
		window:        NewWindow(cache, GetOpt(o, OptOverscan)),
		group:         GetOpt(o, OptGroup),
		contentOffset: GetOpt(o, OptContentOffset),
		autoScroll:    GetOpt(o, OptAutoScroll),
		dragDelay:     GetOpt(o, OptDragDelay),
		moveThreshold: GetOpt(o, OptMoveThreshold),
		axis:          GetOpt(o, OptAxisLock),
		constrain:     GetOpt(o, OptConstrain),
		disabled:      GetOpt(o, OptDisabledItems),
	}
}

// ID returns the container's identifier.
func (c *Container) ID() ContainerID { return c.id }

// Window returns the container's windowing strategy.
func (c *Container) Window() *Window { return c.window }

func (c *Container) bounds() Rect {
	if c.cfg.Bounds == nil {
		return Rect{}
	}
	return c.cfg.Bounds()
}

func (c *Container) scrollTop() float32 {
	if c.cfg.ScrollTop == nil {
		return 0
	}
	return c.cfg.ScrollTop()
}

func (c *Container) setScrollTop(v float32) {
	if c.cfg.SetScrollTop != nil {
		c.cfg.SetScrollTop(v)
	}
}

func (c *Container) viewportHeight() float32 {
	if c.cfg.ViewportHeight != nil {
		return c.cfg.ViewportHeight()
	}
	return c.bounds().H
}

// maxScroll is the largest valid scroll position: header plus list content
// minus one viewport, floored at zero. During a same-list drag the excluded
// row contributes nothing, so the origin list's scroll range shrinks by one
// row for the duration.
func (c *Container) maxScroll() float32 {
	cache := c.window.Cache()
	content := c.contentOffset + cache.TotalHeight(cache.Len())
	return maxf(0, content-c.viewportHeight())
}

// contentY translates a gesture position into the list's content coordinate
// space (0 == top of row 0, regardless of scrolling or header content).
func (c *Container) contentY(p Vec2) float32 {
	return p.Y - c.bounds().Y - c.contentOffset + c.scrollTop()
}

// itemDisabled reports whether a drag may not start on the given item.
func (c *Container) itemDisabled(item ItemID) bool {
	return c.disabled != nil && c.disabled(item)
}

// groupMatches reports whether an item from source group g may target this
// container.
func (c *Container) groupMatches(g string) bool {
	return c.group == g
}
