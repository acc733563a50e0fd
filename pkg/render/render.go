package render

// Element is a node of the host's document tree.
type Element interface {
	// CreateChild creates a new element, appends it as the last child and
	// returns it. classes is a space-separated class list; text may be empty.
	CreateChild(tag, classes, text string) Element

	// AppendChild moves child to the end of this element's children,
	// detaching it from its current parent first.
	AppendChild(child Element)

	// Remove detaches the element from its parent. Its subtree stays intact.
	Remove()

	// ToggleClass adds the class when on is true and removes it otherwise.
	ToggleClass(class string, on bool)

	HasClass(class string) bool

	// OnClick registers fn to run when the element, or an element inside it,
	// is clicked.
	OnClick(fn func(Event))
}

// Attributer is implemented by elements that carry attributes. When the
// host's elements implement it, every item is tagged with its position id
// under AttrID.
type Attributer interface {
	SetAttr(key, value string)
}

// AttrID is the attribute holding an item's position id.
const AttrID = "data-tree-id"

// Event is a click event delivered to OnClick handlers.
type Event interface {
	// StopPropagation prevents handlers on ancestor elements from running.
	StopPropagation()
}

// Icons looks up named icon glyphs.
type Icons interface {
	// Icon returns a new detached element for the named glyph, or nil when
	// the host does not know the name.
	Icon(name string) Element
}

// Icon names requested by the renderer.
const (
	IconChevron      = "chevron-right"
	IconFolderOpen   = "folder-open"
	IconFolderClosed = "folder-closed"
	IconFile         = "file"
)

// Class names shared with hosts that style or query the outline.
const (
	ClassContainer = "nav-files-container tree-view--container"
	ClassItem      = "tree-item"
	ClassRow       = "tree-item-self"
	ClassCaret     = "tree-item-icon"
	ClassLabel     = "tree-item-inner"
	ClassChildren  = "tree-item-children"
	ClassCollapsed = "is-collapsed"
)
