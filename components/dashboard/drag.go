package dashboard

// DragState is one of Idle, Dragging or DraggingOver. The concrete types carry
// their source and target so a drag without a source cannot be represented.
type DragState interface {
	dragState()
}

// Idle means no drag is in progress.
type Idle struct{}

// Dragging means Source is held but no distinct target is hovered.
type Dragging struct {
	Source Section
}

// DraggingOver means Source is hovering a distinct Target.
type DraggingOver struct {
	Source Section
	Target Section
}

func (Idle) dragState()         {}
func (Dragging) dragState()     {}
func (DraggingOver) dragState() {}

// DragMachine drives the drag-and-drop interaction for dashboard cards.
type DragMachine struct {
	state DragState
}

// NewDragMachine starts in Idle.
func NewDragMachine() *DragMachine {
	return &DragMachine{state: Idle{}}
}

// State returns the current state.
func (m *DragMachine) State() DragState {
	return m.state
}

// Start picks up source. Unknown sections are ignored.
func (m *DragMachine) Start(source Section) bool {
	if !source.Valid() {
		return false
	}
	m.state = Dragging{Source: source}
	return true
}

// Enter hovers target. Hovering the source itself keeps the plain Dragging state.
func (m *DragMachine) Enter(target Section) {
	source, ok := m.source()
	if !ok || !target.Valid() {
		return
	}
	if target == source {
		m.state = Dragging{Source: source}
		return
	}
	m.state = DraggingOver{Source: source, Target: target}
}

// Leave drops the emphasis on target while keeping the drag alive.
func (m *DragMachine) Leave(target Section) {
	if over, ok := m.state.(DraggingOver); ok && over.Target == target {
		m.state = Dragging{Source: over.Source}
	}
}

// Drop ends the drag on target and returns the source to move. ok is false for
// self-drops, drops without a drag, and unknown targets.
func (m *DragMachine) Drop(target Section) (source Section, ok bool) {
	source, dragging := m.source()
	m.state = Idle{}
	if !dragging || !target.Valid() || target == source {
		return "", false
	}
	return source, true
}

// End cancels the drag without reordering.
func (m *DragMachine) End() {
	m.state = Idle{}
}

func (m *DragMachine) source() (Section, bool) {
	switch s := m.state.(type) {
	case Dragging:
		return s.Source, true
	case DraggingOver:
		return s.Source, true
	default:
		return "", false
	}
}
