package trigdet

import "fmt"

// ErrMissingParam represents a required key absent from the parameter source.
type ErrMissingParam struct {
	Key string
}

func (e *ErrMissingParam) Error() string {
	return fmt.Sprintf("missing parameter %q", e.Key)
}

// ErrBadChannelCount represents a declared channel count outside the fixed
// capacity of the channel store.
type ErrBadChannelCount struct {
	Kind     ChannelKind
	Count    int
	Capacity int
}

func (e *ErrBadChannelCount) Error() string {
	return fmt.Sprintf("%v channel count %d outside [0, %d]", e.Kind, e.Count, e.Capacity)
}

// ErrNameCountMismatch represents a channel-name list whose length does not
// match the declared channel count.
type ErrNameCountMismatch struct {
	Kind  ChannelKind
	Count int
	Names int
}

func (e *ErrNameCountMismatch) Error() string {
	return fmt.Sprintf("%v channels: %d names for %d declared channels", e.Kind, e.Names, e.Count)
}

// ErrDuplicateName represents a channel name used twice within one kind.
type ErrDuplicateName struct {
	Kind ChannelKind
	Name string
}

func (e *ErrDuplicateName) Error() string {
	return fmt.Sprintf("%v channels: duplicate name %q", e.Kind, e.Name)
}

// ErrUnknownPlane represents a hit with a plane identifier this detector
// cannot decode. It aborts the current event.
type ErrUnknownPlane struct {
	Plane int
}

func (e *ErrUnknownPlane) Error() string {
	return fmt.Sprintf("only planes %d and %d available, got %d", PlaneAdc, PlaneTdc, e.Plane)
}

// ErrChannelRange represents a hit whose channel index falls outside the
// valid range for its kind.
type ErrChannelRange struct {
	Kind  ChannelKind
	Index int
	Limit int
}

func (e *ErrChannelRange) Error() string {
	return fmt.Sprintf("%v channel index %d outside [0, %d)", e.Kind, e.Index, e.Limit)
}

// ErrUnmappedChannel represents an acquisition address with no entry in the
// detector map.
type ErrUnmappedChannel struct {
	Crate uint16
	Slot  uint16
	Ch    uint16
}

func (e *ErrUnmappedChannel) Error() string {
	return fmt.Sprintf("no detector-map entry for crate %d slot %d channel %d", e.Crate, e.Slot, e.Ch)
}

// ErrDuplicateVariable represents two channels publishing the same output
// variable name.
type ErrDuplicateVariable struct {
	Name string
}

func (e *ErrDuplicateVariable) Error() string {
	return fmt.Sprintf("output variable %q defined twice", e.Name)
}

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}
