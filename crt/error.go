package crt

// NotFound - Custom error to inform that no item with the given key was found
type NotFound struct {
	Msg string
}

// Error - Used to notify that no item was found
func (E NotFound) Error() string {
	if E.Msg == "" {
		return "item not found"
	}
	return E.Msg
}

// Is - Makes errors.Is(err, NotFound{}) match regardless of message
func (E NotFound) Is(target error) bool {
	_, ok := target.(NotFound)
	return ok
}

// AlreadyExists - Custom error to inform that an item with the same key is already stored
type AlreadyExists struct {
	Msg string
}

// Error - Used to notify that the key already exists
func (E AlreadyExists) Error() string {
	if E.Msg == "" {
		return "item already exists"
	}
	return E.Msg
}

// Is - Makes errors.Is(err, AlreadyExists{}) match regardless of message
func (E AlreadyExists) Is(target error) bool {
	_, ok := target.(AlreadyExists)
	return ok
}

// TableFull - Custom error to inform that the relocation budget was exhausted without finding a free slot
type TableFull struct {
	Msg string
}

// Error - Used to notify that the tables can't take the item
func (E TableFull) Error() string {
	if E.Msg == "" {
		return "table full"
	}
	return E.Msg
}

// Is - Makes errors.Is(err, TableFull{}) match regardless of message
func (E TableFull) Is(target error) bool {
	_, ok := target.(TableFull)
	return ok
}

// InvalidConfig - Custom error to inform that a construction parameter is out of range
type InvalidConfig struct {
	Msg string
}

// Error - Used to notify about a bad configuration
func (E InvalidConfig) Error() string {
	if E.Msg == "" {
		return "invalid configuration"
	}
	return E.Msg
}

// Is - Makes errors.Is(err, InvalidConfig{}) match regardless of message
func (E InvalidConfig) Is(target error) bool {
	_, ok := target.(InvalidConfig)
	return ok
}

// OutOfMemory - Custom error to inform that the tables could not be allocated
type OutOfMemory struct {
	Msg string
}

// Error - Used to notify about a failed allocation
func (E OutOfMemory) Error() string {
	if E.Msg == "" {
		return "out of memory"
	}
	return E.Msg
}

// Is - Makes errors.Is(err, OutOfMemory{}) match regardless of message
func (E OutOfMemory) Is(target error) bool {
	_, ok := target.(OutOfMemory)
	return ok
}

// Unsupported - Custom error to inform that a feature was not enabled at creation
type Unsupported struct {
	Msg string
}

// Error - Used to notify about a disabled feature
func (E Unsupported) Error() string {
	if E.Msg == "" {
		return "unsupported"
	}
	return E.Msg
}

// Is - Makes errors.Is(err, Unsupported{}) match regardless of message
func (E Unsupported) Is(target error) bool {
	_, ok := target.(Unsupported)
	return ok
}

// InvalidState - Custom error to inform about misuse, such as using an index after Destroy
type InvalidState struct {
	Msg string
}

// Error - Used to notify about misuse
func (E InvalidState) Error() string {
	if E.Msg == "" {
		return "invalid state"
	}
	return E.Msg
}

// Is - Makes errors.Is(err, InvalidState{}) match regardless of message
func (E InvalidState) Is(target error) bool {
	_, ok := target.(InvalidState)
	return ok
}
