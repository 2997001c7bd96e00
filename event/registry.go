package event

var typeToName = map[EventType]string{
	EventTick:         "Tick",
	EventTap:          "EventTap",
	EventQuit:         "EventQuit",
	EventMuteToggle:   "EventMuteToggle",
	EventResize:       "EventResize",
	EventSpinResolved: "EventSpinResolved",
	EventSpinFailed:   "EventSpinFailed",
	EventValuesLoaded: "EventValuesLoaded",
	EventValuesFailed: "EventValuesFailed",
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "Unknown"
}

// String implements fmt.Stringer
func (et EventType) String() string {
	return GetEventName(et)
}
