package domain

// Sample is one labelled output of a generator cycle: the resolved frames
// plus the label derived from their provenance.
type Sample struct {
	ID     string   `json:"id"`
	Frames []*Frame `json:"frames"`
	Label  any      `json:"label,omitempty"`
}
