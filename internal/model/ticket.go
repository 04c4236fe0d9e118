package model

// Ticket is one booked reservation.
//
// Train is a snapshot of the train as it stood at booking time, not a live
// reference — the catalog's copy keeps changing as other seats are booked,
// and the ticket should keep showing what was actually reserved.
type Ticket struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	TravelDate  string `json:"travel_date"`
	Train       Train  `json:"train"`
}

// Clone returns a deep copy of the ticket.
func (t *Ticket) Clone() Ticket {
	cp := *t
	cp.Train = t.Train.Clone()
	return cp
}
