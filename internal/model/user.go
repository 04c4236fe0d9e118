package model

// User represents a registered account.
//
// WHY NO PASSWORD FIELD?
// Only the bcrypt hash is ever persisted. The raw password exists in memory
// for the lifetime of a session (the Booking Service needs it to re-verify
// the session against the stored collection) but it has no place on the
// record, so the struct simply doesn't carry it — there is nothing for a
// careless json.Marshal to leak.
type User struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PasswordHash  string   `json:"password_hash"`
	TicketsBooked []Ticket `json:"tickets_booked"`
}

// Clone returns a deep copy of the user, tickets included.
func (u *User) Clone() User {
	cp := *u
	if u.TicketsBooked != nil {
		cp.TicketsBooked = make([]Ticket, len(u.TicketsBooked))
		for i := range u.TicketsBooked {
			cp.TicketsBooked[i] = u.TicketsBooked[i].Clone()
		}
	}
	return cp
}
