// Package model defines the persisted record types.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Seat cell states. A seat map cell is always one of these two values.
const (
	SeatFree   = 0
	SeatBooked = 1
)

// Train represents one train on the network.
//
// The `json:"..."` struct tags fix the on-disk field names. We use snake_case
// uniformly for every persisted record — the reader and writer must agree on
// one convention, so it is applied once here and nowhere else.
//
// Seats is a 2-D grid indexed [row][column]; cell values are restricted to
// SeatFree/SeatBooked. Stations lists the route in travel direction, and
// StationArrivalTimes maps each station name to its arrival time of day
// ("HH:MM"), one entry per station.
type Train struct {
	ID                  string            `json:"id"`
	Number              string            `json:"number"`
	Seats               [][]int           `json:"seats"`
	Stations            []string          `json:"stations"`
	StationArrivalTimes map[string]string `json:"station_arrival_times"`
}

// SeatInBounds reports whether (row, col) addresses a cell of the seat grid.
// Rows may in principle have different lengths, so the column bound is
// checked against the addressed row.
func (t *Train) SeatInBounds(row, col int) bool {
	return row >= 0 && row < len(t.Seats) && col >= 0 && col < len(t.Seats[row])
}

// SeatTaken reports whether the cell at (row, col) is booked.
// The caller must have checked SeatInBounds first.
func (t *Train) SeatTaken(row, col int) bool {
	return t.Seats[row][col] == SeatBooked
}

// Clone returns a deep copy of the train.
//
// Trains are snapshotted into tickets at booking time, and the catalog hands
// out copies rather than aliases into its own state. Without a deep copy a
// later seat flip would silently rewrite every snapshot sharing the grid.
func (t *Train) Clone() Train {
	cp := *t
	if t.Seats != nil {
		cp.Seats = make([][]int, len(t.Seats))
		for i, row := range t.Seats {
			cp.Seats[i] = append([]int(nil), row...)
		}
	}
	if t.Stations != nil {
		cp.Stations = append([]string(nil), t.Stations...)
	}
	if t.StationArrivalTimes != nil {
		cp.StationArrivalTimes = make(map[string]string, len(t.StationArrivalTimes))
		for k, v := range t.StationArrivalTimes {
			cp.StationArrivalTimes[k] = v
		}
	}
	return cp
}
