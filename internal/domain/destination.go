package domain

// The single point all vehicles converge on, with the wall-clock time
// everyone should arrive by. TargetTime is a canonical "HH:mm" string
// (a time of day, not a date); empty when no arrival constraint exists.
// Owned by the surrounding system and read-only to the scheduler.
type Destination struct {
	Name       string
	Location   Coordinates
	Address    string
	TargetTime string
}
