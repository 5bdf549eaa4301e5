package clock

import "time"

// Clock supplies the reference instant for all status derivation. Keeping it
// behind an interface lets tests pin time without touching the system clock.
type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}
