package domain

import "time"

// Worker is a factory-floor worker tracked on the roster. The id is the
// badge number assigned on the floor, not a generated key.
type Worker struct {
	ID         string
	Name       string
	Department string
	CreatedAt  time.Time
}
