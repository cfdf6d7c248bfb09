package employee

import "time"

type Employee struct {
	ID        string
	Name      string
	PayRate   float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
