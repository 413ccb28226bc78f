package entity

import "time"

// Client representa un cliente de la práctica. Phone es nil cuando no se informó.
type Client struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
