package model

import "time"

type Message struct {
	ID        string
	Name      string
	Email     string
	Company   *string // Nullable
	Body      string
	CreatedAt time.Time
	IsRead    bool
}
