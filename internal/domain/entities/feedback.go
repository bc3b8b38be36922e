package entities

import "time"

// Feedback captures product feedback submitted from the frontend.
type Feedback struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Rating      int       `json:"rating" db:"rating"`
	Category    string    `json:"category" db:"category"`
	Message     string    `json:"message" db:"message"`
	Suggestions string    `json:"suggestions" db:"suggestions"`
	Timestamp   string    `json:"timestamp" db:"client_timestamp"`
	UserAgent   string    `json:"user_agent" db:"user_agent"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
