package user

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Password  string    `json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"createdAt"`
}

// Role is a display label, not an authorization level.
const DefaultRole = "Developer"
