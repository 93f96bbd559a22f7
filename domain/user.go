package domain

// Account roles as issued by the server.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents the authenticated identity as reported by /api/user-info.
type User struct {
	ID        uint   `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Activated bool   `json:"isActivated"`
	Role      string `json:"ROLE"`
}
