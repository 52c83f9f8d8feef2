package model

// User represents a registered account
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// FailedLogin is one failed sign-in attempt, kept for up to a week
type FailedLogin struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"` // canonical format, see model.TimeFormat
	Origin    string `json:"origin"`    // client network address
}
