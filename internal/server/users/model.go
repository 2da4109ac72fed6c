package users

// User is an account known to the mock API.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	Roles        []string
	MFAEnabled   bool
	Locked       bool
	ServerError  bool
}
