package entity

// User is the minimal authentication identity emitted by the authentication
// provider. It is not the Account; it is the pointer used to fetch or create
// one.
type User struct {
	UID   string // Provider-assigned unique identifier.
	Email string // Email the identity was registered with.
}
