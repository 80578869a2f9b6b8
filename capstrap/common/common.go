package common

// Credentials carries the identity material used when a target host is
// reached over SSH or when a command has to be elevated through sudo.
// Zero values mean "not provided"; callers decide what is mandatory.
type Credentials struct {
	User          string
	Password      string
	KeyPassphrase string
	SudoPassword  string
}
