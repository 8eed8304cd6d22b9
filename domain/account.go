package domain

// Account is a registered identity. Password holds the stored credential,
// which is a bcrypt hash unless plaintext compatibility is enabled.
type Account struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
}
