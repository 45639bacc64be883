package auth

// Claims representa la información extraída del access token.
type Claims struct {
	UserID   string
	Username string
	Email    string
}
