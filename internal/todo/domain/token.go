package domain

// TokenPair is what a successful login returns: the short-lived access
// token and the day-scale refresh token, both signed JWTs.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
