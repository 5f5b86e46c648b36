package user

// Principal is the authenticated caller as asserted by the identity provider.
type Principal struct {
	UserID      string
	DisplayName string
	Email       string
}
