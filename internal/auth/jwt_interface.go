package auth

// JWTValidator defines the token verification capability consumed by the
// auth middleware. JWTService is the production implementation; tests
// substitute their own.
type JWTValidator interface {
	ValidateToken(tokenString string) (*CustomClaims, error)
}

// TokenIssuer defines the token issuance capability consumed by the auth
// service.
type TokenIssuer interface {
	GenerateToken(email, name string) (string, error)
}
