package types

import "github.com/golang-jwt/jwt/v5"

// Claims are the access-token claims issued by the identity service.
// Only the user id is consumed here; ownership checks rely on it.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"eml,omitempty"`
	Role   string `json:"rol,omitempty"`
	jwt.RegisteredClaims
}
