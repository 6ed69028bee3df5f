package models

import "github.com/golang-jwt/jwt/v5"

// AppMetadata is the server-controlled metadata Supabase embeds in access tokens.
type AppMetadata struct {
	Role UserRole `json:"role,omitempty"`
}

// JWTClaims represents a validated access token. UserID and Role are derived from the
// subject and app_metadata after parsing.
type JWTClaims struct {
	UserID      string      `json:"-"`
	Role        UserRole    `json:"-"`
	Email       string      `json:"email,omitempty"`
	DBRole      string      `json:"role,omitempty"`
	AppMetadata AppMetadata `json:"app_metadata"`
	jwt.RegisteredClaims
}
