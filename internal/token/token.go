// Package token decodes the opaque bearer credential issued by the backend.
//
// The credential is a signed three-part token; the client only reads the
// payload segment. Signature verification stays on the server, so the parse
// here is deliberately unverified and must fail closed on any malformed
// input.
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the application role carried in the credential payload.
type Role string

const (
	RoleParent     Role = "parent"
	RoleChild      Role = "child"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether the role is one the application knows.
func (r Role) Valid() bool {
	switch r {
	case RoleParent, RoleChild, RoleSuperAdmin:
		return true
	}
	return false
}

// Identity is the decoded credential payload.
type Identity struct {
	ID       string
	Name     string
	Role     Role
	FamilyID string
	Avatar   string
}

var (
	ErrMalformed  = errors.New("malformed credential")
	ErrIncomplete = errors.New("credential missing identity claims")
)

type identityClaims struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	FamilyID string `json:"family_id"`
	Avatar   string `json:"avatar"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode extracts the identity from a bearer credential without verifying
// its signature. Any malformed segment, bad base64, or invalid JSON yields
// an error rather than a partial identity.
func Decode(credential string) (*Identity, error) {
	claims := &identityClaims{}
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if claims.UserID == "" || claims.Role == "" {
		return nil, ErrIncomplete
	}

	return &Identity{
		ID:       claims.UserID,
		Name:     claims.Name,
		Role:     Role(claims.Role),
		FamilyID: claims.FamilyID,
		Avatar:   claims.Avatar,
	}, nil
}

// DecodeRole returns just the role from a credential, or "" when the
// credential cannot be decoded. Used by the edge guard, which only routes
// on role.
func DecodeRole(credential string) Role {
	identity, err := Decode(credential)
	if err != nil {
		return ""
	}
	return identity.Role
}
