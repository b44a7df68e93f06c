package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the operator roles recognised by the portal.
// Tokens are issued by the campus SSO service; this API only validates them.
type UserRole string

const (
	// RoleOrganizer is a unit-level student-organization operator.
	RoleOrganizer UserRole = "ORGANIZER"
	// RoleOffice is the central student-affairs office.
	RoleOffice UserRole = "OFFICE"
	// RoleStudent is the public student audience.
	RoleStudent UserRole = "STUDENT"
)

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
