// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole represents the authorization level carried by an access token.
type UserRole string

const (
	// RoleAdmin reviews leads and publishes decks.
	RoleAdmin UserRole = "admin"

	// RoleEditor may publish decks but not read leads.
	RoleEditor UserRole = "editor"
)

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level() && r.level() > 0
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 20
	case RoleEditor:
		return 10
	default:
		return 0
	}
}
