package models

import "fmt"

// Role identifies which collection a user-facing account lives in.
// The set is closed: adding a role means extending every switch below.
type Role string

const (
	RolePlayer      Role = "player"
	RoleInstitution Role = "institution"
	RoleOfficial    Role = "official"
	RoleAdmin       Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePlayer, RoleInstitution, RoleOfficial, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Table maps a role to the table backing its account records.
func (r Role) Table() (string, error) {
	switch r {
	case RolePlayer:
		return "players", nil
	case RoleInstitution:
		return "institutions", nil
	case RoleOfficial:
		return "technical_officials", nil
	case RoleAdmin:
		return "admins", nil
	}
	return "", fmt.Errorf("unknown role %q", string(r))
}

func (r Role) String() string { return string(r) }
