package config

import (
	"errors"
	"strings"

	"github.com/samber/oops"
)

// Role selects the schema and file used by a SyncConfig.
type Role int

const (
	RoleServer Role = iota + 1
	RoleClient
)

// ErrUnknownRole is returned by ParseRole and Load for anything other than
// server or client.
var ErrUnknownRole = errors.New("unknown role")

func (r Role) String() string {
	switch r {
	case RoleServer:
		return "server"
	case RoleClient:
		return "client"
	default:
		return "unknown"
	}
}

// FileName returns the base name of the role's config file.
func (r Role) FileName() string {
	return "serversync-" + r.String() + ".cfg"
}

// ParseRole accepts "server" or "client", case insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "server":
		return RoleServer, nil
	case "client":
		return RoleClient, nil
	}
	return 0, oops.With("role", s).Wrapf(ErrUnknownRole, "%q", s)
}
