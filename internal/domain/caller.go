package domain

// Role is a role claim carried by the caller's token.
type Role string

// Capability is an action the service authorizes explicitly.
type Capability string

const (
	// CapabilitySoftwareAdmin allows changing the catalog.
	CapabilitySoftwareAdmin Capability = "SoftwareAdmin"
)

// Caller is the authenticated identity making a request.
type Caller struct {
	Subject string
	Roles   []Role
}

// HasRole reports whether the caller carries role.
func (c Caller) HasRole(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Policy maps capabilities to the roles that grant them.
type Policy map[Capability][]Role

// Allows reports whether any of the caller's roles grants capability.
func (p Policy) Allows(c Caller, capability Capability) bool {
	for _, role := range p[capability] {
		if c.HasRole(role) {
			return true
		}
	}
	return false
}
