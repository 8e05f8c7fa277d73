package auth

import (
	"github.com/spec-kit/issue-tracker/internal/domain"
)

// DefaultPolicy grants catalog administration to adminRole.
func DefaultPolicy(adminRole string) domain.Policy {
	return domain.Policy{
		domain.CapabilitySoftwareAdmin: {domain.Role(adminRole)},
	}
}
