package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyAllows(t *testing.T) {
	policy := Policy{CapabilitySoftwareAdmin: {"SoftwareCenter"}}

	admin := Caller{Subject: "carl@aol.com", Roles: []Role{"SoftwareCenter"}}
	other := Caller{Subject: "carl@aol.com", Roles: []Role{"TacoNose"}}

	assert.True(t, policy.Allows(admin, CapabilitySoftwareAdmin))
	assert.False(t, policy.Allows(other, CapabilitySoftwareAdmin))
	assert.False(t, Policy{}.Allows(admin, CapabilitySoftwareAdmin))
}
