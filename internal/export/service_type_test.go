package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveServiceType(t *testing.T) {
	overrides := map[int64]string{1: "A", 2: "X", 3: "", 4: "0"}

	assert.Equal(t, ServiceCompact, ResolveServiceType(ServiceStandard, overrides, 1))
	assert.Equal(t, ServiceStandard, ResolveServiceType(ServiceStandard, overrides, 2))
	assert.Equal(t, ServiceStandard, ResolveServiceType(ServiceStandard, overrides, 3))
	assert.Equal(t, ServiceStandard, ResolveServiceType(ServiceCompact, overrides, 4))
	assert.Equal(t, ServiceStandard, ResolveServiceType(ServiceStandard, overrides, 99))
	assert.Equal(t, ServiceStandard, ResolveServiceType(ServiceStandard, nil, 1))

	// broken default never leaks into output
	assert.Equal(t, ServiceStandard, ResolveServiceType(ServiceType("Z"), nil, 1))
}

func TestConstantsValidate(t *testing.T) {
	assert.NoError(t, DefaultConstants().Validate())

	c := DefaultConstants()
	c.DefaultServiceType = "X"
	c.ShipDatePolicy = "tomorrow"
	c.FileBaseName = " "
	err := c.Validate()
	assert.ErrorContains(t, err, "default_service_type")
	assert.ErrorContains(t, err, "ship_date_policy")
	assert.ErrorContains(t, err, "file_base_name")
}
