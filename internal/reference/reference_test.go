package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/frontdesk/internal/persistence"
)

func TestNationalityCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "USA", NationalityCode("American"))
	assert.Equal(t, "KOR", NationalityCode("Korean"))
	assert.Equal(t, "THA", NationalityCode("Thai"))
	assert.Equal(t, "SWISS"[:3], NationalityCode("Swiss"))
	assert.Equal(t, "NZ", NationalityCode("nz"))
	assert.Equal(t, "", NationalityCode(""))
}

func TestGenderCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "M", GenderCode(persistence.GenderMale))
	assert.Equal(t, "F", GenderCode(persistence.GenderFemale))
	assert.Equal(t, "F", GenderCode(persistence.GenderOther))
}

func TestCatalogs(t *testing.T) {
	t.Parallel()

	assert.Len(t, PortsOfEntry, 3)
	assert.Len(t, AllPortsOfEntry(), 11+17+9)
	assert.Len(t, VisaTypes, 10)
	assert.True(t, IsVisaType(DefaultVisaType))
	assert.False(t, IsVisaType("Student"))
}
