package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Phone string   `json:"phone" validate:"required,phone"`
	Area  string   `json:"area" validate:"required,posnumstr"`
	Age   string   `json:"age" validate:"omitempty,nonnegnumstr"`
	Kind  string   `json:"kind" validate:"omitempty,oneof=sale rent lease"`
	Tags  []string `json:"tags" validate:"omitempty,min=1"`
}

func TestValidateCustomTags(t *testing.T) {
	errs := Validate(&sample{Phone: "12", Area: "-4", Age: "abc", Kind: "swap"})

	assert.Equal(t, "Invalid phone number", errs["phone"])
	assert.Equal(t, "Must be a positive number", errs["area"])
	assert.Equal(t, "Must be a non-negative number", errs["age"])
	assert.Equal(t, "Must be one of: sale, rent, lease", errs["kind"])
}

func TestValidatePasses(t *testing.T) {
	assert.Nil(t, Validate(&sample{Phone: "+919876543210", Area: "8000", Age: "0", Kind: "rent"}))
}

func TestStructKeepsNamespaces(t *testing.T) {
	type inner struct {
		Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	}
	type outer struct {
		Coordinates inner `json:"coordinates"`
	}

	errs := Struct(&outer{Coordinates: inner{Lat: 999}})
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "outer.coordinates.lat", errs[0].Namespace())
		assert.Equal(t, "Value must be at most 90", Message(errs[0]))
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, ValidateVar("12.5", "numericstr"))
	assert.Error(t, ValidateVar("twelve", "numericstr"))
}

func TestCoordinateTags(t *testing.T) {
	assert.NoError(t, ValidateVar(28.6, "lat"))
	assert.Error(t, ValidateVar(999.0, "lat"))
	assert.NoError(t, ValidateVar(-179.9, "lng"))
	assert.Error(t, ValidateVar(181.0, "lng"))
}
