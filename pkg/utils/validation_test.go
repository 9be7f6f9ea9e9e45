package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=10"`
	Color string `json:"color" validate:"required,oneof=rose gold"`
	Step  *int   `json:"step" validate:"omitempty,gte=1,lte=6"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct returns nil", func(t *testing.T) {
		assert.Nil(t, ValidateStruct(sampleRequest{Name: "Ana", Color: "rose"}))
	})

	t.Run("uses json tag names", func(t *testing.T) {
		fields := ValidateStruct(sampleRequest{Color: "rose"})
		require.NotNil(t, fields)
		assert.Equal(t, "name is required", fields["name"])
	})

	t.Run("oneof message lists choices", func(t *testing.T) {
		fields := ValidateStruct(sampleRequest{Name: "Ana", Color: "crimson"})
		require.NotNil(t, fields)
		assert.Equal(t, "color must be one of: rose gold", fields["color"])
	})

	t.Run("range tags on optional pointer fields", func(t *testing.T) {
		step := 9
		fields := ValidateStruct(sampleRequest{Name: "Ana", Color: "rose", Step: &step})
		require.NotNil(t, fields)
		assert.Equal(t, "step must be at most 6", fields["step"])
	})

	t.Run("collects all violations", func(t *testing.T) {
		step := 0
		fields := ValidateStruct(sampleRequest{Name: "a very long name here", Color: "", Step: &step})
		require.NotNil(t, fields)
		assert.Len(t, fields, 3)
	})
}
