package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveBaseCategory(t *testing.T) {
	cases := map[string]string{
		"Eye Tweezer":              CategoryEyelash,
		"Eyelash Tweezer - Curved": CategoryEyelash,
		"LASH GLUE FOR EYES":       CategoryEyelash,
		"Beauty Care Scissors":     CategoryBeautyCare,
		"":                         CategoryBeautyCare,
	}
	for name, want := range cases {
		assert.Equal(t, want, DeriveBaseCategory(name), name)
	}
}

func TestDescription_IsEmptyAndText(t *testing.T) {
	var nilDesc *Description
	assert.True(t, nilDesc.IsEmpty())
	assert.Equal(t, "", nilDesc.Text())
	assert.True(t, (&Description{}).IsEmpty())

	d := &Description{Size: "10cm", Finish: "Matte"}
	assert.False(t, d.IsEmpty())
	assert.Equal(t, "10cm Matte", d.Text())
}
