package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authgate/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "alice@example.com", sanitizer.NormalizeEmail("  Alice@Example.COM \n"))
	assert.Equal(t, "", sanitizer.NormalizeEmail("   "))
	assert.Equal(t, "bob", sanitizer.Trim("\tbob "))
}
