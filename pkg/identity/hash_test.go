package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestHashIdentifier_NormalizesBeforeHashing(t *testing.T) {
	a := HashIdentifier(strPtr("  Ana@X.com "))
	b := HashIdentifier(strPtr("ana@x.com"))

	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, *a, *b)
	assert.Len(t, *a, 64)
}

func TestHashIdentifier_DistinctInputs(t *testing.T) {
	a := HashIdentifier(strPtr("ana@x.com"))
	b := HashIdentifier(strPtr("ana@y.com"))

	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotEqual(t, *a, *b)
}

func TestHashIdentifier_EmptyValues(t *testing.T) {
	assert.Nil(t, HashIdentifier(nil))
	assert.Nil(t, HashIdentifier(strPtr("")))
	assert.Nil(t, HashIdentifier(strPtr("   ")))
}
