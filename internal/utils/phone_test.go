package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	require.Equal(t, "265888123456", NormalizePhone("+265 888 123 456"))
	require.Equal(t, "0888123456", NormalizePhone("0888-123-456"))
	require.Equal(t, "", NormalizePhone("no digits here"))
}

func TestValidPhone(t *testing.T) {
	require.True(t, ValidPhone("0888123456"))
	require.True(t, ValidPhone("+265888123456"))
	require.True(t, ValidPhone("123456789"))

	require.False(t, ValidPhone("12345678"))
	require.False(t, ValidPhone("1234567890123456"))
	require.False(t, ValidPhone(""))
}
