package chisql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapSchemaExactMatch(t *testing.T) {
	s := MapSchema{"users": {"id", "name"}}
	require.True(t, s.Exists("users"))
	cols, ok := s.ColumnsOf("users")
	require.True(t, ok)
	require.Equal(t, []string{"id", "name"}, cols)
}

func TestMapSchemaCaseInsensitiveLookup(t *testing.T) {
	s := MapSchema{"Users": {"id"}}
	require.True(t, s.Exists("users"))
	require.True(t, s.Exists("USERS"))
	cols, ok := s.ColumnsOf("uSeRs")
	require.True(t, ok)
	require.Equal(t, []string{"id"}, cols)
}

func TestMapSchemaUnknownTable(t *testing.T) {
	s := MapSchema{"users": {"id"}}
	require.False(t, s.Exists("orders"))
	cols, ok := s.ColumnsOf("orders")
	require.False(t, ok)
	require.Nil(t, cols)
}

func TestMapSchemaEmpty(t *testing.T) {
	s := MapSchema{}
	require.False(t, s.Exists("anything"))
}
