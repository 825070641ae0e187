package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	require.Equal(t, 2, p.Page)
	require.Equal(t, 20, p.PerPage)
	require.Equal(t, 45, p.Total)
	require.Equal(t, 3, p.TotalPages)
}

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0, 10)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 50, p.PerPage)
	require.Equal(t, 1, p.TotalPages)
}

func TestNewPaginationEmpty(t *testing.T) {
	require.Equal(t, 0, NewPagination(1, 50, 0).TotalPages)
}
