package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"corpbooking/internal/domains/room/repository"
)

func TestFilters(t *testing.T) {
	filter := repository.ByName("Training Center")
	where, args := filter.GetWhereClause()
	assert.Equal(t, "(rooms.name = :name)", where)
	assert.Equal(t, map[string]any{"name": "Training Center"}, args)

	filter = repository.ByID("r-1")
	where, args = filter.GetWhereClause()
	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "r-1"}, args)
}
