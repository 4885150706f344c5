package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"corpbooking/shared/repository"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPqCodes(t *testing.T) {
	unique := fmt.Errorf("failed to insert data (vehicle): %w", &pq.Error{Code: "23505"})
	foreignKey := fmt.Errorf("failed to delete data (vehicle): %w", &pq.Error{Code: "23503"})

	assert.True(t, repository.IsUniqueViolation(unique))
	assert.False(t, repository.IsForeignKeyViolation(unique))
	assert.True(t, repository.IsForeignKeyViolation(foreignKey))
	assert.False(t, repository.IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, repository.IsUniqueViolation(nil))
}
