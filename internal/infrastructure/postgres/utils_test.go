package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: uniqueViolationCode}
	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert user: %w", unique)),
		"debe detectarse a través de errors.As aunque venga envuelto")

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}),
		"otras violaciones de constraint no son choques de índice único")
	assert.False(t, isUniqueViolation(errors.New("el texto menciona 23505 pero no es un PgError")))
}
