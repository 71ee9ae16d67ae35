// file: internals/features/assessments/assessments/controller/assessment_controller_test.go
package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"cyberassess_backend/internals/helpers/errs"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := errors.New(`ERROR: duplicate key value violates unique constraint "uq_assessments_unit_year_period" (SQLSTATE 23505)`)
	assert.True(t, isDuplicateKey(dup))
	assert.True(t, isDuplicateKey(errors.New("pq: duplicate key value violates unique constraint")))

	assert.False(t, isDuplicateKey(errors.New("dial tcp: connection refused")))
	assert.False(t, isDuplicateKey(nil))
}

// Two concurrent creates can both pass the count pre-check; the second
// insert then trips the unique index and must surface as a conflict, not
// as an opaque 500.
func TestDuplicateCycleInsertMapsToConflict(t *testing.T) {
	raceLoser := errors.New(`ERROR: duplicate key value violates unique constraint "uq_assessments_unit_year_period" (SQLSTATE 23505)`)

	mapped := duplicateToConflict(raceLoser)
	assert.ErrorIs(t, mapped, errs.ErrConflict)

	// Anything else passes through untouched.
	backend := errors.New("read tcp: i/o timeout")
	assert.Equal(t, backend, duplicateToConflict(backend))
	assert.NoError(t, duplicateToConflict(nil))
}
