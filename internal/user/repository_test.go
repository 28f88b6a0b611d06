package user

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsForeignKeyViolation(t *testing.T) {
	fkErr := &pq.Error{Code: "23503", Constraint: "groups_created_by_fkey"}

	if !isForeignKeyViolation(fkErr) {
		t.Error("expected a 23503 error to be detected as a foreign key violation")
	}
	if !isForeignKeyViolation(fmt.Errorf("failed to delete user: %w", fkErr)) {
		t.Error("expected a wrapped 23503 error to be detected as a foreign key violation")
	}
	if isForeignKeyViolation(&pq.Error{Code: "23505"}) {
		t.Error("expected a unique violation not to be detected as a foreign key violation")
	}
	if isForeignKeyViolation(fmt.Errorf("plain error")) {
		t.Error("expected a non-pq error not to be detected as a foreign key violation")
	}
}
