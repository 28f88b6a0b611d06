package todo

import (
	"errors"
	"testing"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func TestCreateRequestValid(t *testing.T) {
	req := &CreateTodoRequest{UserID: int64Ptr(1), Content: "buy milk"}

	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if req.Severity == nil || *req.Severity != SeverityDefault {
		t.Error("severity should default to 2")
	}
}

func TestCreateRequestEmptyContent(t *testing.T) {
	req := &CreateTodoRequest{UserID: int64Ptr(1), Content: "   "}

	if err := req.Validate(); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}

func TestCreateRequestScope(t *testing.T) {
	both := &CreateTodoRequest{UserID: int64Ptr(1), GroupID: int64Ptr(2), Content: "x"}
	if err := both.Validate(); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("both scopes set should fail, got %v", err)
	}

	neither := &CreateTodoRequest{Content: "x"}
	if err := neither.Validate(); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("no scope set should fail, got %v", err)
	}
}

func TestCreateRequestSeverity(t *testing.T) {
	for _, severity := range []int{1, 2, 3} {
		req := &CreateTodoRequest{UserID: int64Ptr(1), Content: "x", Severity: intPtr(severity)}
		if err := req.Validate(); err != nil {
			t.Errorf("severity %d should be valid, got %v", severity, err)
		}
	}

	for _, severity := range []int{0, 4, -1} {
		req := &CreateTodoRequest{UserID: int64Ptr(1), Content: "x", Severity: intPtr(severity)}
		if err := req.Validate(); !errors.Is(err, ErrInvalidSeverity) {
			t.Errorf("severity %d should fail, got %v", severity, err)
		}
	}
}

func TestUpdateRequestStatus(t *testing.T) {
	for _, status := range []Status{StatusTodo, StatusOngoing, StatusFinished} {
		s := status
		req := &UpdateTodoRequest{Status: &s}
		if err := req.Validate(); err != nil {
			t.Errorf("status %q should be valid, got %v", status, err)
		}
	}

	bad := Status("done")
	req := &UpdateTodoRequest{Status: &bad}
	if err := req.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("unknown status should fail, got %v", err)
	}
}

func TestUpdateRequestPartial(t *testing.T) {
	// An empty update is allowed; COALESCE keeps existing values.
	req := &UpdateTodoRequest{}
	if err := req.Validate(); err != nil {
		t.Errorf("empty update should be valid, got %v", err)
	}

	empty := ""
	withEmpty := &UpdateTodoRequest{Content: &empty}
	if err := withEmpty.Validate(); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("blank content should fail, got %v", err)
	}
}
