package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeInvalidArgument, "bad size")
	if err.Code != ErrCodeInvalidArgument {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidArgument, err.Code)
	}
	if err.Error() != "INVALID_ARGUMENT: bad size" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestCallback_WrapsCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Callback("map", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}
	appErr, ok := AsAppError(err)
	if !ok {
		t.Fatal("expected AppError")
	}
	if appErr.Code != ErrCodeCallback {
		t.Errorf("expected CALLBACK_FAILED, got %s", appErr.Code)
	}
	if appErr.Details["operator"] != "map" {
		t.Errorf("expected operator=map, got %v", appErr.Details["operator"])
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestCallback_Nil(t *testing.T) {
	if err := Callback("map", nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestCallback_DoesNotDoubleWrap(t *testing.T) {
	inner := Callback("filter", stderrors.New("x"))
	outer := Callback("map", fmt.Errorf("stage: %w", inner))
	appErr, _ := AsAppError(outer)
	if appErr.Details["operator"] != "filter" {
		t.Errorf("expected innermost operator to win, got %v", appErr.Details["operator"])
	}
}

func TestLeafType(t *testing.T) {
	err := LeafType("x", "int")
	if err.Code != ErrCodeLeafType {
		t.Errorf("expected LEAF_TYPE, got %s", err.Code)
	}
	if err.Details["got"] != "string" {
		t.Errorf("expected got=string, got %v", err.Details["got"])
	}
}

func TestCancelled(t *testing.T) {
	err := Cancelled("iterate", context.Canceled)
	if !stderrors.Is(err, context.Canceled) {
		t.Error("expected context.Canceled in chain")
	}
	if !IsCode(err, ErrCodeCancelled) {
		t.Error("expected CANCELLED code")
	}
}

func TestIsCode_PlainError(t *testing.T) {
	if IsCode(stderrors.New("plain"), ErrCodeIO) {
		t.Error("plain error should not match any code")
	}
}

func TestWithDetail(t *testing.T) {
	err := InvalidConfig("bad").WithDetail("field", "words.top")
	if err.Details["field"] != "words.top" {
		t.Errorf("expected detail, got %v", err.Details)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeCallback, 1},
		{ErrCodeCancelled, 130},
		{ErrCodeInvalidConfig, 2},
		{ErrorCode("UNKNOWN"), 1},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			if got := ExitCode(tc.code); got != tc.want {
				t.Errorf("ExitCode(%s) = %d, want %d", tc.code, got, tc.want)
			}
		})
	}
}
