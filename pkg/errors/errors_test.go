package errors

import (
	stderrors "errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := New(ErrCodeInvalidVersion, "bad version %q", "3")
	want := `INVALID_VERSION: bad version "3"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetching %s", "flask")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if got := err.Error(); got != "NETWORK_ERROR: fetching flask: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs_MatchesCode(t *testing.T) {
	err := New(ErrCodePackageNotFound, "no such package")

	if !Is(err, ErrCodePackageNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNetwork) {
		t.Error("Is should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnpinned, "x")); got != ErrCodeUnpinned {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeUnpinned)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeIncompatible, "flask==1.0 not compatible with Python 3.6")
	if got := UserMessage(err); got != "flask==1.0 not compatible with Python 3.6" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
