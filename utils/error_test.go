package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"wrapped invalid", fmt.Errorf("%w: id", ErrInvalidArgument), http.StatusBadRequest},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"render", ErrRender, http.StatusInternalServerError},
		{"storage", ErrStorage, http.StatusInternalServerError},
		{"store", fmt.Errorf("%w: boom", ErrStore), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("%s: HTTPStatus=%d want %d", tc.name, got, tc.want)
		}
	}
}

func TestPublicMessageHidesDetail(t *testing.T) {
	err := fmt.Errorf("%w: dial tcp 10.0.0.3:3306: connection refused", ErrStore)
	if got := PublicMessage(err); got != "internal error" {
		t.Fatalf("PublicMessage=%q", got)
	}
	if got := PublicMessage(fmt.Errorf("%w: contracts/9", ErrNotFound)); got != "not found" {
		t.Fatalf("PublicMessage=%q", got)
	}
}

func TestFailureModeString(t *testing.T) {
	if FailOpen.String() != "fail-open" || FailClosed.String() != "fail-closed" {
		t.Fatalf("unexpected names %q %q", FailOpen, FailClosed)
	}
}
