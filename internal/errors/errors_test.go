package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditError_Error(t *testing.T) {
	base := fmt.Errorf("connection refused")

	tests := []struct {
		name string
		err  *AuditError
		want string
	}{
		{
			name: "with page",
			err:  NewTransportError("fetch_page", "/orgs/acme/repos", base).WithPage(2),
			want: "fetch_page failed on /orgs/acme/repos (page 2): connection refused",
		},
		{
			name: "with target",
			err:  NewTransportError("probe", "/user/repos", base),
			want: "probe failed on /user/repos: connection refused",
		},
		{
			name: "bare",
			err:  &AuditError{Op: "probe", Err: base},
			want: "probe failed: connection refused",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestAuditError_Unwrapping(t *testing.T) {
	base := fmt.Errorf("dial tcp: %w", ErrConnectionFail)
	err := NewTransportError("request", "/user", base)

	assert.ErrorIs(t, err, ErrConnectionFail)
	assert.Equal(t, base, errors.Unwrap(err))

	var ae *AuditError
	assert.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &ae)
	assert.Equal(t, ErrorTypeTransport, ae.Type)
}

func TestAuditError_IsMatchesByType(t *testing.T) {
	assert.ErrorIs(t, NewAmbiguousError("probe", "/issues", 409), ErrAmbiguousProbe)
	assert.ErrorIs(t,
		NewTransportError("request", "/user", fmt.Errorf("deadline: %w", ErrTimeout)),
		ErrTimeout)
	assert.NotErrorIs(t, NewTransportError("request", "/user", fmt.Errorf("boom")), ErrTimeout)
}

func TestIsTransportError(t *testing.T) {
	assert.True(t, IsTransportError(NewTransportError("request", "/user", fmt.Errorf("eof"))))
	assert.True(t, IsTransportError(fmt.Errorf("outer: %w", ErrRetryExhausted)))
	assert.False(t, IsTransportError(NewAmbiguousError("probe", "/issues", 409)))
	assert.False(t, IsTransportError(fmt.Errorf("plain failure")))
}
