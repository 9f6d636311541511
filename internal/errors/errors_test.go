package errors_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/wortflash/internal/errors"
)

func TestRequestError_MatchesKind(t *testing.T) {
	err := fmt.Errorf("search: %w", errors.NewLookupError("service unavailable", io.ErrUnexpectedEOF))

	assert.True(t, errors.Is(err, errors.ErrLookup))
	assert.False(t, errors.Is(err, errors.ErrChat))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF), "wrapped cause stays reachable")

	var reqErr *errors.RequestError
	assert.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "lookup", reqErr.Op)
}

func TestAppError_Formatting(t *testing.T) {
	err := errors.NewUpstreamError("invalid response from AI", io.EOF)
	assert.Equal(t, 502, err.Status)
	assert.Equal(t, "UPSTREAM_ERROR: invalid response from AI (EOF)", err.Error())

	assert.Equal(t, "NOT_CONFIGURED: API key not configured", errors.NewNotConfiguredError("API key").Error())
}

func TestPersistenceError_Unwraps(t *testing.T) {
	err := &errors.PersistenceError{Op: "write", Key: "german_learner_profile", Err: io.ErrClosedPipe}
	assert.True(t, errors.Is(err, io.ErrClosedPipe))
	assert.Contains(t, err.Error(), "german_learner_profile")
}
