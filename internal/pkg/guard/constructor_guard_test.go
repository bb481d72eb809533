package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("CancelOrderCommand must be created via NewCancelOrderCommand")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("guard_can_be_copied_by_value", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		guardCopy := g

		// Then
		require.NoError(t, guardCopy.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	errRequestNotConstructed := errors.New("request must be created via newRequest")

	type request struct {
		reason string
		guard  guard.ConstructorGuard
	}

	newRequest := func(reason string) (request, error) {
		if reason == "" {
			return request{}, errors.New("reason is required")
		}
		return request{reason: reason, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_validates", func(t *testing.T) {
		r, err := newRequest("changed my mind")

		require.NoError(t, err)
		require.NoError(t, r.guard.Validate(errRequestNotConstructed))
	})

	t.Run("literal_value_fails_validation", func(t *testing.T) {
		r := request{reason: "changed my mind"}

		assert.Equal(t, errRequestNotConstructed, r.guard.Validate(errRequestNotConstructed))
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		r, err := newRequest("")

		require.Error(t, err)
		require.Error(t, r.guard.Validate(errRequestNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
