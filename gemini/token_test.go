package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/casescout"
	"github.com/fwojciec/casescout/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	var _ casescout.TokenCounter = tc

	t.Run("counts tokens in text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "Globex cut onboarding time in half.")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("returns context error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tc.CountTokens(ctx, "Globex")

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		shortCount, err := tc.CountTokens(ctx, "Globex")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(ctx, casescout.FormatPrompt([]*casescout.Record{{
			URL:   "https://acme.example/customers/globex",
			Title: "Globex",
			Body:  "Globex moved three hundred engineers onto the platform in a single quarter.",
		}}, ""))
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})
}

func TestNewTokenCounter(t *testing.T) {
	t.Parallel()

	t.Run("uses own vocabulary for Gemini models", func(t *testing.T) {
		t.Parallel()

		tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
		require.NoError(t, err)

		assert.Equal(t, "gemini-2.0-flash", tc.Model())
		assert.False(t, tc.Estimated())
	})

	t.Run("estimates non-Gemini models", func(t *testing.T) {
		t.Parallel()

		tc, err := gemini.NewTokenCounter("gpt-4o")
		require.NoError(t, err)
		assert.Equal(t, gemini.TokenizerModel, tc.Model())
		assert.True(t, tc.Estimated())

		count, err := tc.CountTokens(context.Background(), "Hello, world!")
		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("rejects unknown Gemini model", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewTokenCounter("gemini-unknown-model")

		assert.Equal(t, casescout.EINVALID, casescout.ErrorCode(err))
	})
}
