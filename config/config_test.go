package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestGetEnvInt(t *testing.T) {
	defer os.Unsetenv("SNAKE_TEST_INT")

	require.Equal(t, 7, getEnvInt("SNAKE_TEST_INT", 7))

	os.Setenv("SNAKE_TEST_INT", "12")
	require.Equal(t, 12, getEnvInt("SNAKE_TEST_INT", 7))

	os.Setenv("SNAKE_TEST_INT", "twelve")
	require.Equal(t, 7, getEnvInt("SNAKE_TEST_INT", 7))
}

func TestTickLimit(t *testing.T) {
	require.Equal(t, rate.Limit(5), TickLimit(5))
	require.Equal(t, rate.Limit(RefreshRate), TickLimit(0))
}
