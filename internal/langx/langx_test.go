package langx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/james-lawrence/kad/internal/langx"
)

func TestAutoptr(t *testing.T) {
	require.Equal(t, 1, *langx.Autoptr(1))
}

func TestAutoderef(t *testing.T) {
	require.Equal(t, 1, langx.Autoderef(langx.Autoptr(1)))
	require.Equal(t, 0, langx.Autoderef[int](nil))
}

func TestFirstNonZero(t *testing.T) {
	require.Equal(t, 2, langx.FirstNonZero(0, 2, 3))
	require.Equal(t, 0, langx.FirstNonZero(0, 0))
}

func TestDefaultIfZero(t *testing.T) {
	require.Equal(t, 2, langx.DefaultIfZero(2, 0))
	require.Equal(t, 3, langx.DefaultIfZero(2, 3))
}

func TestClone(t *testing.T) {
	type config struct {
		a int
		b string
	}

	v := langx.Clone(config{a: 1}, func(c *config) { c.b = "derp" })
	require.Equal(t, config{a: 1, b: "derp"}, v)

	composed := langx.Compose[config](
		func(c *config) { c.a = 2 },
		func(c *config) { c.b = "herp" },
	)
	require.Equal(t, config{a: 2, b: "herp"}, langx.Clone(config{}, composed))
}
