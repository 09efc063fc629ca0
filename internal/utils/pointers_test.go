package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-internship-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestPointers(t *testing.T) {
	require.Equal(t, "", utils.Value[string](nil))
	require.Equal(t, "zone", utils.Value(utils.Ptr("zone")))
	require.Equal(t, 3, utils.ValueOr(nil, 3))
	require.Equal(t, 7, utils.ValueOr(utils.Ptr(7), 3))

	v := 1
	p := utils.Ptr(v)
	*p = 2
	require.Equal(t, 1, v)
}
