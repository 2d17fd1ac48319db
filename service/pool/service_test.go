package pool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		name      string
		data      string
		expect    []int64
		expectErr bool
	}{
		{name: "yaml list", data: "- 5\n- 7\n- 9\n", expect: []int64{5, 7, 9}},
		{name: "json list", data: "[5, 7, 9]", expect: []int64{5, 7, 9}},
		{name: "yaml document", data: "ids:\n  - 1\n  - 2\n", expect: []int64{1, 2}},
		{name: "json document", data: `{"ids": [3]}`, expect: []int64{3}},
		{name: "empty", data: "", expect: []int64{}},
		{name: "null", data: "~", expect: []int64{}},
		{name: "non integer", data: "[1, x]", expectErr: true},
		{name: "scalar", data: "42", expectErr: true},
		{name: "malformed", data: "[1, 2", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ids, err := Decode([]byte(tc.data))
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, ids)
		})
	}
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	location := filepath.Join(dir, "pool.yaml")
	require.NoError(t, os.WriteFile(location, []byte("ids: [5, 7, 9]\n"), 0o644))
	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("ids: [5, oops]\n"), 0o644))

	srv := New(afs.New())
	ids, err := srv.Load(ctx, location)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 7, 9}, ids)

	_, err = srv.Load(ctx, filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = srv.Load(ctx, broken)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
