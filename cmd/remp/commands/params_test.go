package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/remp-client/internal/constants"
)

func TestParamFlags_Build(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   paramFlags
		want    interface{}
		wantErr error
	}{
		{
			name: "no flags means no body",
			want: nil,
		},
		{
			name:  "pairs",
			flags: paramFlags{pairs: []string{"email=a@b.c", "group_id=3"}},
			want:  map[string]interface{}{"email": "a@b.c", "group_id": "3"},
		},
		{
			name:  "value may contain separators",
			flags: paramFlags{pairs: []string{"note=a=b"}},
			want:  map[string]interface{}{"note": "a=b"},
		},
		{
			name:  "pairs override data",
			flags: paramFlags{data: `{"email":"old@b.c","meta":{"source":"cli"}}`, pairs: []string{"email=new@b.c"}},
			want:  map[string]interface{}{"email": "new@b.c", "meta": map[string]interface{}{"source": "cli"}},
		},
		{
			name:    "missing separator",
			flags:   paramFlags{pairs: []string{"email"}},
			wantErr: constants.ErrInvalidParam,
		},
		{
			name:    "empty key",
			flags:   paramFlags{pairs: []string{"=value"}},
			wantErr: constants.ErrInvalidParam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.flags.build()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParamFlags_InvalidData(t *testing.T) {
	t.Parallel()

	flags := paramFlags{data: `[1,2]`}

	_, err := flags.build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--data")
}
