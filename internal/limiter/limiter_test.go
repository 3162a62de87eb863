package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/menusheet/internal/menu"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{name: "valid limit only", cfg: Config{Limit: 10}},
		{name: "valid limit and offset", cfg: Config{Limit: 10, Offset: 5}},
		{name: "tail ignores offset (valid)", cfg: Config{Tail: 10, Offset: 5}},
		{name: "zero values valid", cfg: Config{}},
		{name: "limit and tail mutually exclusive", cfg: Config{Limit: 10, Tail: 5}, wantErr: true, errMsg: "mutually exclusive"},
		{name: "negative limit invalid", cfg: Config{Limit: -1}, wantErr: true, errMsg: "--limit must be non-negative"},
		{name: "negative offset invalid", cfg: Config{Offset: -1}, wantErr: true, errMsg: "--offset must be non-negative"},
		{name: "negative tail invalid", cfg: Config{Tail: -1}, wantErr: true, errMsg: "--tail must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfigIsActive(t *testing.T) {
	assert.False(t, Config{}.IsActive())
	assert.True(t, Config{Limit: 1}.IsActive())
	assert.True(t, Config{Offset: 1}.IsActive())
	assert.True(t, Config{Tail: 1}.IsActive())
}

func TestApply(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name string
		cfg  Config
		want []int
	}{
		{name: "inactive", cfg: Config{}, want: nums},
		{name: "limit only", cfg: Config{Limit: 3}, want: []int{1, 2, 3}},
		{name: "offset only", cfg: Config{Offset: 5}, want: []int{6, 7, 8, 9, 10}},
		{name: "limit and offset", cfg: Config{Limit: 3, Offset: 2}, want: []int{3, 4, 5}},
		{name: "tail only", cfg: Config{Tail: 3}, want: []int{8, 9, 10}},
		{name: "tail ignores offset", cfg: Config{Tail: 2, Offset: 1}, want: []int{9, 10}},
		{name: "offset larger than slice", cfg: Config{Offset: 20}, want: []int{}},
		{name: "limit larger than remaining", cfg: Config{Limit: 100, Offset: 5}, want: []int{6, 7, 8, 9, 10}},
		{name: "tail larger than slice", cfg: Config{Tail: 100}, want: nums},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.cfg, nums))
		})
	}
}

func TestApplyMenuItems(t *testing.T) {
	items := []menu.Item{
		{Path: []string{"File", "New"}},
		{Path: []string{"File", "Open"}},
		{Path: []string{"Edit", "Copy"}},
	}
	got := Apply(Config{Tail: 1}, items)
	require.Len(t, got, 1)
	assert.Equal(t, "Copy", got[0].Label())

	assert.Empty(t, Apply(Config{Limit: 5}, []menu.Item(nil)))
}

func TestBounds(t *testing.T) {
	start, end := Config{Offset: 2, Limit: 2}.Bounds(3)
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)

	start, end = Config{Tail: 4}.Bounds(0)
	assert.Zero(t, start)
	assert.Zero(t, end)
}
