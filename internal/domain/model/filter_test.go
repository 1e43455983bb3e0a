package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterState_SetText(t *testing.T) {
	f := NewFilterState()

	f.SetText("  sushi  ")
	assert.Equal(t, "sushi", f.Text)
	assert.True(t, f.HasText())

	f.SetText("   ")
	assert.Equal(t, "", f.Text)
	assert.False(t, f.HasText())
}

func TestFilterState_ToggleCuisine(t *testing.T) {
	f := NewFilterState()

	t.Run("2回トグルすると元の状態に戻る", func(t *testing.T) {
		f.ToggleCuisine("italian")
		assert.True(t, f.HasCuisine("italian"))

		f.ToggleCuisine("italian")
		assert.False(t, f.HasCuisine("italian"))
		assert.Empty(t, f.Cuisines)
	})

	t.Run("選択順が保持される", func(t *testing.T) {
		f.ToggleCuisine("italian")
		f.ToggleCuisine("american")
		f.ToggleCuisine("thai")
		assert.Equal(t, []string{"italian", "american", "thai"}, f.Cuisines)

		f.ToggleCuisine("american")
		assert.Equal(t, []string{"italian", "thai"}, f.Cuisines)
	})
}

func TestFilterState_SelectCuisine_IsIdempotent(t *testing.T) {
	f := NewFilterState()
	f.SelectCuisine("japanese")
	f.SelectCuisine("japanese")
	assert.Equal(t, []string{"japanese"}, f.Cuisines)

	f.DeselectCuisine("japanese")
	assert.Empty(t, f.Cuisines)

	// 未選択のジャンルの解除は何もしない
	f.DeselectCuisine("japanese")
	assert.Empty(t, f.Cuisines)
}

func TestFilterState_ClearCuisines(t *testing.T) {
	f := NewFilterState()
	f.SelectCuisine("italian")
	f.SelectCuisine("korean")
	f.ClearCuisines()
	assert.False(t, f.HasCuisines())
}

func TestFilterState_ToggleMode(t *testing.T) {
	f := NewFilterState()
	require.Equal(t, ModeGuided, f.Mode)

	newMode := f.ToggleMode()
	assert.Equal(t, ModeExplore, newMode)
	assert.Equal(t, ModeExplore, f.Mode)

	newMode = f.ToggleMode()
	assert.Equal(t, ModeGuided, newMode)
}

func TestFilterState_SetMaxPrice(t *testing.T) {
	f := NewFilterState()

	level := 2
	f.SetMaxPrice(&level)
	require.NotNil(t, f.MaxPriceLevel)
	assert.Equal(t, 2, *f.MaxPriceLevel)

	// 呼び出し側の変数を書き換えても内部状態に影響しない
	level = 4
	assert.Equal(t, 2, *f.MaxPriceLevel)

	f.SetMaxPrice(nil)
	assert.Nil(t, f.MaxPriceLevel)
}

func TestFilterState_Snapshot(t *testing.T) {
	f := NewFilterState()
	f.SetText("ramen")
	f.SelectCuisine("japanese")
	f.SetOpenNow(true)
	level := 3
	f.SetMaxPrice(&level)

	snapshot := f.Snapshot()

	// スナップショット取得後に元の状態を変更してもコピーには影響しない
	f.SetText("pizza")
	f.SelectCuisine("italian")
	f.SetMaxPrice(nil)

	assert.Equal(t, "ramen", snapshot.Text)
	assert.Equal(t, []string{"japanese"}, snapshot.Cuisines)
	assert.True(t, snapshot.OpenNowOnly)
	require.NotNil(t, snapshot.MaxPriceLevel)
	assert.Equal(t, 3, *snapshot.MaxPriceLevel)
}
