package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	require.NoError(t, Init("en"))

	assert.Equal(t, "Leave Master", Translate("en", "app.title"))
	assert.Equal(t, "请假管理", Translate("zh", "app.title"))
	assert.Equal(t, "Failed to save data: boom", Translate("en", "alert.create.failed", map[string]any{"Detail": "boom"}))
	assert.Equal(t, "missing.id", Translate("en", "missing.id"))
}

func TestT_UsesContextLocale(t *testing.T) {
	require.NoError(t, Init("en"))

	assert.Equal(t, "No data found", T(context.Background(), "detail.not_found"))
	assert.Equal(t, "未找到数据", T(WithLocale(context.Background(), "zh"), "detail.not_found"))
}

func TestMatchLocale(t *testing.T) {
	require.NoError(t, Init("en"))

	assert.Equal(t, "zh", MatchLocale("zh-CN,zh;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", MatchLocale("en-US"))
	assert.Equal(t, "en", MatchLocale(""))
	assert.Equal(t, "en", MatchLocale("!!"))
}

func TestInit_DefaultLocale(t *testing.T) {
	require.NoError(t, Init("zh"))
	t.Cleanup(func() { _ = Init("en") })

	assert.Equal(t, "zh", DefaultLocale())
	assert.Equal(t, "请假详情", T(context.Background(), "detail.title"))
}
