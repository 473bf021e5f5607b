package lexicon

import (
	"testing"

	"spendbot/models"

	"github.com/stretchr/testify/assert"
)

func TestCategorize_ExactMatch(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"netflix", models.CategorySubscription},
		{"coffee", models.CategoryFood},
		{"grab", models.CategoryTransport},
		{"ntuc", models.CategoryShopping},
		{"NETFLIX", models.CategorySubscription}, // 大小写不敏感
		{"  mrt  ", models.CategoryTransport},    // 去除首尾空白
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.desc), "desc=%q", tt.desc)
	}
}

func TestCategorize_WholeWordMatch(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"grab to office", models.CategoryTransport},
		{"morning coffee with jane", models.CategoryFood},
		{"paid rent for june", models.CategoryBills},
		{"took the bus home", models.CategoryTransport},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.desc), "desc=%q", tt.desc)
	}
}

func TestCategorize_WholeWordBeatsSubstring(t *testing.T) {
	// eat 整词命中 food，优先于任何子串命中
	assert.Equal(t, models.CategoryFood, Categorize("eat with colleagues"))

	// bus 不应在 business 中按整词命中；这里 trip 无整词匹配，
	// 落到第三层子串兜底后 bus 命中 business —— 词表顺序决定的既定行为
	assert.Equal(t, models.CategoryTransport, Categorize("business"))
}

func TestCategorize_SubstringFallback(t *testing.T) {
	// 关键词连写、无整词边界时靠子串兜底
	assert.Equal(t, models.CategoryFood, Categorize("mcdonald's"))
	assert.Equal(t, models.CategoryTransport, Categorize("ezlinktopup"))
}

func TestCategorize_Default(t *testing.T) {
	assert.Equal(t, models.CategoryOther, Categorize("mystery purchase"))
	assert.Equal(t, models.CategoryOther, Categorize(""))
	assert.Equal(t, models.CategoryOther, Categorize("xyzzy"))
}

func TestSize(t *testing.T) {
	assert.Greater(t, Size(), 50)
}
