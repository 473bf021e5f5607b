package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCategory(t *testing.T) {
	// 标准类别原样返回
	for _, cat := range GetCategories() {
		assert.Equal(t, cat, ValidateCategory(cat))
	}

	// 前缀宽松匹配：输入是类别的前缀，或类别是输入的前缀
	assert.Equal(t, CategoryTransport, ValidateCategory("trans"))
	assert.Equal(t, CategorySubscription, ValidateCategory("sub"))
	assert.Equal(t, CategoryEntertainment, ValidateCategory("entertainments"))

	// 无法匹配时兜底为 other
	assert.Equal(t, CategoryOther, ValidateCategory("gadgets"))
	assert.Equal(t, CategoryOther, ValidateCategory(""))
}

func TestCategoryEmoji(t *testing.T) {
	assert.Equal(t, "🍔", CategoryEmoji(CategoryFood))
	// 未知类别用 other 的表情
	assert.Equal(t, CategoryEmoji(CategoryOther), CategoryEmoji("nonsense"))
}
