// Package lexicon 提供消费描述的关键词自动分类。
// 词表按插入顺序扫描，匹配优先级严格为：完全相等 > 整词匹配 > 子串匹配，
// 三层顺序不可调整：完全相等避免短词误判，整词匹配避免 bus 命中 business，
// 子串兜底覆盖 bubble tea 这类多词关键词连写的情况。
package lexicon

import (
	"regexp"
	"strings"

	"spendbot/models"
)

type entry struct {
	Keyword  string
	Category string
}

// entries 关键词词表（面向新加坡常见消费），顺序即匹配顺序
var entries = []entry{
	// 餐饮
	{"coffee", models.CategoryFood}, {"kopi", models.CategoryFood}, {"teh", models.CategoryFood},
	{"lunch", models.CategoryFood}, {"dinner", models.CategoryFood}, {"breakfast", models.CategoryFood},
	{"brunch", models.CategoryFood}, {"supper", models.CategoryFood}, {"snack", models.CategoryFood},
	{"bubble tea", models.CategoryFood}, {"bbt", models.CategoryFood}, {"makan", models.CategoryFood},
	{"food", models.CategoryFood}, {"eat", models.CategoryFood}, {"meal", models.CategoryFood},
	{"hawker", models.CategoryFood}, {"kopitiam", models.CategoryFood}, {"foodcourt", models.CategoryFood},
	{"restaurant", models.CategoryFood}, {"mcdonalds", models.CategoryFood}, {"mcd", models.CategoryFood},
	{"kfc", models.CategoryFood}, {"subway", models.CategoryFood}, {"starbucks", models.CategoryFood},
	{"toast box", models.CategoryFood}, {"ya kun", models.CategoryFood}, {"liho", models.CategoryFood},
	{"gongcha", models.CategoryFood}, {"each a cup", models.CategoryFood},

	// 交通
	{"grab", models.CategoryTransport}, {"gojek", models.CategoryTransport}, {"uber", models.CategoryTransport},
	{"taxi", models.CategoryTransport}, {"mrt", models.CategoryTransport}, {"bus", models.CategoryTransport},
	{"train", models.CategoryTransport}, {"ez-link", models.CategoryTransport}, {"ezlink", models.CategoryTransport},
	{"petrol", models.CategoryTransport}, {"fuel", models.CategoryTransport}, {"parking", models.CategoryTransport},
	{"carpark", models.CategoryTransport}, {"cabby", models.CategoryTransport}, {"comfort", models.CategoryTransport},

	// 购物
	{"ntuc", models.CategoryShopping}, {"fairprice", models.CategoryShopping}, {"cold storage", models.CategoryShopping},
	{"giant", models.CategoryShopping}, {"sheng siong", models.CategoryShopping}, {"shopee", models.CategoryShopping},
	{"lazada", models.CategoryShopping}, {"amazon", models.CategoryShopping}, {"uniqlo", models.CategoryShopping},
	{"zara", models.CategoryShopping}, {"h&m", models.CategoryShopping}, {"daiso", models.CategoryShopping},
	{"miniso", models.CategoryShopping}, {"don don", models.CategoryShopping}, {"donki", models.CategoryShopping},
	{"watsons", models.CategoryShopping}, {"guardian", models.CategoryShopping}, {"clothes", models.CategoryShopping},
	{"shoes", models.CategoryShopping}, {"grocery", models.CategoryShopping},

	// 账单
	{"electric", models.CategoryBills}, {"electricity", models.CategoryBills}, {"water", models.CategoryBills},
	{"gas", models.CategoryBills}, {"phone", models.CategoryBills}, {"mobile", models.CategoryBills},
	{"singtel", models.CategoryBills}, {"starhub", models.CategoryBills}, {"m1", models.CategoryBills},
	{"internet", models.CategoryBills}, {"wifi", models.CategoryBills}, {"rent", models.CategoryBills},
	{"insurance", models.CategoryBills},

	// 订阅
	{"netflix", models.CategorySubscription}, {"spotify", models.CategorySubscription}, {"youtube", models.CategorySubscription},
	{"disney", models.CategorySubscription}, {"hbo", models.CategorySubscription}, {"prime", models.CategorySubscription},
	{"chatgpt", models.CategorySubscription}, {"gym", models.CategorySubscription}, {"activesg", models.CategorySubscription},

	// 娱乐
	{"movie", models.CategoryEntertainment}, {"cinema", models.CategoryEntertainment}, {"gv", models.CategoryEntertainment},
	{"cathay", models.CategoryEntertainment}, {"shaw", models.CategoryEntertainment}, {"concert", models.CategoryEntertainment},
	{"escape", models.CategoryEntertainment}, {"uss", models.CategoryEntertainment}, {"zoo", models.CategoryEntertainment},
	{"karaoke", models.CategoryEntertainment}, {"ktv", models.CategoryEntertainment}, {"arcade", models.CategoryEntertainment},

	// 医疗
	{"doctor", models.CategoryHealth}, {"clinic", models.CategoryHealth}, {"hospital", models.CategoryHealth},
	{"medicine", models.CategoryHealth}, {"pharmacy", models.CategoryHealth}, {"dental", models.CategoryHealth},
	{"dentist", models.CategoryHealth}, {"polyclinic", models.CategoryHealth}, {"checkup", models.CategoryHealth},
	{"vitamin", models.CategoryHealth},
}

// exact 完全相等查找表；wordPatterns 与 entries 一一对应的整词正则
var (
	exact        = make(map[string]string, len(entries))
	wordPatterns = make([]*regexp.Regexp, len(entries))
)

func init() {
	for i, e := range entries {
		if _, ok := exact[e.Keyword]; !ok {
			exact[e.Keyword] = e.Category
		}
		wordPatterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(e.Keyword) + `\b`)
	}
}

// Categorize 对消费描述做自动分类，无法匹配时返回 other
func Categorize(description string) string {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return models.CategoryOther
	}

	// 第一层：完全相等
	if cat, ok := exact[desc]; ok {
		return cat
	}

	// 第二层：整词匹配，按词表顺序取第一个命中
	for i, e := range entries {
		if wordPatterns[i].MatchString(desc) {
			return e.Category
		}
	}

	// 第三层：子串兜底，按词表顺序取第一个命中
	for _, e := range entries {
		if strings.Contains(desc, e.Keyword) {
			return e.Category
		}
	}

	return models.CategoryOther
}

// Size 词表条目数，用于帮助信息展示
func Size() int {
	return len(entries)
}
