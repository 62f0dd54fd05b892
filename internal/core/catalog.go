package core

// Category is one static catalog entry. The name is both the display
// label and the storage key; IsIncome isolates the one place that
// distinguishes the credit category.
type Category struct {
	ID   string
	Name string
	Icon string
	Desc string
}

// IncomeCategory is the single catalog entry treated as a credit
// rather than a debit in summaries.
const IncomeCategory = "薪資"

// Categories is the fixed, ordered spending taxonomy. Read-only.
var Categories = []Category{
	{ID: "飲食", Name: "飲食", Icon: "🍴", Desc: "三餐、零食、飲料、外食費、食材費。"},
	{ID: "衣服美容", Name: "衣服美容", Icon: "👕", Desc: "服裝、鞋子、配件、保養品、剪頭髮。"},
	{ID: "日常", Name: "日常", Icon: "🧻", Desc: "耗材、衛生紙、塑膠袋、洗衣服。"},
	{ID: "居家", Name: "居家", Icon: "🏠", Desc: "房租、水電瓦斯、家具、居家修繕、家電。"},
	{ID: "交通", Name: "交通", Icon: "🚌", Desc: "油錢、停車費、大眾運輸、汽車保養、罰單。"},
	{ID: "教育", Name: "教育", Icon: "📚", Desc: "學費、書籍、課程、文具。"},
	{ID: "醫療保健", Name: "醫療保健", Icon: "💊", Desc: "藥品、看病、體檢。"},
	{ID: "電信", Name: "電信", Icon: "📶", Desc: "電話、網路、第四台、合併帳單的國際漫遊。"},
	{ID: "其他", Name: "其他", Icon: "🏷️", Desc: "人情往來 (紅包、禮品)、雜項開銷。"},
	{ID: "娛樂", Name: "娛樂", Icon: "🎮", Desc: "旅遊、聚餐、電影、運動、娛樂活動。"},
	{ID: "數位服務", Name: "數位服務", Icon: "💻", Desc: "Netflix, Google service, Github, Steam, Paypal。"},
	{ID: "稅務", Name: "稅務", Icon: "🧾", Desc: "所得稅、牌照稅、燃料稅、稅金。"},
	{ID: "保險費", Name: "保險費", Icon: "🛡️", Desc: "勞保、健保、壽險、保險費、機車強制險。"},
	{ID: "手續費", Name: "手續費", Icon: "💸", Desc: "電匯費用、國外交易服務費。"},
	{ID: "富宇天鑄", Name: "富宇天鑄", Icon: "🏢", Desc: "頭期款、房貸、管理費、裝修費。"},
	{ID: IncomeCategory, Name: IncomeCategory, Icon: "💰", Desc: "薪水、獎金、股利。"},
}

// placeholderIcon stands in for any category name absent from the catalog.
const placeholderIcon = "🏷"

// IsIncome reports whether a category name is the income category.
func IsIncome(name string) bool {
	return name == IncomeCategory
}

// CategoryByName resolves a catalog entry by its name key. Unknown names
// return a synthetic entry carrying the placeholder icon, never an error.
func CategoryByName(name string) Category {
	for _, c := range Categories {
		if c.Name == name {
			return c
		}
	}
	return Category{ID: name, Name: name, Icon: placeholderIcon}
}

// categoryPalette is the fixed display palette. Any category name, even
// one outside the catalog, maps to the same color on every render.
var categoryPalette = []string{
	"#f87171", // red
	"#fb923c", // orange
	"#fbbf24", // amber
	"#4ade80", // green
	"#2dd4bf", // teal
	"#60a5fa", // blue
	"#818cf8", // indigo
	"#c084fc", // purple
	"#f472b6", // pink
	"#fb7185", // rose
}

// CategoryColor picks a palette color via a polynomial rolling hash of
// the name's code points (h = c + (h<<5) - h, 32-bit). Pure function of
// the string; identical across renders and restarts.
func CategoryColor(name string) string {
	var hash int32
	for _, r := range name {
		hash = int32(r) + ((hash << 5) - hash)
	}
	// Reduce through uint32: negating would overflow on MinInt32 and
	// leave a negative index.
	return categoryPalette[int(uint32(hash))%len(categoryPalette)]
}
