package render

import (
	"strings"

	"moltbook-digest/moltbook"
)

const maxIdeas = 3

// IdeaProvider derives actionable suggestion lines for a post, in display
// order. The renderer numbers them as given.
type IdeaProvider interface {
	Ideas(p moltbook.Post) []string
}

// ideaGroup pairs trigger phrases with the fixed suggestions they unlock.
type ideaGroup struct {
	triggers []string
	ideas    []string
}

// Groups are checked in a fixed order; every matching group contributes its
// suggestions before the result is capped.
var ideaGroups = []ideaGroup{
	{
		triggers: []string{"clawdbot", "moltbot", "agent"},
		ideas: []string{
			"把這個做成一個 cron/heartbeat：定期抓資料 → 產生摘要 → 推到 git（像你現在的 moltbook digest）。",
			"把流程拆成兩段：① 產生快取（cache）② 準點發送/寫入 git，避免延遲或 API 抖動影響準時性。",
			"把輸出改成『可機器解析』格式（JSON/固定段落），方便後續自動彙整、查詢與回填。",
		},
	},
	{
		triggers: []string{"kubernetes", "k8s", "cni", "etcd"},
		ideas: []string{
			"建立『每日 K8s 健康巡檢』：節點資源/Pod 重啟/事件 top N → 產出清單與建議動作。",
			"針對 CNI/網路：加一個『最近 24h 網路錯誤關鍵字』彙整（conntrack/MTU/timeout）並附定位指令。",
			"把 troubleshooting SOP（像你 MinIO 的）寫成 wiki 頁＋每天增量補齊（commit 當作學習日誌）。",
		},
	},
	{
		triggers: []string{"minio", "s3", "erasure", "healing"},
		ideas: []string{
			"把 log 關鍵字（例如 canceling remote connection）→ source trace → SOP 變成固定模板，遇到新錯就自動生成一頁。",
			"用 `mc admin heal --json` 落盤成 jsonl，定期把 Items[] 轉成『今日 heal 清單/失敗清單』並推 git。",
			"針對特定 bucket/prefix 建立『一鍵 heal 指令＋結果解析』腳本，縮小範圍避免掃全站。",
		},
	},
	{
		triggers: []string{"vix", "sp500", "s&p", "nasdaq", "earnings", "macro", "gold", "silver", "bitcoin", "btc"},
		ideas: []string{
			"把 VIX/金銀/BTC 做成固定『風險儀表板』段落（數值 + 變化 + 3 行解讀 + 事件連結），每天自動寫入週報。",
			"把重大事件（財報/Fed/地緣）做成『事件→資產反應』對照表，累積成自己的交易/研究筆記庫。",
			"把 watchlist 的資料抓取與格式化獨立成工具，報告只做『解讀』，降低格式維護成本。",
		},
	},
}

var genericIdeas = []string{
	"把這篇貼文的想法收斂成『一個可重複的自動化流程』，先做 MVP（每天一次即可）。",
	"把輸出固定成 Markdown 模板（標題/重點/下一步），之後才能穩定累積成可搜尋的知識庫。",
	"遇到不確定的地方先加 TODO + 可執行的驗證指令，讓後續能快速補完。",
}

// KeywordIdeas is the default IdeaProvider: fixed zh-Hant suggestion
// templates selected by keyword-group matching on the post text, capped at
// three, with generic templates when nothing matches.
type KeywordIdeas struct{}

func (KeywordIdeas) Ideas(p moltbook.Post) []string {
	text := strings.ToLower(p.Title + " " + p.Content + " " + p.URL)

	var ideas []string
	used := make(map[string]bool)
	for _, g := range ideaGroups {
		if !containsAny(text, g.triggers) {
			continue
		}
		for _, idea := range g.ideas {
			if !used[idea] {
				used[idea] = true
				ideas = append(ideas, idea)
			}
		}
	}

	if len(ideas) == 0 {
		ideas = append(ideas, genericIdeas...)
	}
	if len(ideas) > maxIdeas {
		ideas = ideas[:maxIdeas]
	}
	return ideas
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
