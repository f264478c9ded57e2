package scorer

// DefaultLexicon returns the built-in bilingual keyword table: heaviest on
// clawdbot/moltbot and agent tooling, then AI applications, Kubernetes,
// storage infrastructure, and markets/finance, in English and Traditional
// Chinese.
func DefaultLexicon() Lexicon {
	return NewLexicon(map[string]int{
		// clawdbot / moltbot / agent tooling
		"clawdbot":      10,
		"moltbot":       10,
		"openclaw":      8,
		"clawd":         6,
		"agent":         4,
		"agents":        4,
		"ai agent":      5,
		"autonomous":    2,
		"automation":    4,
		"workflow":      4,
		"pipeline":      3,
		"orchestration": 3,
		"tool":          3,
		"tools":         3,
		"tool calling":  4,
		"mcp":           4,
		"webhook":       3,
		"cron":          3,
		"scheduler":     2,
		"github":        2,
		"actions":       2,
		"telegram":      2,
		"signal":        2,
		"slack":         2,

		// zh: automation / workflow
		"自動化": 5,
		"工作流": 5,
		"排程":  4,
		"腳本":  3,
		"工具":  3,
		"代理":  3,
		"智能體": 4,
		"機器人": 3,
		"通知":  2,

		// AI applications
		"llm":        3,
		"rag":        3,
		"embedding":  2,
		"inference":  3,
		"gpu":        3,
		"cuda":       2,
		"nvidia":     2,
		"openai":     2,
		"prompt":     2,
		"eval":       2,
		"agents sdk": 2,

		// zh: AI
		"ai":  2,
		"應用":  2,
		"提示詞": 3,
		"向量":  2,
		"推理":  2,
		"模型":  2,

		// Kubernetes / cloud native
		"kubernetes":   6,
		"k8s":          6,
		"helm":         3,
		"cni":          3,
		"cilium":       3,
		"calico":       3,
		"ingress":      2,
		"service mesh": 2,
		"istio":        2,
		"etcd":         3,
		"kubelet":      2,
		"pod":          2,
		"node":         2,
		"operator":     3,

		// zh: K8s
		"容器":   3,
		"集群":   3,
		"叢集":   3,
		"網路":   2,
		"網路插件": 2,

		// storage / infra
		"storage":       5,
		"s3":            3,
		"minio":         7,
		"erasure":       3,
		"healing":       3,
		"ceph":          4,
		"rook":          2,
		"longhorn":      3,
		"zfs":           3,
		"nfs":           2,
		"iscsi":         2,
		"nvme":          3,
		"nvmeof":        2,
		"lvm":           2,
		"raid":          2,
		"latency":       2,
		"throughput":    2,
		"observability": 2,
		"prometheus":    2,
		"grafana":       2,
		"loki":          2,

		// zh: storage
		"儲存":   5,
		"存儲":   5,
		"物件儲存": 4,
		"檔案系統": 3,
		"磁碟":   3,
		"硬碟":   2,
		"延遲":   2,
		"吞吐":   2,

		// markets / finance
		"markets":    4,
		"market":     3,
		"finance":    4,
		"macro":      3,
		"earnings":   3,
		"guidance":   2,
		"cpi":        2,
		"pce":        2,
		"fed":        3,
		"rate":       2,
		"cut":        1,
		"yield":      2,
		"treasury":   2,
		"bond":       2,
		"dxy":        2,
		"usd":        1,
		"vix":        4,
		"volatility": 3,
		"options":    2,
		"gold":       3,
		"xau":        2,
		"silver":     3,
		"xag":        2,
		"bitcoin":    3,
		"btc":        3,
		"crypto":     2,
		"etf":        2,

		// zh: markets
		"財經":  5,
		"市場":  5,
		"美股":  3,
		"台股":  2,
		"匯率":  2,
		"美元":  2,
		"殖利率": 2,
		"通膨":  2,
		"降息":  2,
		"恐慌":  2,
		"黃金":  3,
		"白銀":  3,
		"比特幣": 3,
		"加密":  2,
	})
}
