package predator

import "strings"

// System role shared by every narrative call. Constrains the generator to
// verifiable, directional conclusions instead of hedged prose.
const quantAnalystRole = `你是一名为顶级对冲基金工作的资深量化研究员，擅长结合宏观流动性与微观技术形态进行多维度分析，负责生成【可执行、可验证、可复盘】的交易前研究结论。

【核心分析原则】
1. 结论优先级：消息面（政策/业绩/突发事件）> 资金流向 > 技术形态 > 宏观流动性
2. 当不同信号出现冲突时，必须明确指出冲突来源，并说明最终采用哪一类信号及原因
3. 禁止在数据缺失的情况下进行主观补全，数据不足必须明确标注为"无法判断"

【分析与表达约束】
- 所有判断必须明确标注为：利多 / 中性 / 利空
- 每一个结论需至少对应一条可验证的数据或事实
- 技术指标必须说明时间周期（如日线/周线）

【输出规范】
- 使用 Markdown 格式输出，结构清晰
- 策略建议必须具备可交易性（方向、仓位、风控）
- 若核心数据不足以支持结论，必须输出【数据不足，策略观望】并说明缺失项`

// Morning strategy analysis prompt
const morningTemplate = `# 今日市场分析任务

## 日期
{trade_date}

## 市场数据输入

### 1. 宏观与资金面
{macro_data}

### 2. 指数表现
{index_data}

### 3. 北向资金
{northbound_data}

### 4. 集合竞价特征 (9:15-9:25)
{auction_data}

### 5. 当日重大新闻/事件
{news_data}

## 分析要求

请基于以上数据，完成以下分析并生成研报：

1. **核心综述**：市场运行特征概览，日内阿尔法驱动力分析
2. **宏观量化环境**：流动性水位评估，是否构成【方向性约束】
3. **资金面分析**：北向资金流向，是否形成【可交易信号】
4. **技术面分析**：指数 MACD/KDJ 状态，关键支撑阻力位
5. **策略建议**：组合配置权重、重点关注板块、风控阈值
6. **风险提示**：当日需警惕的风险因素

## 强制输出要求
在报告最前部，必须输出【今日交易结论摘要】：

| 项目 | 结论 |
|----|----|
| 市场方向 | 明确看多 / 中性 / 看空 |
| 核心驱动因素 | 不超过3条 |
| 主要做多方向 | 板块 / 指数 / 资产 |
| 建议总仓位 | 0%-100% |
| 关键风险触发条件 | 明确数值或事件 |`

// Incremental correction prompt, used after the auction window
const incrementalTemplate = `# 集合竞价增量更新

## 预处理报告摘要
{pre_report_summary}

## 集合竞价实时数据 (9:25-9:30)
{auction_data}

## 更新要求

仅针对【最终策略建议】部分进行快速修正：
1. 基于最新竞价数据，调整今日策略方向
2. 更新重点关注标的
3. 调整风控参数

【更新约束】
- 不允许推翻原有市场方向判断，除非高开/低开幅度超过 ±2% 或竞价量能显著异常（≥150%）
- 所有调整必须明确指出由哪一项竞价指标触发
- 若竞价数据不足以改变原结论，明确说明"维持原策略"

保持简洁。`

// Deterministic fallback body. Filled purely from collected structured
// fields; never touches the narrative generator.
const fallbackTemplate = `# 竞价异动快报 (规则引擎模式)

> ⚠️ 注意：本报告由规则引擎自动生成，未经 AI 润色

## 生成时间
{timestamp}

## 指数概况
{index_data}

## 宏观与资金面
{macro_data}

## 北向资金动态
{northbound_data}

## 当日新闻
{news_data}

---
*本报告基于硬编码规则生成，仅供参考。详细分析请等待 AI 报告。*`

// Sector analysis prompt, structured JSON output
const sectorAnalysisTemplate = `# 今日板块分析任务

## 日期
{trade_date}

## 市场数据

### 大盘指数
{index_data}

### 北向资金
{north_flow_data}

## 分析要求

请分析当前市场热门板块，找出最值得关注的板块。

【输出格式要求】
你必须严格按照以下 JSON 格式输出，不要输出任何其他内容：

` + "```json" + `
{
  "market_summary": "今日市场整体点评（不超过100字）",
  "sectors": [
    {
      "name": "板块名称",
      "reason": "推荐理由（不超过50字）",
      "strength": "高/中/低",
      "risk_level": "高/中/低"
    }
  ]
}
` + "```" + `

【约束】
- sectors 数组按推荐优先级排序，最多返回 8 个板块
- 必须给出明确判断，禁止模糊表述`

// Stock recommendation prompt, structured JSON output
const stockRecommendationTemplate = `# 个股推荐任务

## 日期
{trade_date}

## 用户选择的板块
{selected_sectors}

## 市场数据

### 大盘指数
{index_data}

### 北向资金
{north_flow_data}

## 推荐要求

{risk_hint}

请在用户选择的板块中，推荐最值得买入的股票。

【输出格式要求】
你必须严格按照以下 JSON 格式输出，不要输出任何其他内容：

` + "```json" + `
{
  "summary": "整体分析点评（不超过100字）",
  "recommendations": [
    {
      "code": "000001.SZ",
      "name": "股票名称",
      "reason": "推荐理由，至少包含两条可验证的事实",
      "entry_hint": "建仓时机与价位建议",
      "risk_hint": "个股风险提示"
    }
  ]
}
` + "```" + `

【约束】
- recommendations 数组按推荐优先级排序，最多返回 5 只股票
- 若数据不足无法给出推荐，返回空的 recommendations 数组并在 summary 中说明原因`

// Risk preference hints appended to the recommendation prompt
var riskHints = map[string]string{
	"aggressive":   "【激进型】用户偏好高风险高收益，可推荐题材股、短线博弈机会，仓位可偏高。",
	"balanced":     "【平衡型】用户风险偏好适中，推荐兼顾成长性与安全边际的标的，仓位适中。",
	"conservative": "【保守型】用户偏好低风险稳健收益，推荐蓝筹股、高股息标的，仓位建议偏低。",
}

// renderPrompt substitutes {key} placeholders. Unknown placeholders are
// left intact so a missing variable is visible in the rendered output.
func renderPrompt(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
