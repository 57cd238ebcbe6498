package deepdive

import "strings"

const quantAnalystRole = `你是一名为顶级对冲基金工作的资深量化研究员，负责对单一标的进行全面"体检"，生成【可执行、可验证、可复盘】的诊疗结论。数据不足时必须明确标注为"无法判断"，禁止主观补全。`

const deepDiveTemplate = `# 个股深度诊疗

## 标的信息
- 股票代码: {code}
- 股票名称: {name}
- 所属行业: {industry}

## 技术面数据
{technical_data}

## 资金面数据
{capital_data}

## 近期事件
{events_data}

## 分析要求

请对该股票进行全面"体检"。**重要**：
1. 全文使用中文，标签使用"买入/持有/卖出"
2. **报告开头先给出结论总结表格**，再展开详细分析

## 📊 结论总结（放在报告最前面）
| 项目 | 结论 |
|------|------|
| 操作建议 | 买入/持有/卖出 |
| 信号强度 | 强/中/弱 |
| 目标价 | XX-XX |
| 止损价 | XX |

### 1. 技术形态诊断
- 当前所处阶段（筑底/上升/横盘/下跌）
- 关键支撑位与阻力位
- MACD/KDJ 信号状态

### 2. 综合评级
- **评级**: 买入 / 持有 / 卖出
- 买入需至少满足"资金面 + 技术面"双重确认
- 信号冲突或趋势不明时给出持有

### 3. 情景推演
| 情景 | 触发条件 | 目标位 | 概率 |
|-----|---------|-------|------|
| 上涨情景 | | | |
| 中性情景 | | | |
| 下跌情景 | | | |

### 4. 风险提示
明确列出该股票的主要风险因素。`

func renderDeepDivePrompt(vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(deepDiveTemplate)
}
