package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShayCichocki/alphaagent/internal/pipeline"
	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// jsonInstruction is appended to every user prompt.
const jsonInstruction = "Respond with ONLY a JSON object matching this shape (no other text):"

// languageInstruction tells the model which language to use for free text.
// Enum values always stay in English so they validate.
func languageInstruction(lang models.Language) string {
	if lang == models.LanguageCN {
		return "IMPORTANT: Write all free-text summaries, descriptions and reasoning in SIMPLIFIED CHINESE. " +
			"Keep every enum value (for example 'Bullish', 'BUY', 'Strong Uptrend') exactly as listed, in ENGLISH."
	}
	return "Write the response in English."
}

func buildPrompt(task pipeline.TaskName, stock models.StockContext, system, body, shape string) models.Prompt {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n\n")
	b.WriteString(jsonInstruction)
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(shape))
	b.WriteString("\n\n")
	b.WriteString(languageInstruction(stock.Language))

	return models.Prompt{
		Agent:  string(task),
		Tier:   SelectTier(task),
		System: system,
		User:   b.String(),
	}
}

func industryPrompt(stock models.StockContext) models.Prompt {
	t := stock.Display()
	return buildPrompt(pipeline.TaskIndustry, stock, "You are a Senior Macro Strategist.", fmt.Sprintf(`
Analyze the industry and broader market outlook for %s.
1. Identify the specific sub-sector (e.g. "EVs in China" or "Cloud Computing in US").
2. Identify the relevant broad market index (e.g. S&P 500, HSI) and its current trend.
3. Analyze the industry's growth dynamics: market size, CAGR, demand drivers, saturation.
4. Assess sector-specific regulatory risk.
5. Summarize the broad market backdrop together with the industry dynamics.`, t), `
{
  "sectorTrend": "Bullish" | "Neutral" | "Bearish",
  "marketOutlook": string,
  "industryGrowth": string,
  "regulatoryRisk": "Low" | "Medium" | "High",
  "summary": string
}`)
}

func newsPrompt(stock models.StockContext) models.Prompt {
	return buildPrompt(pipeline.TaskNews, stock, "You are a News Intelligence Officer.", fmt.Sprintf(`
Find the most important news events for %s in the last 30 days.
Summarize the top 3 headlines and determine the overall sentiment.`, stock.Display()), `
{
  "sentiment": "POSITIVE" | "NEUTRAL" | "NEGATIVE",
  "topEvents": [string],
  "impactHorizon": "Short" | "Medium" | "Long",
  "summary": string
}`)
}

func quantPrompt(stock models.StockContext) models.Prompt {
	return buildPrompt(pipeline.TaskQuant, stock, "You are a Disciplined Quantitative Trader.", fmt.Sprintf(`
Perform a technical and quantitative audit of %s focusing on 4 dominant metrics.
1. TREND STRENGTH: compare the current price to the 50-day moving average.
2. VOLATILITY: check beta or the daily range.
3. VOLUME: check participation.
4. VALUATION: check P/E against its history.`, stock.Display()), `
{
  "currentPrice": number,
  "trendSignal": "Strong Uptrend" | "Weak Uptrend" | "Neutral" | "Downtrend",
  "volatilitySignal": "Low (Stable)" | "Medium" | "High (Risky)",
  "volumeSignal": "High (Confirmed)" | "Neutral" | "Low (Diverging)",
  "valuationSignal": "Cheap" | "Fair" | "Expensive"
}`)
}

func competitorPrompt(stock models.StockContext) models.Prompt {
	t := stock.Display()
	return buildPrompt(pipeline.TaskCompetitor, stock, "You are a Competitive Intelligence Specialist.", fmt.Sprintf(`
Identify the top 3 competitors of %s.
For each competitor give the name, ticker and a one-sentence comparison.
Determine the overall market position of %s.`, t, t), `
{
  "topCompetitors": [{"name": string, "ticker": string, "comparison": string}],
  "marketPosition": "Leader" | "Challenger" | "Laggard" | "Niche Player"
}`)
}

func hedgingPrompt(stock models.StockContext) models.Prompt {
	return buildPrompt(pipeline.TaskHedging, stock, "You are a Risk Manager.", fmt.Sprintf(`
Suggest how to hedge a long position in %s.
Provide a primary and an alternative strategy.`, stock.Display()), `
{
  "primaryStrategy": {"type": string, "description": string, "cost": "Low" | "Medium" | "High"},
  "alternativeStrategy": {"type": string, "description": string, "cost": "Low" | "Medium" | "High"},
  "rationale": string
}`)
}

func debatePrompt(stock models.StockContext) models.Prompt {
	t := stock.Display()
	return buildPrompt(pipeline.TaskDebate, stock, "You are a debate simulator.", fmt.Sprintf(`
Simulate a short, intense debate between a Bull (optimist) and a Bear (skeptic) about %s.
Topic: is %s a good buy right now?
The debate has 4 turns, alternating speakers.`, t, t), `
{
  "topic": string,
  "turns": [{"speaker": "Bull" | "Bear", "argument": string}],
  "conclusion": string
}`)
}

func backtestPrompt(stock models.StockContext, quant models.QuantReport) (models.Prompt, error) {
	signals, err := json.MarshalIndent(quant, "", "  ")
	if err != nil {
		return models.Prompt{}, fmt.Errorf("encode quant report: %w", err)
	}
	return buildPrompt(pipeline.TaskBacktest, stock, "You are a Model Risk Auditor.", fmt.Sprintf(`
Review how a signal-driven call on %s would have fared over the last quarter.
Current quant signals:
%s

Score the historical accuracy from 0 to 100, name the systematic bias of past
predictions and list the lessons learned.`, stock.Display(), signals), `
{
  "score": integer,
  "bias": "Optimistic" | "Neutral" | "Pessimistic",
  "lessons": [string],
  "pastPrediction": string
}`), nil
}

func judgePrompt(input models.SynthesisInput) (models.Prompt, error) {
	contextJSON, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return models.Prompt{}, fmt.Errorf("encode synthesis input: %w", err)
	}
	return buildPrompt(pipeline.TaskJudge, input.Stock, "You are the CIO. You make the final call.", fmt.Sprintf(`
Synthesize all agent reports for %s into a final decision.
Reports that are missing from the context were unavailable for this run.

CONTEXT:
%s

TASKS:
1. Weigh conflicting signals.
2. Decide BUY, HOLD, AVOID or WATCH.
3. State what the market already prices in and where you disagree.
4. Generate a price forecast (target, bull case, bear case).`, input.Stock.Display(), contextJSON), `
{
  "decision": "BUY" | "HOLD" | "AVOID" | "WATCH",
  "confidence": number between 0 and 1,
  "valuation": "UNDERPRICED" | "FAIR" | "OVERPRICED" | "UNKNOWN",
  "marketConsensus": string,
  "uniqueInsight": string,
  "keyDrivers": [string],
  "risks": [string],
  "reasoning": string,
  "forecast": {"currentPrice": number, "targetPrice": number, "bullCase": number, "bearCase": number, "timeframe": string}
}`), nil
}
