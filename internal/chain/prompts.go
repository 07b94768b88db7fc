package chain

import "fmt"

const screenerSystemPrompt = `You are an Initial Fraud Screener specializing in rapid triage of SWIFT transactions.
Your role is to quickly categorize transactions into risk levels.

For each transaction, assign:
- GREEN: Low risk, standard processing
- YELLOW: Medium risk, needs review
- RED: High risk, immediate attention

Consider: amounts, BIC codes, countries, and obvious red flags.
Return your analysis in JSON format.`

func screenerUserPrompt(messages []byte) string {
	return fmt.Sprintf(`Perform initial screening on these SWIFT messages:
%s

Return JSON with structure:
{
  "screening_results": [
    {"message_id": "...", "risk_level": "GREEN|YELLOW|RED", "initial_flags": ["..."], "recommended_action": "..."}
  ],
  "summary": "Overall batch assessment"
}`, messages)
}

const technicalSystemPrompt = `You are a Technical Analyst specializing in SWIFT message format validation.
Review the initial screening results and perform deep technical analysis.

Focus on:
- SWIFT format compliance (MT103/MT202 standards)
- BIC code validation and legitimacy
- Amount format and currency validation
- Reference number patterns
- Date format compliance

Build upon the initial screening to identify technical anomalies.
Return your analysis in JSON format.`

func technicalUserPrompt(messages, screening []byte) string {
	return fmt.Sprintf(`Review these SWIFT messages with initial screening results:

Messages: %s

Initial Screening: %s

Perform technical validation and return JSON with:
{
  "technical_analysis": [
    {"message_id": "...", "format_compliance": true, "technical_issues": ["..."],
     "risk_adjustment": "increase|maintain|decrease", "technical_score": 0}
  ],
  "technical_summary": "Overall technical assessment"
}`, messages, screening)
}

const riskSystemPrompt = `You are a Risk Assessment Specialist.
Analyze behavioral patterns and transaction risks based on previous findings.
Focus on velocity, patterns, and behavioral anomalies.
Return your analysis in JSON format.`

func riskUserPrompt(messages, chainSoFar []byte) string {
	return fmt.Sprintf(`Assess risk based on analysis so far:
Messages: %s
Current Analysis: %s

Return JSON with risk scores and pattern analysis.`, messages, chainSoFar)
}

const complianceSystemPrompt = `You are a Compliance Officer specializing in AML and regulatory compliance.
Review all previous analysis and assess regulatory compliance risks.

Focus on:
- AML (Anti-Money Laundering) red flags
- Sanctions screening indicators
- PEP (Politically Exposed Persons) risks
- Regulatory reporting requirements
- KYC (Know Your Customer) concerns

Consider the complete analysis chain to make compliance determinations.
Return your analysis in JSON format.`

func complianceUserPrompt(messages, chainSoFar []byte) string {
	return fmt.Sprintf(`Review these SWIFT messages with complete analysis chain:

Messages: %s

Analysis Chain Results: %s

Perform compliance assessment and return JSON with:
{
  "compliance_review": [
    {"message_id": "...", "aml_risk": "low|medium|high", "sanctions_risk": "clear|potential|confirmed",
     "compliance_issues": ["..."], "required_actions": ["..."], "compliance_score": 0}
  ],
  "compliance_summary": "Overall compliance assessment",
  "escalation_required": false
}`, messages, chainSoFar)
}

const finalReviewerSystemPrompt = `You are the Final Reviewer responsible for synthesizing all analysis.
Make the final fraud determination based on the complete analysis chain.

Review all findings from:
1. Initial Screening
2. Technical Analysis
3. Risk Assessment
4. Compliance Review

Make final decisions: APPROVE, HOLD, or REJECT each transaction.
Provide clear justification based on the accumulated evidence.
Return your analysis in JSON format.`

func finalReviewerUserPrompt(messages, chainSoFar []byte) string {
	return fmt.Sprintf(`Make final determinations based on complete analysis:

Messages: %s

Complete Analysis Chain: %s

Return final decisions in JSON:
{
  "final_decisions": [
    {"message_id": "...", "decision": "APPROVE|HOLD|REJECT", "confidence": 0,
     "key_factors": ["..."], "justification": "...", "follow_up_required": ["..."]}
  ],
  "batch_summary": {"approved": 0, "held": 0, "rejected": 0, "overall_risk": "low|medium|high"}
}`, messages, chainSoFar)
}
