package gateway

import (
	"github.com/jonathan/recruiter-copilot/internal/prompts"
	"github.com/jonathan/recruiter-copilot/internal/types"
)

const promptFile = "recruiting.json"

// BuildJobPostingPrompt returns the job posting instruction with every field embedded verbatim.
func BuildJobPostingPrompt(req types.JobPostingRequest) string {
	return prompts.Format(prompts.MustGet(promptFile, string(OpJobPosting)), map[string]string{
		"Title":      req.Title,
		"Department": req.Department,
		"Seniority":  req.Seniority,
		"Skills":     req.Skills,
		"Tone":       req.Tone,
	})
}

// BuildInterviewScriptPrompt returns the interview script instruction (10 technical, 5 STAR).
func BuildInterviewScriptPrompt(title, skills string) string {
	return prompts.Format(prompts.MustGet(promptFile, string(OpInterviewScript)), map[string]string{
		"Title":  title,
		"Skills": skills,
	})
}

// BuildResumeMatchPrompt returns the resume comparison instruction.
func BuildResumeMatchPrompt(resumeText, jobDescription string) string {
	return prompts.Format(prompts.MustGet(promptFile, string(OpResumeMatch)), map[string]string{
		"JobDescription": jobDescription,
		"ResumeText":     resumeText,
	})
}

// BuildMarketAnalysisPrompt returns the salary and rare-skills instruction for the gateway's market.
func (g *Gateway) BuildMarketAnalysisPrompt(title, seniority string) string {
	return prompts.Format(prompts.MustGet(promptFile, string(OpMarketAnalysis)), map[string]string{
		"Title":     title,
		"Seniority": seniority,
		"Market":    g.opts.Market,
		"Currency":  g.opts.Currency,
	})
}
