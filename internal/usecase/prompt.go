package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	unknownPosition   = "Unknown Position"
	resumeDelimiter   = "\n\n--- Next Resume ---\n\n"
	descriptionMarker = "Job Description: "
	evaluateMarker    = "\n\nEvaluate"
)

var positionPattern = regexp.MustCompile(`position of ([^.]+)`)

const qaSystemPrompt = "You are an AI assistant helping HR recruiters analyze candidate resumes and answer questions about them. " +
	"Provide clear, concise answers based on the resume content."

// ParseJobPrompt pulls the job title and description out of a recruiter prompt. A prompt
// without them yields "Unknown Position" and an empty description.
func ParseJobPrompt(prompt string) (jobTitle, jobDescription string) {
	jobTitle = unknownPosition
	if m := positionPattern.FindStringSubmatch(prompt); m != nil {
		jobTitle = strings.TrimSpace(m[1])
	}

	idx := strings.Index(prompt, descriptionMarker)
	if idx < 0 {
		return jobTitle, ""
	}
	rest := prompt[idx+len(descriptionMarker):]
	if rest == "" {
		return jobTitle, ""
	}
	// the description is at least one character long, so the marker search starts after it
	if end := strings.Index(rest[1:], evaluateMarker); end >= 0 {
		rest = rest[:end+1]
	}
	return jobTitle, strings.TrimSpace(rest)
}

func scoringSystemPrompt(filePath string) string {
	return fmt.Sprintf(`You are an expert HR recruiter evaluating resumes. You MUST provide your evaluation in the following JSON format:
{
  "file": %q,
  "name": "<candidate name, or \"Candidate\" if unknown>",
  "score": <number between 0-100>,
  "comment": "<brief summary comment>",
  "strengths": [<array of key strengths>],
  "improvements": [<array of areas for improvement>],
  "fitForRole": "<brief assessment of fit>"
}

Ensure all fields are present and properly formatted. The response MUST be valid JSON.`, filePath)
}

func scoringUserPrompt(jobTitle, jobDescription, resumeText string) string {
	return fmt.Sprintf(`Evaluate this candidate for the position of %s.

Job Description: %s

Resume Content:
%s

Provide a detailed evaluation including:
1. Overall score (0-100) based on qualifications and experience
2. Key strengths (list specific skills and experiences)
3. Areas of improvement (list specific gaps or areas needing development)
4. Fit for the role (assess overall suitability)
5. Brief summary comment`, jobTitle, jobDescription, resumeText)
}

func qaUserPrompt(combinedResumes, question string) string {
	return fmt.Sprintf(`Based on the following resumes:

%s

Please answer this question: %s

Provide a clear and concise answer based only on the information available in the resumes.`, combinedResumes, question)
}

func projectQuestionPrompt(jobTitle, question string) string {
	return fmt.Sprintf("Based on the candidate resumes for the %s position, please answer the following question: %s", jobTitle, question)
}

func projectGreeting(jobTitle string) string {
	return fmt.Sprintf("Hello! I'm your AI assistant for the %s position. You can ask me any questions about the candidates' resumes, "+
		"their qualifications, or specific details you'd like to know more about.", jobTitle)
}
