package flow

import (
	"github.com/alexiou-dev/careerAI-sub001/internal/models"
	"github.com/alexiou-dev/careerAI-sub001/internal/schema"
	"github.com/alexiou-dev/careerAI-sub001/internal/template"
)

// Default flow names.
const (
	// FlowGenerateDocument produces a cover letter, tailored resume, or
	// interview answers for a job posting.
	FlowGenerateDocument = "generateDocument"
	// FlowExtractJobPosting pulls structured facts out of a raw job posting.
	FlowExtractJobPosting = "extractJobPosting"
)

const generateDocumentTemplate = `You are an expert career coach and professional writer.
Write a {{documentType}} for the job described below. Respond with the
finished document and the key points it makes.

Job description:
{{jobDescription}}

{{#if applicantName}}The applicant's name is {{applicantName}}.
{{/if}}{{#if highlights}}Emphasize these highlights from the applicant's background:
{{#each highlights}}- {{this}}
{{/each}}{{/if}}{{#if resumeText}}The applicant's current resume:
{{resumeText}}
{{/if}}{{#if resumePdfDataUri}}The applicant's current resume is attached.
{{media resumePdfDataUri}}{{/if}}`

const extractJobPostingTemplate = `Extract the structured facts from the job posting below.

Job posting:
{{jobDescription}}`

func generateDocumentFlow() *Flow {
	return &Flow{
		Name: FlowGenerateDocument,
		Input: schema.Object("document generation request", map[string]*schema.Schema{
			"documentType": schema.Enum("the artifact to produce",
				string(models.DocumentTypeCoverLetter),
				string(models.DocumentTypeTailoredResume),
				string(models.DocumentTypeInterviewAnswers),
			).Require(),
			"jobDescription": schema.String("full text of the job posting").
				Require().
				WithMinLength(models.MinJobDescriptionLength),
			"resumePdfDataUri": schema.String("applicant resume as a base64 data URI").
				WithFormat(`^data:`),
			"resumeText": schema.String("applicant resume as plain text"),
			"applicantName": schema.String("applicant display name"),
			"highlights":    schema.List("background facts to emphasize", schema.String("one highlight")),
		}),
		Output: schema.Object("generated document", map[string]*schema.Schema{
			"document":  schema.String("the finished document text").Require().WithMinLength(1),
			"keyPoints": schema.List("the main points the document makes", schema.String("one key point")),
		}),
		Template: template.MustCompile(generateDocumentTemplate),
		Provider: models.ProviderConfig{
			Temperature:  0.7,
			MaxTokens:    4096,
			SystemPrompt: "You produce polished, truthful job application documents. Never invent experience the applicant does not have.",
		},
	}
}

func extractJobPostingFlow() *Flow {
	return &Flow{
		Name: FlowExtractJobPosting,
		Input: schema.Object("job posting extraction request", map[string]*schema.Schema{
			"jobDescription": schema.String("full text of the job posting").
				Require().
				WithMinLength(models.MinJobDescriptionLength),
		}),
		Output: schema.Object("extracted job facts", map[string]*schema.Schema{
			"title":   schema.String("the job title").Require(),
			"company": schema.String("the hiring company").WithDefault("Unknown"),
			"skills":  schema.List("skills the posting asks for", schema.String("one skill")),
			"seniority": schema.Enum("seniority level when stated",
				"Junior", "Mid", "Senior", "Lead"),
		}),
		Template: template.MustCompile(extractJobPostingTemplate),
		Provider: models.ProviderConfig{
			Temperature:  0.1,
			MaxTokens:    1024,
			SystemPrompt: "You extract facts from job postings. Use only information present in the posting.",
		},
	}
}

// RegisterDefaults registers the built-in flows. Called once during startup,
// before the registry sees concurrent traffic.
func RegisterDefaults(r *Registry) error {
	for _, f := range []*Flow{generateDocumentFlow(), extractJobPostingFlow()} {
		if err := r.Register(f); err != nil {
			return err
		}
	}
	return nil
}
