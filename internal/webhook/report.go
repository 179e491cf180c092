package webhook

import (
	"fmt"
	"strings"
	"time"

	"github.com/dhima/job-alert-trigger/internal/models"
)

// Stage is one conceptual step of the remote workflow. The client cannot see
// these; they are only named so reports can describe the expected pipeline.
type Stage struct {
	Agent    string
	Action   string
	Complete string
}

// Stages is the fixed pipeline advertised by the remote workflow.
var Stages = []Stage{
	{Agent: "Agent 1 (Scraper)", Action: "collect job data from APIs", Complete: "data collection"},
	{Agent: "Agent 2 (AI Analyzer)", Action: "score relevance with an LLM", Complete: "relevance analysis"},
	{Agent: "Agent 3 (Parser)", Action: "enrich and validate job data", Complete: "data enrichment"},
	{Agent: "Agent 4 (Filter)", Action: "apply quality filters", Complete: "quality control"},
	{Agent: "Agent 5 (Alert Manager)", Action: "send personalized notifications", Complete: "notifications"},
}

const (
	ruleWidth    = 60
	architecture = "Web UI -> Workflow Webhook -> Multi-Agent Processing -> Email Alerts"
)

func stageLines() []string {
	lines := make([]string, 0, len(Stages)+1)
	lines = append(lines, "Processing chain owned by the remote workflow:")
	for _, s := range Stages {
		lines = append(lines, fmt.Sprintf("  %s: %s", s.Agent, s.Action))
	}
	return lines
}

func triggerOutcomeLines(class models.StatusClass, out outcome, req models.TriggerRequest) []string {
	switch class {
	case models.StatusSuccess:
		lines := []string{
			"Workflow webhook accepted the trigger (HTTP 200)",
			"Assumed pipeline summary, not reported by the workflow:",
		}
		for _, s := range Stages {
			lines = append(lines, fmt.Sprintf("  %s: %s expected to complete", s.Agent, s.Complete))
		}
		return append(lines,
			fmt.Sprintf("Alerts for '%s' will be sent to %s if matches are found", req.Keywords, req.Email),
		)
	case models.StatusWebhookNotFound:
		return []string{
			"Webhook not found (HTTP 404)",
			"Check the webhook URL in settings; the path may be wrong or the workflow inactive",
		}
	case models.StatusUnexpectedStatus:
		return []string{
			fmt.Sprintf("Unexpected response (HTTP %d)", out.status),
			"The workflow may still be processing the request asynchronously",
		}
	case models.StatusTimeout:
		return []string{
			fmt.Sprintf("Request timed out after %s (limit %s)", out.elapsed.Round(time.Millisecond), out.timeout),
			"The workflow may still complete in the background",
			"Check your email for job alerts",
		}
	case models.StatusConnectionError:
		return []string{
			"Connection failed: " + errText(out.err),
			"Please check:",
			"  - your network connection",
			"  - the webhook URL in settings",
			"  - that the remote workflow is active",
		}
	default:
		return []string{
			"Unexpected error: " + errText(out.err),
			"Please check the webhook configuration",
		}
	}
}

func testOutcomeLines(class models.StatusClass, out outcome) []string {
	switch class {
	case models.StatusSuccess:
		return []string{
			"Connection successful (HTTP 200)",
			"Webhook is responding correctly",
			"Ready for job alert triggers",
		}
	case models.StatusWebhookNotFound:
		return []string{
			"Webhook not found (HTTP 404)",
			"Check the webhook path and that the workflow is active",
		}
	case models.StatusUnexpectedStatus:
		return []string{
			fmt.Sprintf("Webhook responded with unexpected status (HTTP %d)", out.status),
			"Check the workflow configuration; real triggers may still be processed",
		}
	case models.StatusTimeout:
		return []string{
			fmt.Sprintf("Connection timed out after %s (limit %s)", out.elapsed.Round(time.Millisecond), out.timeout),
			"Possible causes:",
			"  - the workflow is busy processing",
			"  - network latency",
		}
	case models.StatusConnectionError:
		return []string{
			"Cannot reach the webhook URL: " + errText(out.err),
			"Possible causes:",
			"  - invalid URL",
			"  - workflow not active",
			"  - network issues",
		}
	default:
		return []string{
			"Test error: " + errText(out.err),
			"Check the URL format and try again",
		}
	}
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// Report renders a result as the plain-text block shown to operators.
func Report(r models.TriggerResult) string {
	rule := strings.Repeat("=", ruleWidth)

	var b strings.Builder
	b.WriteString(r.Headline)
	b.WriteString("\n\n")
	if r.Kind == models.RunKindConnectionTest {
		b.WriteString("CONNECTION TEST LOG:\n")
	} else {
		b.WriteString("EXECUTION LOG:\n")
	}
	b.WriteString(rule)
	b.WriteByte('\n')
	for _, line := range r.LogLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(rule)
	b.WriteByte('\n')
	if r.HTTPStatus != nil {
		fmt.Fprintf(&b, "HTTP status: %d\n", *r.HTTPStatus)
	}
	fmt.Fprintf(&b, "Duration: %s\n", r.Duration.Round(time.Millisecond))
	if r.Kind == models.RunKindTrigger {
		b.WriteString("\nArchitecture: ")
		b.WriteString(architecture)
		b.WriteByte('\n')
	}
	return b.String()
}
