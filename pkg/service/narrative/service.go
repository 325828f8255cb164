package narrative

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/gollem"

	"github.com/sheqworks/themis/pkg/domain/interfaces"
	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/utils/logging"
)

//go:embed prompt/narrative_system.md
var systemPrompt string

// FallbackText is attached to the summary when no LLM client is configured
// or generation fails. The narrative is advisory prose only; it never gates
// the numeric gap analysis.
const FallbackText = "การวิเคราะห์เสร็จสมบูรณ์ (ไม่มีบทสรุปจาก AI)"

const defaultTimeout = 30 * time.Second

type Service struct {
	llmClient gollem.LLMClient
	timeout   time.Duration
}

var _ interfaces.NarrativeService = &Service{}

type Option func(*Service)

// WithTimeout bounds a single generation call
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// New creates a narrative service. A nil client is allowed and yields the
// static fallback for every call.
func New(llmClient gollem.LLMClient, opts ...Option) *Service {
	s := &Service{
		llmClient: llmClient,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func buildUserPrompt(profile *model.Profile, items []model.GapItem) string {
	var b strings.Builder

	if profile != nil {
		fmt.Fprintf(&b, "บริษัทประเภท: %s, พนักงาน: %s", profile.WorkplaceType, profile.EmployeeThreshold)
		if len(profile.MainActivity) > 0 {
			fmt.Fprintf(&b, ", กิจกรรม: %s", strings.Join(profile.MainActivity, ", "))
		}
		b.WriteString("\n\n")
	}

	b.WriteString("Gap Analysis พบประเด็นดังนี้:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- [%s] %s (%s)\n", strings.ToUpper(item.GapLevel.String()), item.Topic, item.Category)
	}

	return b.String()
}

// Summarize generates the advisory narrative for the critical gap items.
// Any failure degrades to FallbackText.
func (s *Service) Summarize(ctx context.Context, profile *model.Profile, criticalItems []model.GapItem) string {
	if s == nil || s.llmClient == nil || len(criticalItems) == 0 {
		return FallbackText
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	agent := gollem.New(s.llmClient, gollem.WithSystemPrompt(systemPrompt))
	resp, err := agent.Execute(ctx, gollem.Text(buildUserPrompt(profile, criticalItems)))
	if err != nil {
		logging.From(ctx).Warn("narrative generation failed, using fallback", "error", err.Error())
		return FallbackText
	}

	text := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
	if text == "" {
		return FallbackText
	}
	return text
}
