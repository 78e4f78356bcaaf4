package entity

// Moderation category names as returned by the visual classifier.
const (
	CategoryExplicitSexual  = "explicit_sexual"
	CategoryExtremeViolence = "extreme_violence"
	CategoryGraphicContent  = "graphic_content"
	CategoryHateSymbols     = "hate_symbols"
	CategorySelfHarm        = "self_harm"
)

// Contextual allowance flags. A flagged non-absolute category accompanied by
// one of these is routed to human review instead of being rejected outright.
const (
	ContextNewsworthy = "newsworthy"
	ContextMedical    = "medical"
	ContextPolitical  = "political"
)

// CategoryScore is one classifier label with its confidence.
type CategoryScore struct {
	Name       string  `json:"name"`
	Flagged    bool    `json:"flagged"`
	Confidence float64 `json:"confidence"`
}

// ModerationVerdict is the structured result of one classification call.
type ModerationVerdict struct {
	Categories   []CategoryScore `json:"categories"`
	ContextFlags []string        `json:"context_flags"`
}

// HasContextAllowance reports whether any contextual allowance flag is set.
func (v *ModerationVerdict) HasContextAllowance() bool {
	return len(v.ContextFlags) > 0
}

// Flagged returns the subset of categories the classifier flagged.
func (v *ModerationVerdict) Flagged() []CategoryScore {
	var out []CategoryScore
	for _, c := range v.Categories {
		if c.Flagged {
			out = append(out, c)
		}
	}

	return out
}
