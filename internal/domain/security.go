package domain

// RiskLevel grades how dangerous a generated command looks.
type RiskLevel string

const (
	RiskSafe     RiskLevel = "safe"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskAssessment is purely advisory: it annotates the confirmation
// prompt but never replaces the user's yes/no decision.
type RiskAssessment struct {
	Level        RiskLevel
	Reasons      []string
	MatchedRules []string
}
