package models

type RoundingStrategy string

const (
	RoundingHalfEven RoundingStrategy = "half_even"
)

// SplitRule is one percentage slice of a settled amount. Rules are applied
// in ascending Order.
type SplitRule struct {
	Recipient  SplitRecipient `json:"recipient"`
	Percentage float64        `json:"percentage"`
	Order      int            `json:"order"`
}

// PaymentSettings is the decoded payload of the latest applied "payments"
// settings version for a clinic. Missing settings is a deployment defect,
// not a runtime condition.
type PaymentSettings struct {
	Provider         string           `json:"provider"`
	CredentialsID    string           `json:"credentialsId,omitempty"`
	SandboxMode      bool             `json:"sandboxMode"`
	SplitRules       []SplitRule      `json:"splitRules"`
	RoundingStrategy RoundingStrategy `json:"roundingStrategy"`
}
