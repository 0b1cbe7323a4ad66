package platform

// ---------------------------------------------------------------------------
// AutomationLevel represents how much of a platform can be driven by the API
// ---------------------------------------------------------------------------

// AutomationLevel represents how much of a platform can be driven programmatically
type AutomationLevel string

const (
	// AutomationNone means the platform offers no usable write automation
	AutomationNone AutomationLevel = "NONE"
	// AutomationPartial means some operations require session emulation or
	// are rate-restricted
	AutomationPartial AutomationLevel = "PARTIAL"
	// AutomationFull means the platform exposes a complete official API
	AutomationFull AutomationLevel = "FULL"
)

// IsValid returns true if the automation level is valid
func (l AutomationLevel) IsValid() bool {
	switch l {
	case AutomationNone, AutomationPartial, AutomationFull:
		return true
	default:
		return false
	}
}

// Feature names declared in capability metadata
const (
	FeaturePosting        = "posting"
	FeatureScheduling     = "scheduling"
	FeatureDirectMessages = "direct_messages"
	FeatureComments       = "comments"
	FeatureMetrics        = "metrics"
	FeatureAnalytics      = "analytics"
)

// CapabilityMetadata describes what a platform kind supports. Outer layers
// use it for UI gating; the orchestration layer enforces only SupportsDMs.
type CapabilityMetadata struct {
	// AutomationLevel is the degree of API automation available
	AutomationLevel AutomationLevel `json:"automation_level"`
	// SupportedFeatures lists the feature names the platform supports
	SupportedFeatures []string `json:"supported_features"`
	// Requirements lists what a user must provide to connect the platform
	Requirements []string `json:"requirements"`
	// SupportsDMs is true if the platform has a direct-message channel
	SupportsDMs bool `json:"supports_dms"`
}

// capabilityTable is the closed capability map. Adding a platform kind
// without an entry here is a programmer error caught by Capabilities.
var capabilityTable = map[Kind]CapabilityMetadata{
	KindOnlyFans: {
		AutomationLevel:   AutomationPartial,
		SupportedFeatures: []string{FeaturePosting, FeatureScheduling, FeatureDirectMessages, FeatureComments, FeatureMetrics, FeatureAnalytics},
		Requirements:      []string{"session_cookie", "user_agent", "proxy"},
		SupportsDMs:       true,
	},
	KindFansly: {
		AutomationLevel:   AutomationPartial,
		SupportedFeatures: []string{FeaturePosting, FeatureDirectMessages, FeatureMetrics, FeatureAnalytics},
		Requirements:      []string{"auth_token"},
		SupportsDMs:       true,
	},
	KindPatreon: {
		AutomationLevel:   AutomationFull,
		SupportedFeatures: []string{FeaturePosting, FeatureComments, FeatureMetrics, FeatureAnalytics},
		Requirements:      []string{"oauth_client", "refresh_token"},
		SupportsDMs:       false,
	},
	KindKoFi: {
		AutomationLevel:   AutomationNone,
		SupportedFeatures: []string{FeatureAnalytics},
		Requirements:      []string{"api_key"},
		SupportsDMs:       false,
	},
	KindGumroad: {
		AutomationLevel:   AutomationFull,
		SupportedFeatures: []string{FeaturePosting, FeatureMetrics, FeatureAnalytics},
		Requirements:      []string{"access_token"},
		SupportsDMs:       false,
	},
}

// Capabilities returns the capability metadata for a platform kind.
// The returned value is a copy; mutating it does not affect the table.
func Capabilities(kind Kind) (CapabilityMetadata, bool) {
	meta, ok := capabilityTable[kind]
	if !ok {
		return CapabilityMetadata{}, false
	}
	return copyMetadata(meta), true
}

// AllCapabilities returns the full capability table keyed by platform kind
func AllCapabilities() map[Kind]CapabilityMetadata {
	out := make(map[Kind]CapabilityMetadata, len(capabilityTable))
	for kind, meta := range capabilityTable {
		out[kind] = copyMetadata(meta)
	}
	return out
}

// SupportsFeature returns true if the platform kind declares the feature
func SupportsFeature(kind Kind, feature string) bool {
	meta, ok := capabilityTable[kind]
	if !ok {
		return false
	}
	for _, f := range meta.SupportedFeatures {
		if f == feature {
			return true
		}
	}
	return false
}

func copyMetadata(meta CapabilityMetadata) CapabilityMetadata {
	out := meta
	out.SupportedFeatures = append([]string(nil), meta.SupportedFeatures...)
	out.Requirements = append([]string(nil), meta.Requirements...)
	return out
}
