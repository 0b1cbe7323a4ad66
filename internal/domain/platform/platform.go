package platform

// ---------------------------------------------------------------------------
// PlatformKind represents the type of external creator platform
// ---------------------------------------------------------------------------

// Kind represents the type of external creator platform
type Kind string

const (
	// KindOnlyFans represents the OnlyFans platform
	KindOnlyFans Kind = "ONLYFANS"
	// KindFansly represents the Fansly platform
	KindFansly Kind = "FANSLY"
	// KindPatreon represents the Patreon platform
	KindPatreon Kind = "PATREON"
	// KindKoFi represents the Ko-fi platform
	KindKoFi Kind = "KOFI"
	// KindGumroad represents the Gumroad platform
	KindGumroad Kind = "GUMROAD"
)

// AllKinds returns every valid platform kind in declaration order
func AllKinds() []Kind {
	return []Kind{KindOnlyFans, KindFansly, KindPatreon, KindKoFi, KindGumroad}
}

// IsValid returns true if the platform kind is valid
func (k Kind) IsValid() bool {
	switch k {
	case KindOnlyFans, KindFansly, KindPatreon, KindKoFi, KindGumroad:
		return true
	default:
		return false
	}
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// DisplayName returns a human-readable name for the platform
func (k Kind) DisplayName() string {
	switch k {
	case KindOnlyFans:
		return "OnlyFans"
	case KindFansly:
		return "Fansly"
	case KindPatreon:
		return "Patreon"
	case KindKoFi:
		return "Ko-fi"
	case KindGumroad:
		return "Gumroad"
	default:
		return string(k)
	}
}
