package datasync

import "strings"

// Tier is the user's subscription classification. Elevated tiers have
// cloud storage for their workout history, basic tiers are local-only.
type Tier int

const (
	TierUnknown Tier = iota
	TierFree
	TierPremium
	TierClient
	TierTrainer
	TierAdmin
)

// Wire labels as the account backend sends them.
const (
	labelFree    = "FREEUSER"
	labelPremium = "PREMIUM"
	labelClient  = "CLIENTE"
	labelTrainer = "ENTRENADOR"
	labelAdmin   = "ADMINISTRADOR"
)

func ParseTier(label string) Tier {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case labelFree:
		return TierFree
	case labelPremium:
		return TierPremium
	case labelClient:
		return TierClient
	case labelTrainer:
		return TierTrainer
	case labelAdmin:
		return TierAdmin
	default:
		return TierUnknown
	}
}

func (t Tier) String() string {
	switch t {
	case TierFree:
		return labelFree
	case TierPremium:
		return labelPremium
	case TierClient:
		return labelClient
	case TierTrainer:
		return labelTrainer
	case TierAdmin:
		return labelAdmin
	default:
		return "UNKNOWN"
	}
}

// IsElevated reports whether the tier has cloud access. Unknown tiers are
// treated as basic, so an account with no recorded tier still gets its
// local history uploaded on the first upgrade.
func (t Tier) IsElevated() bool {
	switch t {
	case TierPremium, TierClient, TierTrainer, TierAdmin:
		return true
	case TierFree, TierUnknown:
		return false
	default:
		return false
	}
}

type Direction string

const (
	DirectionUpload   Direction = "upload"
	DirectionDownload Direction = "download"
)

// ResolveDirection maps a tier transition to a sync direction.
// The second return value is false when no sync is required: both sides
// of the transition have the same cloud access.
func ResolveDirection(previous, next Tier) (Direction, bool) {
	wasElevated := previous.IsElevated()
	isElevated := next.IsElevated()

	switch {
	case !wasElevated && isElevated:
		return DirectionUpload, true
	case wasElevated && !isElevated:
		return DirectionDownload, true
	default:
		return "", false
	}
}
