package shared

const (
	CallerAddress = "caller_address"

	ActivityFeed  = "feed"
	ActivityPlay  = "play"
	ActivityClean = "clean"
	ActivityRest  = "rest"

	ProofTypePetCare     = "pet_care"
	ProofTypeGameSession = "game_session"
	ProofTypePetStatus   = "pet_status"

	DefaultQueryLimit = 50

	// Future-dated proofs are tolerated up to this many seconds of skew.
	ProofMaxFutureSkew = 300
)
