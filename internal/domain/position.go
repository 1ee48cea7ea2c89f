package domain

type PositionStatus string

const (
	PositionOpen   PositionStatus = "open"
	PositionClosed PositionStatus = "closed"
)

// Position is a trade instance computed entirely by the broker. CloseRate
// and Payout are only meaningful once the position has closed; AssetClass
// is resolved locally from the broker's asset id.
type Position struct {
	AssetName       string
	AssetID         int64
	AssetClass      AssetClass
	OpenDate        string
	OpenRate        float64
	CloseDate       string
	CloseRate       float64
	Amount          int64
	Currency        string
	Direction       string
	Payout          float64
	PotentialPayout float64
	Status          PositionStatus
}
