package model

type ParticipantShare struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Share  int64  `json:"share"`
}

type PreviewDistributionRequest struct {
	RaidID string `json:"raid_id"`
}

type PreviewDistributionResponse struct {
	PotTotal int64              `json:"pot_total"`
	Shares   []ParticipantShare `json:"shares"`
	Retained int64              `json:"retained"`
}

type DistributePotRequest struct {
	RaidID string `json:"raid_id"`
}

type DistributePotResponse struct {
	PotTotal    int64              `json:"pot_total"`
	Distributed int64              `json:"distributed"`
	Retained    int64              `json:"retained"`
	Shares      []ParticipantShare `json:"shares"`
}

type CancelRaidRequest struct {
	RaidID string `json:"raid_id"`
	Reason string `json:"reason"`
}

type CancelRaidResponse struct {
	RefundedBids int64 `json:"refunded_bids"`
	RefundedGold int64 `json:"refunded_gold"`
}
