package models

// ReconcileAlert is published when a verified payment webhook references a
// consultation the ledger cannot apply it to, so the mismatch is surfaced
// instead of silently dropped.
type ReconcileAlert struct {
	EventID        string `json:"event_id"`
	EventType      string `json:"event_type"`
	ConsultationID string `json:"consultation_id"`
	PaymentIntent  string `json:"payment_intent"`
	Reason         string `json:"reason"`
}
