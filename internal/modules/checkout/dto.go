package checkout

type FinalizeCheckoutRequest struct {
	ReservationID string `json:"reservation_id" binding:"required"`
	Plan          string `json:"plan"`
	PaymentRef    string `json:"payment_ref"`
}
