package entities

// LocationResponse is the directory view of a parking location, enriched
// with the mean of its review ratings.
type LocationResponse struct {
	ID          int     `json:"id"`
	OwnerID     int     `json:"owner_id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Lat         float64 `json:"lat"`
	Long        float64 `json:"long"`
	OwnerRating float64 `json:"owner_rating"`
}

type PaymentMethodResponse struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Cash   bool   `json:"cash"`
	UpiID  string `json:"upi_id,omitempty"`
}
