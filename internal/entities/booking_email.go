package entities

type BookingEmailData struct {
	SeekerName    string
	BookingID     int
	Status        string
	LocationName  string
	Address       string
	City          string
	DateFormatted string
	StartTime     string
	EndTime       string
	VehicleModel  string
	PlateNumber   string
	Instruction   string
	CurrentYear   int
}
