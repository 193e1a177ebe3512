package invoice

import "github.com/sbtransport/sbtconsole/internal/money"

// Invoice is a trip sheet, keyed by its memo number.
type Invoice struct {
	TripsMemoNo      string `json:"trips_memo_no"`
	TripsDate        string `json:"trips_date"`
	CustomerName     string `json:"customer_name"`
	CustomerAddress1 string `json:"customer_address1"`
	CustomerAddress2 string `json:"customer_address2"`
	VehicleType      string `json:"vehicle_type"`
	VehicleNo        string `json:"vehicle_no"`
	Location         string `json:"location"`

	StartKM    money.Amount `json:"start_km"`
	EndKM      money.Amount `json:"end_km"`
	TotalKM    money.Amount `json:"total_km"`
	StartTime  string       `json:"start_time"`
	EndTime    string       `json:"end_time"`
	TotalHours money.Amount `json:"total_hours"`

	MinCharges            money.Amount `json:"min_charges"`
	AdditionalHourCharges money.Amount `json:"additional_hour_charges"`
	AdditionalKMCharges   money.Amount `json:"additional_km_charges"`
	DriverAllowance       money.Amount `json:"driver_allowance"`
	TollParking           money.Amount `json:"toll_parking"`
	TotalAmount           money.Amount `json:"total_amount"`
}
