package dto

type BookingResponse struct {
	ID              int64  `json:"id"`
	GuestName       string `json:"guest_name"`
	RoomType        string `json:"room_type"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	SpecialRequests string `json:"special_requests"`
	CreatedAt       string `json:"created_at"`
}
