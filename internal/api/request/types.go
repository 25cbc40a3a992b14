package request

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Name string `json:"name"`
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	RoomName string `json:"roomName"`
}
