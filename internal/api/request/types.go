package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// JoinQueueRequest is the request body for joining a matchmaking queue
type JoinQueueRequest struct {
	Mode string `json:"mode"`
}

// GuessRequest is the request body for submitting a guess
type GuessRequest struct {
	Word string `json:"word"`
}

// CreateChallengeRequest is the request body for challenging a player
type CreateChallengeRequest struct {
	PlayerID string `json:"player_id"`
}
