package identity

// AuthRequest carries the credentials of a register or login call.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AccountResponse describes a registered account.
type AccountResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	BestScore float64 `json:"best_score"`
	Runs      int     `json:"runs"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	AccountResponse
	Token string `json:"token"`
}
