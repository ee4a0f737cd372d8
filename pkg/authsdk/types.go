package authsdk

// ErrorResponse is the JSON error envelope returned by every endpoint on
// failure.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g. "invalid_request")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Login / Session
// ============================================================================

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// TOTPCode is required once the account has TOTP enabled.
	TOTPCode string `json:"totp_code,omitempty"`
}

// UserInfo is the public projection of an authenticated user.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SessionResponse describes the state of the caller's session. On rejection
// Error carries one of: no_session, invalid_session, revoked, expired,
// disabled.
type SessionResponse struct {
	Authenticated bool      `json:"authenticated"`
	User          *UserInfo `json:"user,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// LoginResponse is returned on successful login. The session token itself
// travels only in the Set-Cookie header.
type LoginResponse struct {
	User      UserInfo `json:"user"`
	ExpiresAt int64    `json:"expires_at"` // unix seconds
}

// ============================================================================
// Registration / Invites
// ============================================================================

// RegisterRequest redeems a trader invite into a new account.
type RegisterRequest struct {
	InviteCode string `json:"invite_code"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

// RegisterResponse confirms the created account.
type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// InviteMintRequest is the admin body of POST /v1/invites/mint.
type InviteMintRequest struct {
	// Audience is "owner" or "trader".
	Audience string `json:"audience"`

	// MaxUses is clamped server-side into [1, 100]; zero means 1.
	MaxUses int `json:"max_uses,omitempty"`

	// ExpiresAt is a unix timestamp; zero means the invite never expires.
	ExpiresAt int64 `json:"expires_at,omitempty"`

	Note string `json:"note,omitempty"`
}

// InviteMintResponse carries the plaintext code. It is shown exactly once;
// only the hash is stored.
type InviteMintResponse struct {
	InviteID  string `json:"invite_id"`
	Code      string `json:"code"`
	Audience  string `json:"audience"`
	MaxUses   int    `json:"max_uses"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// InviteSummary is one row of GET /v1/invites. The code hash never leaves
// the server.
type InviteSummary struct {
	ID        string `json:"id"`
	Audience  string `json:"audience"`
	CreatedBy string `json:"created_by"`
	MaxUses   int    `json:"max_uses"`
	UseCount  int    `json:"use_count"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
	RevokedAt int64  `json:"revoked_at,omitempty"`
	UsedAt    int64  `json:"used_at,omitempty"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// InviteListResponse wraps the invite listing.
type InviteListResponse struct {
	Invites []InviteSummary `json:"invites"`
}

// InviteValidateRequest checks a code without consuming it.
type InviteValidateRequest struct {
	Code string `json:"code"`
}

// InviteValidateResponse reports validity; Reason is set iff invalid.
type InviteValidateResponse struct {
	Valid         bool   `json:"valid"`
	Reason        string `json:"reason,omitempty"`
	Audience      string `json:"audience,omitempty"`
	RemainingUses int    `json:"remaining_uses,omitempty"`
}

// OwnerRedeemRequest consumes an owner invite for an email.
type OwnerRedeemRequest struct {
	Code  string `json:"code"`
	Email string `json:"email"`
}

// OwnerRedeemResponse confirms the allowlisted email.
type OwnerRedeemResponse struct {
	Email string `json:"email"`
}

// ============================================================================
// Password Reset
// ============================================================================

// PasswordResetRequest asks for a reset token to be issued. The response is
// identical whether or not the username exists.
type PasswordResetRequest struct {
	Username string `json:"username"`
}

// PasswordResetAccepted is the deliberately uninformative acknowledgement.
type PasswordResetAccepted struct {
	Status string `json:"status"` // always "accepted"
}

// PasswordResetExecuteRequest consumes a reset token.
type PasswordResetExecuteRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ============================================================================
// Health
// ============================================================================

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// ============================================================================
// TOTP
// ============================================================================

// TOTPEnrollResponse carries the one-time enrolment material.
type TOTPEnrollResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"` // otpauth:// URL for QR rendering
}

// TOTPVerifyRequest confirms the authenticator holds the enrolled secret.
type TOTPVerifyRequest struct {
	Code string `json:"code"`
}
