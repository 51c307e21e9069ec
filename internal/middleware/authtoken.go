package middleware

import "net/http"

// authToken validates the Authorization header against a single
// configured bearer token.
type authToken struct{}

// NewAuthToken creates the auth_token middleware.
func NewAuthToken() Middleware {
	return authToken{}
}

func (authToken) Name() string {
	return "auth_token"
}

func (authToken) Handle(r *http.Request, cfg Settings, _ Metadata) *Verdict {
	accepted, ok := cfg["accepted_token"].(string)
	if !ok || accepted == "" {
		return ErrorVerdict(http.StatusInternalServerError,
			"Missing required config key for auth_token middleware: 'accepted_token'")
	}
	if r.Header.Get("Authorization") != "Bearer "+accepted {
		return ErrorVerdict(http.StatusUnauthorized, "Unauthorized")
	}
	return nil
}

func (authToken) FailVerdict() *Verdict {
	return ErrorVerdict(http.StatusForbidden, "Simulated auth failure")
}

func (authToken) ConfigRequirements() []Requirement {
	return []Requirement{
		{Key: "accepted_token", Description: "Bearer token accepted as valid", Kind: KindText, Mandatory: true},
		{Key: "flag_driven", Description: "Allow one-shot simulated failures from the control panel", Kind: KindBool, Default: true},
	}
}

func (authToken) MetadataRequirements() []Requirement {
	return nil
}
