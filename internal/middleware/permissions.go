package middleware

import "net/http"

// permissionsToken validates the Authorization header against a
// role-to-token map, where the route metadata names the accepted roles.
type permissionsToken struct{}

// NewPermissionsToken creates the permissions_token middleware.
func NewPermissionsToken() Middleware {
	return permissionsToken{}
}

func (permissionsToken) Name() string {
	return "permissions_token"
}

func (permissionsToken) Handle(r *http.Request, cfg Settings, meta Metadata) *Verdict {
	tokens, ok := cfg["accepted_tokens"].(map[string]any)
	if !ok || len(tokens) == 0 {
		return ErrorVerdict(http.StatusInternalServerError,
			"Missing required config key for permissions_token middleware: 'accepted_tokens'")
	}
	roles := acceptedRoles(meta)
	if roles == nil {
		return ErrorVerdict(http.StatusInternalServerError,
			"Missing required metadata key for permissions_token middleware: 'accepted_roles'")
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return ErrorVerdict(http.StatusUnauthorized, "Missing Authorization header")
	}
	for _, role := range roles {
		token, ok := tokens[role].(string)
		if ok && header == "Bearer "+token {
			return nil
		}
	}
	return ErrorVerdict(http.StatusUnauthorized, "Unauthorized")
}

func (permissionsToken) FailVerdict() *Verdict {
	return ErrorVerdict(http.StatusForbidden, "Simulated permission failure")
}

func (permissionsToken) ConfigRequirements() []Requirement {
	return []Requirement{
		{Key: "accepted_tokens", Description: "Role to bearer token map", Kind: KindMap, Mandatory: true},
		{Key: "flag_driven", Description: "Allow one-shot simulated failures from the control panel", Kind: KindBool, Default: true},
	}
}

func (permissionsToken) MetadataRequirements() []Requirement {
	return []Requirement{
		{Key: "accepted_roles", Description: "Roles allowed to access the route (comma separated)", Kind: KindList, Mandatory: true},
	}
}

// acceptedRoles extracts the accepted_roles metadata value, which may be
// a []string (from the wizard) or a []any (from decoded JSON).
func acceptedRoles(meta Metadata) []string {
	switch v := meta["accepted_roles"].(type) {
	case []string:
		return v
	case []any:
		roles := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				roles = append(roles, s)
			}
		}
		return roles
	default:
		return nil
	}
}
