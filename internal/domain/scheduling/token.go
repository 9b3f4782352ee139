package scheduling

// Token is an OAuth bearer credential plus the instance base URL that
// subsequent API calls are made against.
type Token struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
	InstanceURL string `json:"instance_url"`
	ID          string `json:"id"`
	TokenType   string `json:"token_type"`
	IssuedAt    string `json:"issued_at,omitempty"`
	Signature   string `json:"signature,omitempty"`
}
