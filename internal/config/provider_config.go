package config

type Provider struct {
	IssuerURL     string `env:"AUTH_ISSUER_URL"`
	ClientID      string `env:"AUTH_CLIENT_ID"`
	AccessCookie  string `env:"SESSION_ACCESS_COOKIE" envDefault:"sb-access-token"`
	RefreshCookie string `env:"SESSION_REFRESH_COOKIE" envDefault:"sb-refresh-token"`
}

var _ ProviderConfig = Provider{}

func (p Provider) GetIssuerURL() string {
	return p.IssuerURL
}

// GetClientID returns the audience expected in session tokens. Empty disables the audience check.
func (p Provider) GetClientID() string {
	return p.ClientID
}

func (p Provider) GetAccessCookieName() string {
	return p.AccessCookie
}

func (p Provider) GetRefreshCookieName() string {
	return p.RefreshCookie
}
