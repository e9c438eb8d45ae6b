package devenv

// FrsTestConfig is read from dev/.state/frs.json5 by the live tests.
type FrsTestConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
	Insecure bool   `json:"insecure"`
}
