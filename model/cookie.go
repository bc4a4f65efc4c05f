package model

// Cookie is a name/value pair with optional domain and path scoping.
type Cookie struct {
	Name     string `koanf:"name" json:"name"`
	Value    string `koanf:"value" json:"value"`
	Domain   string `koanf:"domain" json:"domain,omitempty"`
	Path     string `koanf:"path" json:"path,omitempty"`
	Disabled bool   `koanf:"disabled" json:"disabled,omitempty"`
}
