package utm

// Source is one predefined utm_source choice of a channel.
type Source struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Channel is a traffic category with a fixed medium.
//
// Channels in custom-source mode take their utm_source from free text, prefixed
// with SourcePrefix, instead of (or in addition to) the predefined Sources.
type Channel struct {
	Name              string   `json:"name"`
	Medium            string   `json:"medium"`
	Sources           []Source `json:"sources"`
	CustomSource      bool     `json:"custom_source"`
	SourcePrefix      string   `json:"source_prefix,omitempty"`
	CustomLabel       string   `json:"custom_label,omitempty"`
	CustomPlaceholder string   `json:"custom_placeholder,omitempty"`
}

// DefaultSource returns the first predefined source value, or "" when the
// channel has none.
func (c Channel) DefaultSource() string {
	if len(c.Sources) == 0 {
		return ""
	}
	return c.Sources[0].Value
}

// HasSource reports whether value is one of the channel's predefined sources.
func (c Channel) HasSource(value string) bool {
	for _, s := range c.Sources {
		if s.Value == value {
			return true
		}
	}
	return false
}

var channels = []Channel{
	{
		Name:   "SEO orgánico (no pagado)",
		Medium: "organic",
		Sources: []Source{
			{Label: "Google", Value: "google"},
			{Label: "Bing", Value: "bing"},
		},
	},
	{
		Name:   "Redes sociales orgánicas",
		Medium: "social",
		Sources: []Source{
			{Label: "Facebook", Value: "facebook"},
			{Label: "Instagram", Value: "instagram"},
			{Label: "TikTok", Value: "tiktok"},
			{Label: "LinkedIn", Value: "linkedin"},
			{Label: "Twitter", Value: "twitter"},
		},
	},
	{
		Name:    "Newsletter / Email marketing",
		Medium:  "email",
		Sources: []Source{{Label: "Newsletter", Value: "newsletter"}},
	},
	{
		Name:              "Afiliados / Partners",
		Medium:            "affiliate",
		Sources:           []Source{},
		CustomSource:      true,
		CustomLabel:       "Nombre del partner",
		CustomPlaceholder: "Ej: NombrePartner",
	},
	{
		Name:              "Influencers",
		Medium:            "influencer",
		Sources:           []Source{},
		CustomSource:      true,
		SourcePrefix:      "influencer_",
		CustomLabel:       "Nombre del influencer",
		CustomPlaceholder: "Ej: Ana López",
	},
	{
		Name:    "Paid Search (SEM)",
		Medium:  "cpc",
		Sources: []Source{{Label: "Google", Value: "google"}},
	},
	{
		Name:    "Paid Social",
		Medium:  "paid_social",
		Sources: []Source{{Label: "Meta (dinámico)", Value: "{{site_source_name}}"}},
	},
	{
		Name:              "Referral (externo)",
		Medium:            "referral",
		Sources:           []Source{},
		CustomSource:      true,
		CustomLabel:       "Nombre del sitio externo",
		CustomPlaceholder: "Ej: blogejemplo o sitioexterno",
	},
}

var (
	cities  = []string{"Madrid", "Sevilla", "Valencia", "Marbella"}
	aliases = []string{"Registros", "Venta Oficial", "Primer Avance", "Segundo Avance", "Full Line Up"}
	users   = []string{"La Vida es Maravillosa", "Jardín de las Delicias"}
)

// Channels returns the channel catalog in display order.
func Channels() []Channel {
	out := make([]Channel, len(channels))
	copy(out, channels)
	return out
}

// LookupChannel finds a channel by its exact name.
func LookupChannel(name string) (Channel, bool) {
	for _, c := range channels {
		if c.Name == name {
			return c, true
		}
	}
	return Channel{}, false
}

// Cities returns the selectable campaign cities.
func Cities() []string { return append([]string(nil), cities...) }

// Aliases returns the campaign phase aliases.
func Aliases() []string { return append([]string(nil), aliases...) }

// Users returns the identities a link can be generated as.
func Users() []string { return append([]string(nil), users...) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// IsCity reports whether name is a catalog city.
func IsCity(name string) bool { return contains(cities, name) }

// IsAlias reports whether name is a catalog alias.
func IsAlias(name string) bool { return contains(aliases, name) }

// IsUser reports whether name is a catalog user.
func IsUser(name string) bool { return contains(users, name) }
