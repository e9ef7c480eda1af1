package utm

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

const (
	campaignPrefix = "jardin_delicias_"
	campaignSuffix = "_2026"

	ParamSource   = "utm_source"
	ParamMedium   = "utm_medium"
	ParamCampaign = "utm_campaign"
	ParamContent  = "utm_content"
)

// CampaignTemplate is the documented shape of the campaign tag.
const CampaignTemplate = campaignPrefix + "{ciudad}" + campaignSuffix

var allowedHost = regexp.MustCompile(`(?i)\.(com|es)$`)

// LinkParams is the form state the builder works from.
type LinkParams struct {
	BaseURL string
	City    string
	Channel Channel
	// Source is the already resolved utm_source, see ResolveSource.
	Source  string
	Content string
}

// Link is a generated campaign URL together with the tags that went into it.
type Link struct {
	URL      string
	Source   string
	Medium   string
	Campaign string
	Content  string
}

// CampaignTag derives utm_campaign from the city.
func CampaignTag(city string) string {
	return campaignPrefix + Normalize(city) + campaignSuffix
}

// ResolveSource picks the effective utm_source.
//
// Free text only wins on custom-source channels, where it is normalized and
// prefixed. Predefined values are returned verbatim so template placeholders
// such as {{site_source_name}} survive.
func ResolveSource(channel Channel, selected, freeText string) string {
	if channel.CustomSource && freeText != "" {
		return channel.SourcePrefix + Normalize(freeText)
	}
	return selected
}

// cleanInput drops what a browser ignores in a typed URL: surrounding spaces
// and control characters, and tabs or newlines anywhere inside.
func cleanInput(raw string) string {
	raw = strings.TrimFunc(raw, func(r rune) bool { return r <= ' ' })
	return strings.NewReplacer("\t", "", "\n", "", "\r", "").Replace(raw)
}

// schemeSlashes matches http: and https: followed by any run of slashes, which
// all name an authority the same way "//" does.
var schemeSlashes = regexp.MustCompile(`^(https?):[/\\]*`)

func withScheme(raw string) string {
	if !strings.HasPrefix(raw, "http") {
		return "https://" + raw
	}
	return schemeSlashes.ReplaceAllString(raw, "$1://")
}

// escapeStrayPercents turns a '%' that does not start an escape into %25 so
// net/url accepts what browsers keep verbatim.
func escapeStrayPercents(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && !(i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// baseURL is a base link split the way it is serialized back. The host is
// lowercased (punycoded when internationalized), a default port is dropped and
// the path and fragment are percent-encoded where browsers would; everything
// else is kept as typed.
type baseURL struct {
	scheme      string
	userinfo    string
	hostport    string
	path        string
	query       string
	fragment    string
	hasFragment bool
}

func parseBase(raw string) (baseURL, bool) {
	s := withScheme(cleanInput(raw))

	u, err := url.Parse(escapeStrayPercents(s))
	if err != nil || !allowedHost.MatchString(u.Hostname()) {
		return baseURL{}, false
	}

	scheme, rest, ok := strings.Cut(s, "://")
	if !ok {
		return baseURL{}, false
	}

	var b baseURL
	b.scheme = scheme
	rest, b.fragment, b.hasFragment = strings.Cut(rest, "#")
	rest, b.query, _ = strings.Cut(rest, "?")

	authority, path := rest, "/"
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		authority, path = rest[:i], rest[i:]
	}
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		b.userinfo = authority[:at+1]
	}

	host, ok := asciiHost(u.Hostname())
	if !ok {
		return baseURL{}, false
	}
	b.hostport = host
	if port := u.Port(); port != "" && !isDefaultPort(scheme, port) {
		b.hostport += ":" + port
	}
	b.path = percentEncode(path, inPathSet)
	return b, true
}

// hostProfile maps internationalized hosts the way browsers do: no
// transitional mapping and underscores or leading hyphens allowed.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
	idna.CheckHyphens(false),
)

func asciiHost(host string) (string, bool) {
	for i := 0; i < len(host); i++ {
		if host[i] >= utf8.RuneSelf {
			ascii, err := hostProfile.ToASCII(host)
			if err != nil {
				return "", false
			}
			return ascii, true
		}
	}
	return strings.ToLower(host), true
}

func isDefaultPort(scheme, port string) bool {
	return (scheme == "https" && port == "443") || (scheme == "http" && port == "80")
}

// ValidBaseURL reports whether raw is acceptable as a campaign base link: it
// must parse (https:// is assumed when no http scheme is present) and its host
// must end in .com or .es.
func ValidBaseURL(raw string) bool {
	_, ok := parseBase(raw)
	return ok
}

// Build tags the base URL. The boolean is false when the base URL is empty or
// rejected, which callers treat as "no link yet" rather than as an error.
func Build(p LinkParams) (Link, bool) {
	if p.BaseURL == "" {
		return Link{}, false
	}
	base, ok := parseBase(p.BaseURL)
	if !ok {
		return Link{}, false
	}

	link := Link{
		Source:   p.Source,
		Medium:   p.Channel.Medium,
		Campaign: CampaignTag(p.City),
	}

	q := parseOrderedQuery(base.query)
	q.Set(ParamSource, link.Source)
	q.Set(ParamMedium, link.Medium)
	q.Set(ParamCampaign, link.Campaign)
	if p.Content != "" {
		link.Content = Normalize(p.Content)
		q.Set(ParamContent, link.Content)
	}

	var b strings.Builder
	b.WriteString(base.scheme)
	b.WriteString("://")
	b.WriteString(base.userinfo)
	b.WriteString(base.hostport)
	b.WriteString(base.path)
	b.WriteByte('?')
	b.WriteString(q.Encode())
	if base.hasFragment {
		b.WriteByte('#')
		b.WriteString(percentEncode(base.fragment, inFragmentSet))
	}

	link.URL = b.String()
	return link, true
}
