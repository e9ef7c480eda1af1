package utm

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustChannel(t *testing.T, name string) Channel {
	t.Helper()
	ch, ok := LookupChannel(name)
	require.True(t, ok, "channel %q missing from catalog", name)
	return ch
}

func TestValidBaseURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "entradas.jardin.com", want: true},
		{input: "https://entradas.jardin.es/x", want: true},
		{input: "http://entradas.jardin.com/entradas?x=1", want: true},
		{input: "ENTRADAS.JARDIN.COM", want: true},
		{input: "jardin.es:8080/path", want: true},
		{input: "entradas.jardin.com ", want: true},
		{input: "https://entradas.jardin.com\n", want: true},
		{input: "\tentradas.jardin.es/x\r\n", want: true},
		{input: "http:entradas.jardin.com", want: true},
		{input: "https:///entradas.jardin.es", want: true},
		{input: "entradas.jardin.com/%zz", want: true},
		{input: "httpentradas.jardin.com", want: false},
		{input: "entradas.jardin.org", want: false},
		{input: "entradas.jardin.com.ar", want: false},
		{input: "not a url", want: false},
		{input: "https://", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidBaseURL(tt.input))
		})
	}
}

func TestCampaignTag(t *testing.T) {
	assert.Equal(t, "jardin_delicias_marbella_2026", CampaignTag("Marbella"))
	assert.Equal(t, "jardin_delicias_valencia_2026", CampaignTag("Valencia"))
	assert.Equal(t, "jardin_delicias_malaga_2026", CampaignTag("Málaga"))
}

func TestResolveSource(t *testing.T) {
	tests := []struct {
		name     string
		channel  string
		selected string
		freeText string
		want     string
	}{
		{name: "predefined source", channel: "Redes sociales orgánicas", selected: "instagram", want: "instagram"},
		{name: "free text ignored without custom mode", channel: "Redes sociales orgánicas", selected: "tiktok", freeText: "Otra Red", want: "tiktok"},
		{name: "influencer prefix", channel: "Influencers", freeText: "Ana López", want: "influencer_ana_lopez"},
		{name: "partner without prefix", channel: "Afiliados / Partners", freeText: "Nombre Partner", want: "nombre_partner"},
		{name: "custom mode with empty text falls back", channel: "Referral (externo)", selected: "google", want: "google"},
		{name: "placeholder passes through", channel: "Paid Social", selected: "{{site_source_name}}", want: "{{site_source_name}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSource(mustChannel(t, tt.channel), tt.selected, tt.freeText)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_OrganicSocial(t *testing.T) {
	ch := mustChannel(t, "Redes sociales orgánicas")

	link, ok := Build(LinkParams{
		BaseURL: "https://entradas.jardin.com",
		City:    "Valencia",
		Channel: ch,
		Source:  ResolveSource(ch, "instagram", ""),
	})

	require.True(t, ok)
	assert.Equal(t,
		"https://entradas.jardin.com/?utm_source=instagram&utm_medium=social&utm_campaign=jardin_delicias_valencia_2026",
		link.URL)
	assert.NotContains(t, link.URL, ParamContent)
	assert.Empty(t, link.Content)
}

func TestBuild_InfluencerWithContent(t *testing.T) {
	ch := mustChannel(t, "Influencers")

	link, ok := Build(LinkParams{
		BaseURL: "entradas.jardin.com",
		City:    "Sevilla",
		Channel: ch,
		Source:  ResolveSource(ch, "", "Ana López"),
		Content: "Black Friday",
	})

	require.True(t, ok)
	u, err := url.Parse(link.URL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "influencer_ana_lopez", q.Get(ParamSource))
	assert.Equal(t, "influencer", q.Get(ParamMedium))
	assert.Equal(t, "jardin_delicias_sevilla_2026", q.Get(ParamCampaign))
	assert.Equal(t, "black_friday", q.Get(ParamContent))
	assert.Equal(t, "black_friday", link.Content)
	assert.Equal(t, "https", u.Scheme)
}

func TestBuild_PaidSocialPlaceholder(t *testing.T) {
	ch := mustChannel(t, "Paid Social")
	source := ResolveSource(ch, ch.DefaultSource(), "")
	require.Equal(t, "{{site_source_name}}", source)

	link, ok := Build(LinkParams{
		BaseURL: "https://entradas.jardin.es",
		City:    "Madrid",
		Channel: ch,
		Source:  source,
	})

	require.True(t, ok)
	assert.Equal(t, "{{site_source_name}}", link.Source)
	u, err := url.Parse(link.URL)
	require.NoError(t, err)
	assert.Equal(t, "{{site_source_name}}", u.Query().Get(ParamSource))
	assert.Equal(t, "paid_social", u.Query().Get(ParamMedium))
}

func TestBuild_PreservesExistingQuery(t *testing.T) {
	ch := mustChannel(t, "Paid Search (SEM)")

	tests := []struct {
		name string
		base string
		want string
	}{
		{
			name: "existing utm keys replaced in place",
			base: "https://entradas.jardin.com/tickets?ref=home&utm_source=old&lang=es&utm_source=older#top",
			want: "https://entradas.jardin.com/tickets?ref=home&utm_source=google&lang=es&utm_medium=cpc&utm_campaign=jardin_delicias_marbella_2026#top",
		},
		{
			name: "form encoding of existing values",
			base: "https://entradas.jardin.com/?q=a*b~c",
			want: "https://entradas.jardin.com/?q=a*b%7Ec&utm_source=google&utm_medium=cpc&utm_campaign=jardin_delicias_marbella_2026",
		},
		{
			name: "pasted with whitespace and stray percent",
			base: "  http:entradas.jardin.com/%zz?x=1+2 \n",
			want: "http://entradas.jardin.com/%zz?x=1+2&utm_source=google&utm_medium=cpc&utm_campaign=jardin_delicias_marbella_2026",
		},
		{
			name: "default port dropped and path escaped",
			base: "https://Entradas.Jardin.com:443/a b?name=Ana%20L%C3%B3pez",
			want: "https://entradas.jardin.com/a%20b?name=Ana+L%C3%B3pez&utm_source=google&utm_medium=cpc&utm_campaign=jardin_delicias_marbella_2026",
		},
		{
			name: "broken escape in query kept literally",
			base: "entradas.jardin.es?promo=50%off",
			want: "https://entradas.jardin.es/?promo=50%25off&utm_source=google&utm_medium=cpc&utm_campaign=jardin_delicias_marbella_2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, ok := Build(LinkParams{
				BaseURL: tt.base,
				City:    "Marbella",
				Channel: ch,
				Source:  "google",
			})
			require.True(t, ok)
			assert.Equal(t, tt.want, link.URL)
		})
	}
}

func TestBuild_NotReady(t *testing.T) {
	ch := mustChannel(t, "Paid Search (SEM)")

	for _, base := range []string{"", "entradas.jardin.org", "not a url"} {
		link, ok := Build(LinkParams{BaseURL: base, City: "Madrid", Channel: ch, Source: "google"})
		assert.False(t, ok, base)
		assert.Empty(t, link.URL, base)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	ch := mustChannel(t, "Newsletter / Email marketing")
	params := LinkParams{
		BaseURL: "entradas.jardin.com/?b=2&a=1",
		City:    "Madrid",
		Channel: ch,
		Source:  "newsletter",
		Content: "Lanzamiento",
	}

	first, ok := Build(params)
	require.True(t, ok)
	for i := 0; i < 20; i++ {
		again, _ := Build(params)
		assert.Equal(t, first.URL, again.URL)
	}
}
