package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"utm-som/internal/observability"
	"utm-som/internal/sink"
	"utm-som/internal/utm"
)

var (
	ErrUnknownChannel     = errors.New("unknown channel")
	ErrUnknownCity        = errors.New("unknown city")
	ErrUnknownAlias       = errors.New("unknown alias")
	ErrUnknownUser        = errors.New("unknown user")
	ErrUnknownSource      = errors.New("source does not belong to channel")
	ErrHistoryUnavailable = errors.New("link history is not stored locally")
)

// InvalidBaseURLMessage is shown under the base URL field while it is rejected.
const InvalidBaseURLMessage = "La URL debe terminar en .com o .es (ej: tusitio.com, tusitio.es)"

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// LinkRequest is the form state sent by the client. Empty catalog fields take
// the first catalog entry, an empty Source takes the channel's first source.
type LinkRequest struct {
	BaseURL      string
	User         string
	Alias        string
	City         string
	Channel      string
	Source       string
	CustomSource string
	Content      string
}

// LinkResult is what the form renders. Ready is false while the base URL is
// empty or rejected, in which case FinalURL is empty.
type LinkResult struct {
	Ready             bool
	FinalURL          string
	ValidationMessage string
	Source            string
	Medium            string
	Campaign          string
	Content           string
	Dispatched        bool
}

// Catalog lists the static choices offered by the form.
type Catalog struct {
	Channels         []utm.Channel
	Cities           []string
	Aliases          []string
	Users            []string
	CampaignTemplate string
	HistoryURL       string
}

type LinkProcessor struct {
	dispatcher RecordDispatcher
	history    HistoryStore
	historyURL string
	now        func() time.Time
	logger     *observability.Logger
}

// New creates the processor. history may be nil when no ledger is configured.
func New(dispatcher RecordDispatcher, history HistoryStore, historyURL string, logger *observability.Logger) LinkProcessor {
	return LinkProcessor{
		dispatcher: dispatcher,
		history:    history,
		historyURL: historyURL,
		now:        time.Now,
		logger:     logger,
	}
}

// Catalog returns the form choices.
func (p *LinkProcessor) Catalog() Catalog {
	return Catalog{
		Channels:         utm.Channels(),
		Cities:           utm.Cities(),
		Aliases:          utm.Aliases(),
		Users:            utm.Users(),
		CampaignTemplate: utm.CampaignTemplate,
		HistoryURL:       p.historyURL,
	}
}

type form struct {
	user   string
	alias  string
	params utm.LinkParams
}

func firstIfEmpty(v string, list []string) string {
	if v == "" && len(list) > 0 {
		return list[0]
	}
	return v
}

func (p *LinkProcessor) resolve(req LinkRequest) (form, error) {
	f := form{
		user:  firstIfEmpty(req.User, utm.Users()),
		alias: firstIfEmpty(req.Alias, utm.Aliases()),
	}
	if !utm.IsUser(f.user) {
		return form{}, fmt.Errorf("%w: %q", ErrUnknownUser, f.user)
	}
	if !utm.IsAlias(f.alias) {
		return form{}, fmt.Errorf("%w: %q", ErrUnknownAlias, f.alias)
	}

	city := firstIfEmpty(req.City, utm.Cities())
	if !utm.IsCity(city) {
		return form{}, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}

	channelName := req.Channel
	if channelName == "" {
		channelName = utm.Channels()[0].Name
	}
	channel, ok := utm.LookupChannel(channelName)
	if !ok {
		return form{}, fmt.Errorf("%w: %q", ErrUnknownChannel, channelName)
	}

	selected := req.Source
	if selected == "" {
		selected = channel.DefaultSource()
	} else if !channel.HasSource(selected) {
		return form{}, fmt.Errorf("%w: %q", ErrUnknownSource, selected)
	}

	f.params = utm.LinkParams{
		BaseURL: req.BaseURL,
		City:    city,
		Channel: channel,
		Source:  utm.ResolveSource(channel, selected, req.CustomSource),
		Content: req.Content,
	}
	return f, nil
}

func (p *LinkProcessor) build(f form) LinkResult {
	link, ok := utm.Build(f.params)
	if !ok {
		result := LinkResult{
			Source:   f.params.Source,
			Medium:   f.params.Channel.Medium,
			Campaign: utm.CampaignTag(f.params.City),
		}
		if f.params.BaseURL != "" {
			result.ValidationMessage = InvalidBaseURLMessage
		}
		return result
	}
	return LinkResult{
		Ready:    true,
		FinalURL: link.URL,
		Source:   link.Source,
		Medium:   link.Medium,
		Campaign: link.Campaign,
		Content:  link.Content,
	}
}

// Preview builds the link without side effects.
func (p *LinkProcessor) Preview(ctx context.Context, req LinkRequest) (LinkResult, error) {
	f, err := p.resolve(req)
	if err != nil {
		return LinkResult{}, err
	}
	return p.build(f), nil
}

// Commit builds the link and, when it is ready, hands the record to the
// dispatcher. The dispatch runs in the background; its outcome is only
// visible through Notice.
func (p *LinkProcessor) Commit(ctx context.Context, req LinkRequest) (LinkResult, error) {
	f, err := p.resolve(req)
	if err != nil {
		return LinkResult{}, err
	}

	result := p.build(f)
	if !result.Ready {
		return result, nil
	}

	link := utm.Link{
		URL:      result.FinalURL,
		Source:   result.Source,
		Medium:   result.Medium,
		Campaign: result.Campaign,
		Content:  result.Content,
	}
	record := utm.NewRecord(p.now(), f.user, f.alias, f.params, link)

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "usuario", Value: f.user},
		observability.Field{Key: "canal", Value: f.params.Channel.Name},
	)
	result.Dispatched = p.dispatcher.Dispatch(ctx, f.user, record)
	if !result.Dispatched {
		p.logger.Debug(ctx, "no record sink configured, link not logged")
	}
	return result, nil
}

// Notice returns the transient save notice for a user.
func (p *LinkProcessor) Notice(ctx context.Context, user string) (sink.Notice, error) {
	user = firstIfEmpty(user, utm.Users())
	if !utm.IsUser(user) {
		return sink.Notice{}, fmt.Errorf("%w: %q", ErrUnknownUser, user)
	}
	notice, err := p.dispatcher.Notice(ctx, user)
	if err != nil {
		p.logger.Error(ctx, "failed to read notice", err)
		return sink.Notice{}, fmt.Errorf("failed to read notice: %w", err)
	}
	return notice, nil
}

// NoticeWatch follows the save notice of one user. Current is the notice at
// subscription time; Events carries every later change made by this process.
type NoticeWatch struct {
	User    string
	Current sink.Notice
	Events  <-chan sink.NoticeEvent
	Stop    func()
}

// WatchNotice subscribes to a user's save notice. The caller must call Stop.
func (p *LinkProcessor) WatchNotice(ctx context.Context, user string) (NoticeWatch, error) {
	user = firstIfEmpty(user, utm.Users())
	if !utm.IsUser(user) {
		return NoticeWatch{}, fmt.Errorf("%w: %q", ErrUnknownUser, user)
	}

	// Subscribe first so a change between the read and the subscription is
	// not lost.
	events, stop := p.dispatcher.Subscribe(user)
	current, err := p.dispatcher.Notice(ctx, user)
	if err != nil {
		stop()
		p.logger.Error(ctx, "failed to read notice", err)
		return NoticeWatch{}, fmt.Errorf("failed to read notice: %w", err)
	}

	return NoticeWatch{User: user, Current: current, Events: events, Stop: stop}, nil
}

// History returns the most recent records kept in the ledger.
func (p *LinkProcessor) History(ctx context.Context, limit int) ([]utm.Record, error) {
	if p.history == nil {
		return nil, ErrHistoryUnavailable
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := p.history.ListRecentLinkRecords(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	records := make([]utm.Record, len(rows))
	for i, row := range rows {
		records[i] = row.Record()
	}
	return records, nil
}
