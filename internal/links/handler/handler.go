package handler

import (
	"net/http"

	"utm-som/internal/apierrors"
	"utm-som/internal/links/processor"
	"utm-som/internal/observability"
	"utm-som/internal/utm"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.LinkProcessor
	logger    *observability.Logger
}

func New(processor processor.LinkProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// LinkRequest is the form state posted by the client
type LinkRequest struct {
	URLBase      string `json:"url_base" binding:"max=2048"`
	Usuario      string `json:"usuario" binding:"max=200"`
	Alias        string `json:"alias" binding:"max=200"`
	Ciudad       string `json:"ciudad" binding:"max=200"`
	Canal        string `json:"canal" binding:"max=200"`
	Source       string `json:"source" binding:"max=200"`
	CustomSource string `json:"custom_source" binding:"max=200"`
	UTMContent   string `json:"utm_content" binding:"max=500"`
}

func (r LinkRequest) toProcessor() processor.LinkRequest {
	return processor.LinkRequest{
		BaseURL:      r.URLBase,
		User:         r.Usuario,
		Alias:        r.Alias,
		City:         r.Ciudad,
		Channel:      r.Canal,
		Source:       r.Source,
		CustomSource: r.CustomSource,
		Content:      r.UTMContent,
	}
}

type LinkResponse struct {
	Ready             bool   `json:"ready"`
	FinalURL          string `json:"final_url"`
	ValidationMessage string `json:"validation_message,omitempty"`
	UTMSource         string `json:"utm_source"`
	UTMMedium         string `json:"utm_medium"`
	UTMCampaign       string `json:"utm_campaign"`
	UTMContent        string `json:"utm_content,omitempty"`
	Dispatched        bool   `json:"dispatched"`
}

func newLinkResponse(r processor.LinkResult) LinkResponse {
	return LinkResponse{
		Ready:             r.Ready,
		FinalURL:          r.FinalURL,
		ValidationMessage: r.ValidationMessage,
		UTMSource:         r.Source,
		UTMMedium:         r.Medium,
		UTMCampaign:       r.Campaign,
		UTMContent:        r.Content,
		Dispatched:        r.Dispatched,
	}
}

type CatalogResponse struct {
	Channels         []utm.Channel `json:"channels"`
	Cities           []string      `json:"cities"`
	Aliases          []string      `json:"aliases"`
	Users            []string      `json:"users"`
	CampaignTemplate string        `json:"campaign_template"`
	HistoryURL       string        `json:"history_url,omitempty"`
}

type NoticeResponse struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

type HistoryResponse struct {
	Records []utm.Record `json:"records"`
}

// HandleCatalog returns the channels, cities, aliases and users offered by the form
func (h *Handler) HandleCatalog(c *gin.Context) {
	catalog := h.processor.Catalog()
	c.JSON(http.StatusOK, CatalogResponse{
		Channels:         catalog.Channels,
		Cities:           catalog.Cities,
		Aliases:          catalog.Aliases,
		Users:            catalog.Users,
		CampaignTemplate: catalog.CampaignTemplate,
		HistoryURL:       catalog.HistoryURL,
	})
}

// HandlePreview recomputes the link for the current form state
func (h *Handler) HandlePreview(c *gin.Context) {
	ctx := c.Request.Context()

	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.processor.Preview(ctx, req.toProcessor())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLinkResponse(result))
}

// HandleCommit builds the link and logs it in the background. The response
// never waits for the sinks.
func (h *Handler) HandleCommit(c *gin.Context) {
	ctx := c.Request.Context()

	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.processor.Commit(ctx, req.toProcessor())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLinkResponse(result))
}

// HandleNotice returns the save notice of the given user
func (h *Handler) HandleNotice(c *gin.Context) {
	ctx := c.Request.Context()

	notice, err := h.processor.Notice(ctx, c.Query("usuario"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, NoticeResponse{
		State:   string(notice.State),
		Message: notice.Message,
	})
}

// HandleHistory lists the most recent links kept in the ledger
func (h *Handler) HandleHistory(c *gin.Context) {
	ctx := c.Request.Context()

	var query HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	records, err := h.processor.History(ctx, query.Limit)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{Records: records})
}
