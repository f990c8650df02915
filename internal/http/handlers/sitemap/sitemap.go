// Package sitemap реализует HTTP-обработчик карты сайта для поисковых систем.
package sitemap

import (
	"encoding/xml"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/docmycode/docmycode/internal/lib/sl"
)

// URL — одна запись карты сайта.
type URL struct {
	Loc string `xml:"loc"`
}

// URLSet — корневой элемент карты сайта.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Handler отдает карту сайта в формате XML.
type Handler struct {
	log     *slog.Logger
	siteURL string
}

// New создает новый экземпляр Handler с базовым адресом сайта.
func New(log *slog.Logger, siteURL string) *Handler {
	return &Handler{
		log:     log,
		siteURL: siteURL,
	}
}

// ServeHTTP godoc
// @Summary Карта сайта
// @Description Возвращает sitemap.xml с публичными страницами сайта.
// @Tags Sitemap
// @Produce  xml
// @Success 200 {string} string "XML карта сайта"
// @Router /sitemap.xml [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sitemap"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	urlset := URLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []URL{
			{Loc: h.siteURL + "/"},
			{Loc: h.siteURL + "/auth"},
			{Loc: h.siteURL + "/contact"},
			{Loc: h.siteURL + "/docmycode"},
		},
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", "stale-while-revalidate, s-maxage=3600")

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		log.Error("failed to write sitemap header", sl.Err(err))
		return
	}
	if err := xml.NewEncoder(w).Encode(urlset); err != nil {
		log.Error("failed to encode sitemap", sl.Err(err))
	}
}
