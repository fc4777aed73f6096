package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// maxQueryLength é o tamanho máximo aceito pela busca da Wikipedia
	maxQueryLength = 300

	// NoResults é devolvido quando a busca não encontra nenhuma página
	NoResults = "No good Wikipedia Search Result was found"

	userAgent = "go-wikichat/1.0 (https://github.com/vitormoschetta/go-wikichat)"
)

// Wikipedia consulta a API MediaWiki e devolve resumos das páginas encontradas
type Wikipedia struct {
	baseURL    string
	client     *http.Client
	maxResults int
	maxChars   int
}

// Option configura um cliente Wikipedia
type Option func(*Wikipedia)

// WithHTTPClient substitui o cliente HTTP padrão
func WithHTTPClient(client *http.Client) Option {
	return func(w *Wikipedia) { w.client = client }
}

// WithBaseURL aponta o cliente para outro endpoint api.php
func WithBaseURL(baseURL string) Option {
	return func(w *Wikipedia) { w.baseURL = baseURL }
}

// WithMaxResults limita o número de páginas resumidas
func WithMaxResults(n int) Option {
	return func(w *Wikipedia) {
		if n > 0 {
			w.maxResults = n
		}
	}
}

// WithMaxChars limita o tamanho do texto devolvido
func WithMaxChars(n int) Option {
	return func(w *Wikipedia) {
		if n > 0 {
			w.maxChars = n
		}
	}
}

// NewWikipedia cria um cliente para a Wikipedia no idioma informado
func NewWikipedia(lang string, opts ...Option) *Wikipedia {
	if lang == "" {
		lang = "en"
	}
	w := &Wikipedia{
		baseURL:    fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang),
		client:     &http.Client{Timeout: 15 * time.Second},
		maxResults: 3,
		maxChars:   4000,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Lookup busca a consulta e devolve "Page: ...\nSummary: ..." de cada página,
// separadas por linha em branco e truncadas em maxChars.
func (w *Wikipedia) Lookup(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("wikipedia: query is empty")
	}
	query = truncate(query, maxQueryLength)

	titles, err := w.search(ctx, query)
	if err != nil {
		return "", err
	}

	var summaries []string
	for _, title := range titles {
		page, err := w.summary(ctx, title)
		if err != nil {
			return "", err
		}
		if page == nil {
			continue
		}
		summaries = append(summaries, fmt.Sprintf("Page: %s\nSummary: %s", page.Title, page.Extract))
	}

	if len(summaries) == 0 {
		return NoResults, nil
	}
	return truncate(strings.Join(summaries, "\n\n"), w.maxChars), nil
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type page struct {
	Title     string         `json:"title"`
	Extract   string         `json:"extract"`
	Missing   bool           `json:"missing"`
	Invalid   bool           `json:"invalid"`
	PageProps map[string]any `json:"pageprops"`
}

// isDisambiguation indica páginas do tipo "X may refer to:"
func (p page) isDisambiguation() bool {
	_, ok := p.PageProps["disambiguation"]
	return ok
}

// apiError é o envelope que a MediaWiki devolve com status 200 em caso de falha
type apiError struct {
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

type extractResponse struct {
	Query struct {
		Pages []page `json:"pages"`
	} `json:"query"`
}

func (w *Wikipedia) search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(w.maxResults))
	params.Set("srprop", "")

	var payload searchResponse
	if err := w.get(ctx, params, &payload); err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}

	titles := make([]string, 0, len(payload.Query.Search))
	for _, hit := range payload.Query.Search {
		if hit.Title == "" {
			continue
		}
		titles = append(titles, hit.Title)
		if len(titles) >= w.maxResults {
			break
		}
	}
	return titles, nil
}

// summary devolve nil quando a página não existe, não tem texto ou é de desambiguação
func (w *Wikipedia) summary(ctx context.Context, title string) (*page, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts|pageprops")
	params.Set("ppprop", "disambiguation")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", title)

	var payload extractResponse
	if err := w.get(ctx, params, &payload); err != nil {
		return nil, fmt.Errorf("wikipedia page %q: %w", title, err)
	}

	for i := range payload.Query.Pages {
		p := payload.Query.Pages[i]
		if p.Missing || p.Invalid || p.isDisambiguation() || strings.TrimSpace(p.Extract) == "" {
			continue
		}
		p.Extract = strings.TrimSpace(p.Extract)
		return &p, nil
	}
	return nil, nil
}

func (w *Wikipedia) get(ctx context.Context, params url.Values, out any) error {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("mediawiki %s: %s", envelope.Error.Code, envelope.Error.Info)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// truncate corta s em n runas sem quebrar caracteres multibyte
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
