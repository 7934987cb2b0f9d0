package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonmartinstorm/repokontekst/internal/models"
)

// Injecter en klient (for testbarhet). 30 sekunder er rikelig for
// GitHub sine REST-endepunkter; henger et kall lenger enn det regner
// vi forespørselen som feilet.
var HttpClient = &http.Client{Timeout: 30 * time.Second}

// BaseURL kan pekes mot en httptest-server i tester.
var BaseURL = "https://api.github.com"

const contributorsPerPage = 30

// Credential er enten et token eller anonym tilgang (public mode).
type Credential struct {
	Token string
}

func TokenCredential(token string) Credential { return Credential{Token: token} }
func Anonymous() Credential                   { return Credential{} }

// UserCredential er veien inn for tokens brukeren har skrevet selv.
// Formen sjekkes lokalt før noe nettverkskall. App-tokens (ghs_-
// prefiks) går utenom via AppCredential.
func UserCredential(token string) (Credential, error) {
	if err := ValidateToken(token); err != nil {
		return Credential{}, err
	}
	return Credential{Token: token}, nil
}

func (c Credential) IsAnonymous() bool { return c.Token == "" }

func (c Credential) Mode() models.AuthMode {
	if c.IsAnonymous() {
		return models.AuthPublic
	}
	return models.AuthToken
}

// ValidateToken avviser åpenbare skrivefeil lokalt, før vi bruker en
// rundtur på nettet. Gyldige tokens er minst 20 tegn og starter med
// ghp_ eller github_pat_.
func ValidateToken(token string) error {
	if len(token) < 20 {
		return &ValidationError{Msg: "token er for kort til å være gyldig"}
	}
	if !strings.HasPrefix(token, "ghp_") && !strings.HasPrefix(token, "github_pat_") {
		return &ValidationError{Msg: "token har ukjent prefiks – forventer ghp_ eller github_pat_"}
	}
	return nil
}

var repoURLPattern = regexp.MustCompile(`^https://(www\.)?github\.com/([^/]+)/([^/]+)(/.*)?$`)

// ParseRepoURL trekker owner og navn ut av en offentlig GitHub-URL.
func ParseRepoURL(rawURL string) (models.RepoIdentity, error) {
	m := repoURLPattern.FindStringSubmatch(strings.TrimSpace(rawURL))
	if m == nil {
		return models.RepoIdentity{}, &ValidationError{Msg: fmt.Sprintf("ikke en gyldig GitHub-URL: %q", rawURL)}
	}
	return models.RepoIdentity{Owner: m[2], Name: strings.TrimSuffix(m[3], ".git")}, nil
}

// authStrategy er fallback-rekkefølgen for ett kall: først med token,
// så uautentisert. Eksplisitt liste i stedet for nøstet feilhåndtering
// slik at fallbacken kan testes for seg.
type authStrategy struct {
	attempts []Credential
}

func strategyFor(cred Credential) authStrategy {
	if cred.IsAnonymous() {
		return authStrategy{attempts: []Credential{Anonymous()}}
	}
	return authStrategy{attempts: []Credential{cred, Anonymous()}}
}

// get kjører GET mot path med fallback. Returnerer credentialen som
// faktisk ble brukt, slik at under-kallene kan gjenbruke den.
func (s authStrategy) get(ctx context.Context, path string, out interface{}) (Credential, error) {
	var lastErr error
	for _, cred := range s.attempts {
		err := DoRequest(ctx, http.MethodGet, BaseURL+path, cred.Token, out)

		var authErr *AuthError
		if errors.As(err, &authErr) && !cred.IsAnonymous() {
			slog.Info("Token ble avvist – prøver uautentisert", "path", path, "status", authErr.Status)
			lastErr = err
			continue
		}
		if err != nil {
			return cred, err
		}
		return cred, nil
	}
	return Anonymous(), lastErr
}

// DoRequest gjør ett kall og mapper svaret til feiltypene våre. Ingen
// automatisk retry – rate limit og transportfeil går rett opp.
func DoRequest(ctx context.Context, method, rawURL, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return &NetworkError{Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := HttpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("Klarte ikke å lukke body", "error", cerr)
		}
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return json.NewDecoder(resp.Body).Decode(out)

	case isRateLimited(resp):
		reset, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
		slog.Warn("Rate limit brukt opp", "url", rawURL, "reset", reset)
		return &RateLimitError{Reset: reset}

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Status: resp.StatusCode}

	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Resource: rawURL}

	default:
		body, _ := io.ReadAll(resp.Body)
		slog.Error("GitHub-feil", "status", resp.StatusCode, "body", string(body))
		return &NetworkError{Err: fmt.Errorf("GitHub API-feil: status %d – %s", resp.StatusCode, string(body))}
	}
}

func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return false
	}
	return resp.Header.Get("X-RateLimit-Remaining") == "0"
}

type RepoFetcher struct{}

func NewRepoFetcher() *RepoFetcher { return &RepoFetcher{} }

// FetchRepository henter grunnkallet pluss de tre under-ressursene.
// Grunnkallet må lykkes; språk, bidragsytere og innhold hentes
// parallelt og degraderer hver for seg til tomme verdier.
func (r *RepoFetcher) FetchRepository(ctx context.Context, id models.RepoIdentity, cred Credential) (models.RawRepoData, error) {
	slog.Info("Henter repository", "repo", id.FullName(), "mode", cred.Mode())

	strategy := strategyFor(cred)

	var meta models.RepoMeta
	used, err := strategy.get(ctx, "/repos/"+id.Owner+"/"+id.Name, &meta)
	if err != nil {
		return models.RawRepoData{}, err
	}

	raw := models.RawRepoData{
		Repo:         meta,
		Languages:    map[string]int64{},
		Contributors: []models.Contributor{},
		Contents:     []models.ContentEntry{},
	}

	// Under-ressursene bruker credentialen som faktisk fungerte for
	// grunnkallet. Feil her er aldri fatale.
	base := "/repos/" + id.Owner + "/" + id.Name
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var langs map[string]int64
		if err := DoRequest(gctx, http.MethodGet, BaseURL+base+"/languages", used.Token, &langs); err != nil {
			slog.Warn("Klarte ikke hente språk – fortsetter uten", "repo", id.FullName(), "error", err)
			return nil
		}
		raw.Languages = langs
		return nil
	})

	g.Go(func() error {
		var contribs []models.Contributor
		url := fmt.Sprintf("%s%s/contributors?per_page=%d", BaseURL, base, contributorsPerPage)
		if err := DoRequest(gctx, http.MethodGet, url, used.Token, &contribs); err != nil {
			slog.Warn("Klarte ikke hente bidragsytere – fortsetter uten", "repo", id.FullName(), "error", err)
			return nil
		}
		raw.Contributors = contribs
		return nil
	})

	g.Go(func() error {
		var contents []models.ContentEntry
		if err := DoRequest(gctx, http.MethodGet, BaseURL+base+"/contents", used.Token, &contents); err != nil {
			slog.Warn("Klarte ikke hente innhold – fortsetter uten", "repo", id.FullName(), "error", err)
			return nil
		}
		raw.Contents = contents
		return nil
	})

	// Gorutinene returnerer alltid nil, men Wait gir oss synkronisering.
	_ = g.Wait()

	return raw, nil
}

// FetchUserRepositories lister den innloggede brukerens repos. Krever
// token – public mode har ingen "current user".
func (r *RepoFetcher) FetchUserRepositories(ctx context.Context, cred Credential) ([]models.RepoSummary, error) {
	if cred.IsAnonymous() {
		return nil, &AuthError{Status: http.StatusUnauthorized}
	}

	var metas []models.RepoMeta
	err := DoRequest(ctx, http.MethodGet, BaseURL+"/user/repos?per_page=100&sort=updated", cred.Token, &metas)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.RepoSummary, 0, len(metas))
	for _, m := range metas {
		summaries = append(summaries, summarizeMeta(m))
	}
	return summaries, nil
}

// FetchCurrentUser henter profilen til token-eieren.
func (r *RepoFetcher) FetchCurrentUser(ctx context.Context, cred Credential) (models.UserProfile, error) {
	if cred.IsAnonymous() {
		return models.UserProfile{}, &AuthError{Status: http.StatusUnauthorized}
	}

	var profile models.UserProfile
	err := DoRequest(ctx, http.MethodGet, BaseURL+"/user", cred.Token, &profile)
	return profile, err
}

// SearchRepositories er fritekstsøk, sortert på stjerner.
func (r *RepoFetcher) SearchRepositories(ctx context.Context, query string, cred Credential) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Msg: "søkestrengen kan ikke være tom"}
	}

	var result struct {
		Items []models.SearchResult `json:"items"`
	}

	searchURL := BaseURL + "/search/repositories?q=" + url.QueryEscape(query) + "&sort=stars&order=desc"
	strategy := strategyFor(cred)
	if _, err := strategy.get(ctx, strings.TrimPrefix(searchURL, BaseURL), &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// summarizeMeta er en grunn mapping for listevisning. Full
// normalisering med språkkart skjer i aggregator.
func summarizeMeta(m models.RepoMeta) models.RepoSummary {
	lang := m.Language
	if lang == "" {
		lang = "Unknown"
	}
	return models.RepoSummary{
		ID:              m.ID,
		Name:            m.Name,
		FullName:        m.FullName,
		Description:     m.Description,
		HtmlUrl:         m.HtmlUrl,
		PrimaryLanguage: lang,
		Stars:           m.Stars,
		Forks:           m.Forks,
		OpenIssues:      m.OpenIssues,
		SizeKB:          m.Size,
		License:         safeLicense(m.License),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		OwnerLogin:      m.Owner.Login,
		OwnerAvatarUrl:  m.Owner.AvatarUrl,
	}
}

func safeLicense(l *models.License) string {
	if l == nil {
		return ""
	}
	return l.SpdxID
}
