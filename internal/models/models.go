package models

import "time"

// RepoIdentity peker på ett repository. Uforanderlig etter at en
// analyse er satt i gang.
type RepoIdentity struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r RepoIdentity) FullName() string {
	return r.Owner + "/" + r.Name
}

// RepoMeta er rå metadata fra GitHub sitt repos-endepunkt. Feltene
// speiler API-responsen og er ikke normalisert.
type RepoMeta struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	HtmlUrl     string   `json:"html_url"`
	Language    string   `json:"language"`
	Stars       int64    `json:"stargazers_count"`
	Forks       int64    `json:"forks_count"`
	OpenIssues  int64    `json:"open_issues_count"`
	Size        int64    `json:"size"`
	Private     bool     `json:"private"`
	IsFork      bool     `json:"fork"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Topics      []string `json:"topics"`
	License     *License `json:"license"`
	Owner       RepoOwner `json:"owner"`
}

type License struct {
	SpdxID string `json:"spdx_id"`
}

type RepoOwner struct {
	Login     string `json:"login"`
	AvatarUrl string `json:"avatar_url"`
	HtmlUrl   string `json:"html_url"`
}

// Contributor er ett element fra contributors-endepunktet.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int64  `json:"contributions"`
	AvatarUrl     string `json:"avatar_url"`
}

// ContentEntry er ett element fra contents-endepunktet (toppnivå).
type ContentEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// RawRepoData er alt klienten henter for ett repository før
// normalisering. Eies av fetcher kun mens hentingen pågår og sendes
// videre som verdi.
type RawRepoData struct {
	Repo         RepoMeta
	Languages    map[string]int64
	Contributors []Contributor
	Contents     []ContentEntry
}

// RepoSummary er den normaliserte grunndelen av et analyseresultat.
type RepoSummary struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	FullName        string           `json:"full_name"`
	Description     string           `json:"description"`
	HtmlUrl         string           `json:"html_url"`
	PrimaryLanguage string           `json:"primary_language"`
	Languages       map[string]int64 `json:"languages"`
	Stars           int64            `json:"stars"`
	Forks           int64            `json:"forks"`
	OpenIssues      int64            `json:"open_issues"`
	SizeKB          int64            `json:"size_kb"`
	License         string           `json:"license"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
	OwnerLogin      string           `json:"owner_login"`
	OwnerAvatarUrl  string           `json:"owner_avatar_url"`
}

// DerivedMetrics er de avledede feltene. ComplexityScore er i denne
// versjonen et plassholdertall fra MetricsProvider, se aggregator.
type DerivedMetrics struct {
	Framework        string `json:"framework"`
	Architecture     string `json:"architecture"`
	ComplexityScore  int    `json:"complexity_score"`
	ContributorCount int    `json:"contributor_count"`
	FileCount        int    `json:"file_count"`
	HasTests         bool   `json:"has_tests"`
	HasCI            bool   `json:"has_ci"`
	HasDocs          bool   `json:"has_docs"`
}

// AnalysisResult er det normaliserte bildet av ett repository.
type AnalysisResult struct {
	Basic    RepoSummary    `json:"basic"`
	Analysis DerivedMetrics `json:"analysis"`
}

// Template er en navngitt, ordnet liste av dokumentseksjoner.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Sections    []string  `json:"sections"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
}

// JobStatus følger tilstandsmaskinen queued -> analyzing ->
// {completed, failed}. Terminale tilstander er endelige.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusAnalyzing JobStatus = "analyzing"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// AuthMode sier hvilke påloggingsmodus en jobb ble kjørt med.
type AuthMode string

const (
	AuthToken  AuthMode = "token"
	AuthPublic AuthMode = "public"
)

// Job er én brukerutløst analyse med livssyklus. En retry lager alltid
// en ny Job med ny id.
type Job struct {
	ID           string    `json:"id"`
	Repository   string    `json:"repository"`
	Template     string    `json:"template"`
	Status       JobStatus `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Downloaded   bool      `json:"downloaded"`
	Branch       string    `json:"branch"`
	Instructions string    `json:"custom_instructions"`
	AuthMode     AuthMode  `json:"auth_mode"`
	Error        string    `json:"error,omitempty"`
}

// JobRequest er input til JobLedger.Create.
type JobRequest struct {
	Repository   string
	Template     string
	Branch       string
	Instructions string
	AuthMode     AuthMode
}

// SearchResult er ett treff fra søkeendepunktet.
type SearchResult struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int64  `json:"stargazers_count"`
	Language    string `json:"language"`
	HtmlUrl     string `json:"html_url"`
}

// UserProfile er den innloggede brukeren fra /user.
type UserProfile struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarUrl string `json:"avatar_url"`
	HtmlUrl   string `json:"html_url"`
}
