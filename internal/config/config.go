package config

import (
	"errors"
	"strings"
)

type StorageType string

const (
	StorageFile     StorageType = "file"
	StoragePostgres StorageType = "postgres"
)

type Config struct {
	// Hva som skal analyseres. Enten RepoURL (public mode) eller Repo
	// på formen owner/navn.
	Repo    string
	RepoURL string
	Branch  string

	// Token er valgfritt – uten token kjører vi i public mode mot de
	// uautentiserte endepunktene.
	Token string

	// GitHub App-pålogging, valgfritt alternativ til Token.
	AppID             string
	AppInstallationID string
	AppPrivateKeyPath string

	Template     string
	Instructions string

	Debug   bool
	OutDir  string
	Storage StorageType

	PostgresDSN string

	// Valgfri eksport av ferdige analyser til BigQuery.
	BQProjectID   string
	BQDataset     string
	BQCredentials string
}

// LoadConfigWithEnv leser konfigurasjon via en injisert getenv, slik
// at tester slipper å røre prosessens miljø.
func LoadConfigWithEnv(getenv func(string) string) Config {
	storage := StorageType(getenv("KONTEKST_STORAGE"))
	if storage == "" {
		storage = StorageFile
	}

	outdir := getenv("KONTEKST_DIR")
	if outdir == "" {
		outdir = "kontekst"
	}

	template := getenv("KONTEKST_TEMPLATE")
	if template == "" {
		template = "comprehensive"
	}

	return Config{
		Repo:              getenv("REPO"),
		RepoURL:           getenv("REPO_URL"),
		Branch:            getenv("REPO_BRANCH"),
		Token:             getenv("GITHUB_TOKEN"),
		AppID:             getenv("GITHUB_APP_ID"),
		AppInstallationID: getenv("GITHUB_APP_INSTALLATION_ID"),
		AppPrivateKeyPath: getenv("GITHUB_APP_KEY"),
		Template:          template,
		Instructions:      getenv("KONTEKST_INSTRUKS"),
		Debug:             getenv("KONTEKSTDEBUG") == "true",
		OutDir:            outdir,
		Storage:           storage,
		PostgresDSN:       getenv("POSTGRES_DSN"),
		BQProjectID:       getenv("BQ_PROJECT_ID"),
		BQDataset:         getenv("BQ_DATASET"),
		BQCredentials:     getenv("BQ_CREDENTIALS"),
	}
}

// ValidateConfig sjekker at kombinasjonen av felter gir en kjørbar
// pipeline.
func ValidateConfig(cfg Config) error {
	if cfg.Repo == "" && cfg.RepoURL == "" {
		return errors.New("REPO eller REPO_URL må være satt")
	}
	if cfg.Repo != "" && !strings.Contains(cfg.Repo, "/") {
		return errors.New("REPO må være på formen owner/navn")
	}

	switch cfg.Storage {
	case StorageFile:
		if cfg.OutDir == "" {
			return errors.New("KONTEKST_DIR må være satt for fillagring")
		}
	case StoragePostgres:
		if cfg.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN må være satt for postgres-lagring")
		}
	default:
		return errors.New("ugyldig verdi for KONTEKST_STORAGE – må være 'file' eller 'postgres'")
	}

	// BigQuery-eksport er alt-eller-ingenting.
	if cfg.BQProjectID != "" || cfg.BQDataset != "" {
		if cfg.BQProjectID == "" || cfg.BQDataset == "" {
			return errors.New("BQ_PROJECT_ID og BQ_DATASET må begge være satt for bigquery-eksport")
		}
	}

	if cfg.AppID != "" || cfg.AppInstallationID != "" || cfg.AppPrivateKeyPath != "" {
		if cfg.AppID == "" || cfg.AppInstallationID == "" || cfg.AppPrivateKeyPath == "" {
			return errors.New("GITHUB_APP_ID, GITHUB_APP_INSTALLATION_ID og GITHUB_APP_KEY må alle være satt for app-pålogging")
		}
	}

	return nil
}
