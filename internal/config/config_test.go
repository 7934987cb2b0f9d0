package config_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jonmartinstorm/repokontekst/internal/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("LoadConfigWithEnv", func() {
	It("skal lese konfigurasjon fra injisert env", func() {
		mockEnv := map[string]string{
			"REPO":          "acme/widgets",
			"GITHUB_TOKEN":  "ghp_abc",
			"KONTEKSTDEBUG": "true",
			"KONTEKST_DIR":  "/tmp/ut",
		}

		getenv := func(key string) string {
			return mockEnv[key]
		}

		cfg := config.LoadConfigWithEnv(getenv)

		Expect(cfg.Repo).To(Equal("acme/widgets"))
		Expect(cfg.Token).To(Equal("ghp_abc"))
		Expect(cfg.Debug).To(BeTrue())
		Expect(cfg.OutDir).To(Equal("/tmp/ut"))
	})

	It("skal bruke standardverdier når env er tomt bortsett fra repo", func() {
		cfg := config.LoadConfigWithEnv(func(string) string { return "" })

		Expect(cfg.Storage).To(Equal(config.StorageFile))
		Expect(cfg.OutDir).To(Equal("kontekst"))
		Expect(cfg.Template).To(Equal("comprehensive"))
		Expect(cfg.Debug).To(BeFalse())
	})
})

var _ = Describe("ValidateConfig", func() {
	valid := func() config.Config {
		return config.Config{
			Repo:    "acme/widgets",
			Storage: config.StorageFile,
			OutDir:  "kontekst",
		}
	}

	It("skal godta en komplett fil-konfigurasjon", func() {
		Expect(config.ValidateConfig(valid())).To(Succeed())
	})

	It("skal kreve REPO eller REPO_URL", func() {
		cfg := valid()
		cfg.Repo = ""
		err := config.ValidateConfig(cfg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("REPO"))
	})

	It("skal avvise REPO uten skråstrek", func() {
		cfg := valid()
		cfg.Repo = "widgets"
		Expect(config.ValidateConfig(cfg)).To(HaveOccurred())
	})

	It("skal kreve DSN for postgres-lagring", func() {
		cfg := valid()
		cfg.Storage = config.StoragePostgres
		err := config.ValidateConfig(cfg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("POSTGRES_DSN"))
	})

	It("skal avvise ukjent lagringstype", func() {
		cfg := valid()
		cfg.Storage = "minnepinne"
		Expect(config.ValidateConfig(cfg)).To(HaveOccurred())
	})

	It("skal kreve både prosjekt og datasett for bigquery-eksport", func() {
		cfg := valid()
		cfg.BQProjectID = "prosjekt"
		err := config.ValidateConfig(cfg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("BQ_DATASET"))
	})

	It("skal kreve alle tre app-feltene sammen", func() {
		cfg := valid()
		cfg.AppID = "12345"
		Expect(config.ValidateConfig(cfg)).To(HaveOccurred())
	})
})
