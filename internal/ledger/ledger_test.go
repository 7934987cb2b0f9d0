package ledger_test

import (
	"fmt"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jonmartinstorm/repokontekst/internal/ledger"
	"github.com/jonmartinstorm/repokontekst/internal/models"
	"github.com/jonmartinstorm/repokontekst/internal/store"
	"github.com/jonmartinstorm/repokontekst/test/testutils"
)

func TestLedger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ledger Suite")
}

func request(repo string) models.JobRequest {
	return models.JobRequest{
		Repository: repo,
		Template:   "comprehensive",
		AuthMode:   models.AuthPublic,
	}
}

var _ = Describe("Ledger", func() {
	var (
		mem *testutils.MemStore
		led *ledger.Ledger
	)

	BeforeEach(func() {
		mem = testutils.NewMemStore()
		led = ledger.NewLedger(mem)
	})

	It("skal opprette jobber som queued med unik id", func() {
		a := led.Create(request("acme/a"))
		b := led.Create(request("acme/b"))

		Expect(a.Status).To(Equal(models.StatusQueued))
		Expect(a.ID).NotTo(Equal(b.ID))
		Expect(a.AuthMode).To(Equal(models.AuthPublic))
	})

	It("skal liste mest nylig først", func() {
		led.Create(request("acme/først"))
		led.Create(request("acme/sist"))

		jobs := led.List()
		Expect(jobs).To(HaveLen(2))
		Expect(jobs[0].Repository).To(Equal("acme/sist"))
		Expect(jobs[1].Repository).To(Equal("acme/først"))
	})

	It("skal kaste ut den eldste ved innsetting nummer elleve", func() {
		for i := 1; i <= 11; i++ {
			led.Create(request(fmt.Sprintf("acme/repo-%d", i)))
		}

		jobs := led.List()
		Expect(jobs).To(HaveLen(ledger.MaxJobs))
		Expect(jobs[0].Repository).To(Equal("acme/repo-11"))
		Expect(jobs[9].Repository).To(Equal("acme/repo-2"))
		for _, job := range jobs {
			Expect(job.Repository).NotTo(Equal("acme/repo-1"))
		}
	})

	It("skal følge tilstandsmaskinen queued -> analyzing -> completed", func() {
		job := led.Create(request("acme/a"))

		led.Begin(job.ID)
		Expect(led.List()[0].Status).To(Equal(models.StatusAnalyzing))

		led.Complete(job.ID)
		Expect(led.List()[0].Status).To(Equal(models.StatusCompleted))
	})

	It("skal lagre feilårsak ved failed", func() {
		job := led.Create(request("acme/a"))
		led.Begin(job.ID)
		led.Fail(job.ID, "henting feilet: fant ikke repoet")

		got := led.List()[0]
		Expect(got.Status).To(Equal(models.StatusFailed))
		Expect(got.Error).To(ContainSubstring("fant ikke"))
	})

	It("skal aldri gjenopplive en terminal jobb", func() {
		job := led.Create(request("acme/a"))
		led.Begin(job.ID)
		led.Complete(job.ID)

		led.Fail(job.ID, "for sent")
		Expect(led.List()[0].Status).To(Equal(models.StatusCompleted))
		Expect(led.List()[0].Error).To(Equal(""))
	})

	It("skal ignorere Complete direkte fra queued", func() {
		job := led.Create(request("acme/a"))
		led.Complete(job.ID)
		Expect(led.List()[0].Status).To(Equal(models.StatusQueued))
	})

	It("skal være no-op på ukjent id", func() {
		led.Create(request("acme/a"))
		led.Complete("finnes-ikke")
		led.Fail("finnes-ikke", "x")
		Expect(led.List()[0].Status).To(Equal(models.StatusQueued))
	})

	It("skal persistere etter hver mutasjon", func() {
		job := led.Create(request("acme/a"))
		Expect(mem.Has(store.KeyJobs)).To(BeTrue())

		led.Begin(job.ID)
		led.Complete(job.ID)

		fresh := ledger.NewLedger(mem)
		Expect(fresh.List()).To(HaveLen(1))
		Expect(fresh.List()[0].Status).To(Equal(models.StatusCompleted))
	})

	It("skal tømme historikken og fjerne nøkkelen ved Clear", func() {
		led.Create(request("acme/a"))
		led.Clear()

		Expect(led.List()).To(BeEmpty())
		Expect(mem.Has(store.KeyJobs)).To(BeFalse())
	})

	It("skal starte tomt ved korrupt lagring", func() {
		mem.Data[store.KeyJobs] = []byte("{ikke json")
		fresh := ledger.NewLedger(mem)
		Expect(fresh.List()).To(BeEmpty())
	})

	It("skal markere nedlasting", func() {
		job := led.Create(request("acme/a"))
		led.MarkDownloaded(job.ID)
		Expect(led.List()[0].Downloaded).To(BeTrue())
	})

	It("skal eksportere historikken med antall", func() {
		led.Create(request("acme/a"))
		led.Create(request("acme/b"))

		bundle := led.ExportAll()
		Expect(bundle.TotalJobs).To(Equal(2))
		Expect(bundle.Jobs).To(HaveLen(2))
		Expect(bundle.Version).To(Equal("1.0"))
	})
})
