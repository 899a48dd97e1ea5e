package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"microlife/internal/control"
	"microlife/internal/input"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Monitor", func() {
	var (
		ctrl   *control.Controller
		mon    *Monitor
		latch  *input.Latch
		server *httptest.Server
	)

	BeforeEach(func() {
		latch = &input.Latch{}
		cfg := control.DefaultConfig()
		cfg.StallFrames = 1000
		ctrl = control.New(cfg, control.Board{ButtonB: latch})
		mon = NewMonitor(ctrl)
		mon.RegisterButton("b", latch)
		server = httptest.NewServer(mon.Router())
	})

	AfterEach(func() {
		server.Close()
	})

	It("should report unavailable before the first frame", func() {
		resp, err := http.Get(server.URL + "/api/state")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusServiceUnavailable))
	})

	It("should serve the latest frame", func() {
		mon.ObserveFrame(ctrl.Frame())

		resp, err := http.Get(server.URL + "/api/state")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var body struct {
			Frame      uint64  `json:"frame"`
			Cause      string  `json:"cause"`
			Population int     `json:"population"`
			Grid       [][]int `json:"grid"`
		}
		Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
		Expect(body.Frame).To(BeZero())
		Expect(body.Cause).To(Equal("none"))
		Expect(body.Population).To(Equal(12))
		Expect(body.Grid).To(HaveLen(5))
		Expect(body.Grid[1]).To(Equal([]int{1, 1, 1, 1, 1}))
	})

	It("should serve the parameter snapshot", func() {
		mon.ObserveFrame(ctrl.Frame())

		resp, err := http.Get(server.URL + "/api/params")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		var body struct {
			Groups []struct {
				Name string `json:"name"`
			} `json:"groups"`
		}
		Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
		Expect(body.Groups).To(HaveLen(2))
		Expect(body.Groups[0].Name).To(Equal("Loop"))
	})

	It("should press a registered button", func() {
		resp, err := http.Post(server.URL+"/api/press/b", "", nil)
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

		Expect(ctrl.Frame().Complemented).To(BeTrue())
	})

	It("should hold a button for several reads", func() {
		resp, err := http.Post(server.URL+"/api/press/b?frames=2", "", nil)
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()

		Expect(input.Pressed(latch)).To(BeTrue())
		Expect(input.Pressed(latch)).To(BeTrue())
		Expect(input.Pressed(latch)).To(BeFalse())
	})

	It("should reject unknown buttons and bad counts", func() {
		resp, err := http.Post(server.URL+"/api/press/c", "", nil)
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))

		resp, err = http.Post(server.URL+"/api/press/b?frames=zero", "", nil)
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("should only accept POST for presses", func() {
		resp, err := http.Get(server.URL + "/api/press/b")
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusMethodNotAllowed))
	})

	It("should serve until the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		addr, err := mon.StartServer(ctx, "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())
		Expect(addr.String()).To(HavePrefix("127.0.0.1:"))

		url := "http://" + addr.String() + "/api/params"
		resp, err := http.Get(url)
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		cancel()
		Eventually(func() error {
			resp, err := http.Get(url)
			if err == nil {
				resp.Body.Close()
			}
			return err
		}).WithTimeout(5 * time.Second).Should(HaveOccurred())
	})
})
