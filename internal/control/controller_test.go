package control

import (
	"context"
	"errors"

	"microlife/pkg/core"
	"microlife/pkg/sims/life"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Controller", func() {
	var (
		mockCtrl *gomock.Controller
		display  *MockRenderer
		random   *MockBitSource
		buttonA  *MockInput
		buttonB  *MockInput
		cfg      Config
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		display = NewMockRenderer(mockCtrl)
		random = NewMockBitSource(mockCtrl)
		buttonA = NewMockInput(mockCtrl)
		buttonB = NewMockInput(mockCtrl)
		cfg = DefaultConfig()
		cfg.StallFrames = 4
		cfg.DebounceFrames = 3
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	build := func(opts ...Option) *Controller {
		return New(cfg, Board{
			Display: display,
			Random:  random,
			ButtonA: buttonA,
			ButtonB: buttonB,
		}, opts...)
	}

	idleButtons := func() {
		buttonA.EXPECT().IsPressed().Return(false, nil).AnyTimes()
		buttonB.EXPECT().IsPressed().Return(false, nil).AnyTimes()
	}

	It("should sample, render and step in order", func() {
		gomock.InOrder(
			buttonA.EXPECT().IsPressed().Return(false, nil),
			buttonB.EXPECT().IsPressed().Return(false, nil),
			display.EXPECT().Render(life.Cross(), DefaultFrameBudget),
		)

		c := build()
		r := c.Frame()

		want := core.FromRows([core.Size][core.Size]uint8{
			{0, 0, 0, 0, 0},
			{1, 1, 1, 1, 1},
			{1, 0, 0, 0, 1},
			{1, 1, 1, 1, 1},
			{0, 0, 0, 0, 0},
		})
		Expect(c.Grid()).To(Equal(want))
		Expect(r.Grid).To(Equal(want))
		Expect(r.Frame).To(Equal(uint64(0)))
		Expect(r.Population).To(Equal(12))
		Expect(r.Stalled).To(BeFalse())
		Expect(c.Frames()).To(Equal(uint64(1)))
	})

	It("should randomize before rendering when A is pressed", func() {
		var full core.Grid
		full.Complement()

		buttonA.EXPECT().IsPressed().Return(true, nil)
		random.EXPECT().NextBit().Return(true).Times(core.Size * core.Size)
		buttonB.EXPECT().IsPressed().Return(false, nil)
		display.EXPECT().Render(full, gomock.Any())

		r := build().Frame()

		Expect(r.Randomized).To(BeTrue())
		Expect(r.Complemented).To(BeFalse())
	})

	It("should keep randomizing while A is held", func() {
		buttonA.EXPECT().IsPressed().Return(true, nil).Times(3)
		buttonB.EXPECT().IsPressed().Return(false, nil).Times(3)
		random.EXPECT().NextBit().Return(true).Times(3 * core.Size * core.Size)
		display.EXPECT().Render(gomock.Any(), gomock.Any()).Times(3)

		c := build()
		for i := 0; i < 3; i++ {
			Expect(c.Frame().Randomized).To(BeTrue())
		}
	})

	It("should treat a failed read as not pressed", func() {
		buttonA.EXPECT().IsPressed().Return(true, errors.New("floating pin"))
		buttonB.EXPECT().IsPressed().Return(true, errors.New("floating pin"))
		display.EXPECT().Render(life.Cross(), gomock.Any())

		r := build().Frame()

		Expect(r.Randomized).To(BeFalse())
		Expect(r.Complemented).To(BeFalse())
	})

	It("should rate-limit the complement while B is held", func() {
		cfg.StallFrames = 100
		buttonA.EXPECT().IsPressed().Return(false, nil).AnyTimes()
		buttonB.EXPECT().IsPressed().Return(true, nil).Times(3)
		display.EXPECT().Render(gomock.Any(), gomock.Any()).AnyTimes()

		c := build()
		var fired []bool
		var ignore []uint
		for i := 0; i < 7; i++ {
			r := c.Frame()
			fired = append(fired, r.Complemented)
			ignore = append(ignore, r.IgnoreFrames)
		}

		Expect(fired).To(Equal([]bool{true, false, false, true, false, false, true}))
		Expect(ignore).To(Equal([]uint{2, 1, 0, 2, 1, 0, 2}))
	})

	It("should read a held B only on the frames it can fire", func() {
		cfg.StallFrames = 100
		cfg.DebounceFrames = DefaultDebounceFrames
		buttonA.EXPECT().IsPressed().Return(false, nil).AnyTimes()
		buttonB.EXPECT().IsPressed().Return(true, nil).Times(3)
		display.EXPECT().Render(gomock.Any(), gomock.Any()).AnyTimes()

		c := build()
		var fired []uint64
		for i := 0; i < 11; i++ {
			if r := c.Frame(); r.Complemented {
				fired = append(fired, r.Frame)
			}
		}

		Expect(fired).To(Equal([]uint64{0, 5, 10}))
	})

	It("should complement the grid before rendering", func() {
		inverted := life.Cross()
		inverted.Complement()

		buttonA.EXPECT().IsPressed().Return(false, nil)
		buttonB.EXPECT().IsPressed().Return(true, nil)
		display.EXPECT().Render(inverted, gomock.Any())

		Expect(build().Frame().Complemented).To(BeTrue())
	})

	It("should reseed exactly once after the stall threshold", func() {
		cfg.Pattern = "empty"
		idleButtons()
		display.EXPECT().Render(gomock.Any(), gomock.Any()).AnyTimes()

		c := build()
		for i := 0; i < 3; i++ {
			r := c.Frame()
			Expect(r.Stalled).To(BeTrue())
			Expect(r.Cause).To(Equal(life.CauseExtinct))
			Expect(r.Reseeded).To(BeFalse())
			Expect(r.StallCount).To(Equal(uint(i + 1)))
			Expect(c.Grid().Dead()).To(BeTrue())
		}

		random.EXPECT().NextBit().Return(true).Times(core.Size * core.Size)
		r := c.Frame()

		Expect(r.Reseeded).To(BeTrue())
		Expect(r.StallCount).To(BeZero())
		Expect(r.Population).To(Equal(core.Size * core.Size))
		Expect(c.StallCount()).To(BeZero())
	})

	It("should reseed an empty grid on frame T and not before", func() {
		cfg.Pattern = "empty"
		cfg.StallFrames = 5
		idleButtons()
		display.EXPECT().Render(gomock.Any(), gomock.Any()).AnyTimes()
		random.EXPECT().NextBit().Return(true).Times(core.Size * core.Size)

		c := build()
		var reseeded []uint64
		for i := 0; i < 5; i++ {
			if r := c.Frame(); r.Reseeded {
				reseeded = append(reseeded, r.Frame)
			}
		}

		Expect(reseeded).To(Equal([]uint64{4}))
		g := c.Grid()
		Expect(g.Population()).To(Equal(core.Size * core.Size))
	})

	It("should reset the stall counter on a live frame", func() {
		cfg.Pattern = "empty"
		cfg.StallFrames = 3
		idleButtons()
		display.EXPECT().Render(gomock.Any(), gomock.Any()).AnyTimes()

		c := build()
		Expect(c.Frame().StallCount).To(Equal(uint(1)))
		Expect(c.Frame().StallCount).To(Equal(uint(2)))

		glider, _ := life.Pattern("glider")
		c.SetGrid(glider)
		r := c.Frame()
		Expect(r.Stalled).To(BeFalse())
		Expect(r.Reseeded).To(BeFalse())
		Expect(r.StallCount).To(BeZero())

		c.SetGrid(core.Grid{})
		Expect(c.Frame().Reseeded).To(BeFalse())
		Expect(c.Frame().Reseeded).To(BeFalse())

		random.EXPECT().NextBit().Return(false).Times(core.Size * core.Size)
		Expect(c.Frame().Reseeded).To(BeTrue())
	})

	It("should treat a still life as stalled", func() {
		cfg.Pattern = "block"
		cfg.StallFrames = 2
		idleButtons()
		display.EXPECT().Render(gomock.Any(), gomock.Any()).AnyTimes()

		c := build()
		Expect(c.Frame().Stalled).To(BeFalse())

		r := c.Frame()
		Expect(r.Stalled).To(BeTrue())
		Expect(r.Cause).To(Equal(life.CauseStill))

		random.EXPECT().NextBit().Return(false).Times(core.Size * core.Size)
		r = c.Frame()
		Expect(r.Reseeded).To(BeTrue())
		Expect(r.Cause).To(Equal(life.CauseStill))
	})

	It("should only treat an empty grid as stalled with period zero", func() {
		cfg.Pattern = "block"
		cfg.StallFrames = 2
		cfg.StallPeriod = 0
		idleButtons()
		display.EXPECT().Render(gomock.Any(), gomock.Any()).AnyTimes()

		c := build()
		for i := 0; i < 10; i++ {
			r := c.Frame()
			Expect(r.Stalled).To(BeFalse())
			Expect(r.Reseeded).To(BeFalse())
		}
	})

	It("should seed from the random source", func() {
		cfg.Pattern = PatternRandom
		random.EXPECT().NextBit().Return(true).Times(core.Size * core.Size)

		c := build()

		Expect(c.Grid().Population()).To(Equal(core.Size * core.Size))
	})

	It("should use a supplied grid instead of the pattern", func() {
		glider, _ := life.Pattern("glider")
		c := build(WithGrid(glider))
		Expect(c.Grid()).To(Equal(glider))
	})

	It("should notify observers once per frame", func() {
		idleButtons()
		display.EXPECT().Render(gomock.Any(), gomock.Any()).AnyTimes()
		observer := NewMockObserver(mockCtrl)
		observer.EXPECT().ObserveFrame(gomock.Any()).Times(3)

		var frames []uint64
		c := build(
			WithObserver(observer),
			WithObserver(ObserverFunc(func(r FrameReport) {
				frames = append(frames, r.Frame)
			})),
		)
		for i := 0; i < 3; i++ {
			c.Frame()
		}

		Expect(frames).To(Equal([]uint64{0, 1, 2}))
	})

	It("should run until the context is cancelled", func() {
		idleButtons()
		display.EXPECT().Render(gomock.Any(), gomock.Any()).AnyTimes()
		random.EXPECT().NextBit().Return(false).AnyTimes()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		c := build(WithObserver(ObserverFunc(func(r FrameReport) {
			if r.Frame == 4 {
				cancel()
			}
		})))

		err := c.Run(ctx)

		Expect(err).To(MatchError(context.Canceled))
		Expect(c.Frames()).To(Equal(uint64(5)))
	})

	It("should run without any collaborators", func() {
		cfg.Pattern = "empty"
		c := New(cfg, Board{})
		reseeds := 0
		for i := 0; i < 40; i++ {
			if c.Frame().Reseeded {
				reseeds++
			}
		}
		Expect(reseeds).To(BeNumerically(">", 0))
	})

	Context("parameters", func() {
		It("should expose thresholds and counters", func() {
			c := build()
			snap := c.Parameters()

			p, ok := snap.Lookup("stall_frames")
			Expect(ok).To(BeTrue())
			Expect(p.Value).To(Equal("4"))

			p, ok = snap.Lookup("pattern")
			Expect(ok).To(BeTrue())
			Expect(p.Value).To(Equal("cross"))

			p, ok = snap.Lookup("population")
			Expect(ok).To(BeTrue())
			Expect(p.Value).To(Equal("11"))
		})

		It("should adjust thresholds at runtime", func() {
			c := build()

			Expect(c.SetIntParameter("stall_frames", 7)).To(BeTrue())
			Expect(c.Config().StallFrames).To(Equal(uint(7)))
			Expect(c.SetIntParameter("stall_frames", 0)).To(BeFalse())

			Expect(c.SetIntParameter("debounce_frames", 0)).To(BeTrue())
			Expect(c.Config().DebounceFrames).To(BeZero())
			Expect(c.SetIntParameter("debounce_frames", -1)).To(BeFalse())

			Expect(c.SetIntParameter("frame_ms", 5)).To(BeFalse())
			Expect(c.ParameterControls()).To(HaveLen(2))
		})
	})
})
