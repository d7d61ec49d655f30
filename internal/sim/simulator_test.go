package sim

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/boxsim/internal/particles"
)

type countingObserver struct {
	frames []particles.Frame
}

func (c *countingObserver) OnStep(f particles.Frame) { c.frames = append(c.frames, f) }

type maxXMetric struct {
	max float64
}

func (m *maxXMetric) Name() string { return "max_x" }
func (m *maxXMetric) Observe(f particles.Frame) {
	for _, x := range f.X {
		m.max = math.Max(m.max, x)
	}
}
func (m *maxXMetric) Value() float64 { return m.max }
func (m *maxXMetric) Reset()         { m.max = 0 }

type recordingPacer struct {
	delays []float64
	err    error
}

func (p *recordingPacer) Pace(ctx context.Context, dt float64) error {
	p.delays = append(p.delays, dt)
	return p.err
}

var _ = Describe("Simulator", func() {
	var box particles.Box

	BeforeEach(func() {
		box = particles.Box{SideLength: 100, Radius: 4}
	})

	Describe("a single particle heading for the corner", func() {
		It("ends with both velocity components reversed", func() {
			set := newSet([]float64{50}, []float64{50}, []float64{10}, []float64{10})

			result, err := New(box).Run(context.Background(), set, Config{Duration: 10})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Reason).To(Equal(ReasonExpired))
			Expect(result.Elapsed).To(BeNumerically(">", 10))
			Expect(result.Reflections).To(Equal(2))
			Expect(set.VelX).To(Equal([]float64{-10}))
			Expect(set.VelY).To(Equal([]float64{-10}))
		})

		It("overshoots the wall by less than one step", func() {
			set := newSet([]float64{50}, []float64{50}, []float64{10}, []float64{10})
			obs := &countingObserver{}
			sim := New(box)
			sim.AddObserver(obs)

			_, err := sim.Run(context.Background(), set, Config{Duration: 10})
			Expect(err).NotTo(HaveOccurred())

			limit := box.OuterEdge() + StepFraction*box.Radius
			for _, f := range obs.frames {
				Expect(f.X[0]).To(BeNumerically("<", limit))
				Expect(f.Y[0]).To(BeNumerically("<", limit))
			}
		})
	})

	Describe("stationary particles", func() {
		It("stops before the first step", func() {
			set := newSet([]float64{10, 20}, []float64{30, 40}, []float64{0, 0}, []float64{0, 0})

			result, err := New(box).Run(context.Background(), set, Config{Duration: 10})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Reason).To(Equal(ReasonStationary))
			Expect(result.Steps).To(BeZero())
			Expect(set.PosX).To(Equal([]float64{10, 20}))
			Expect(set.PosY).To(Equal([]float64{30, 40}))
		})

		It("treats an empty set as stationary", func() {
			set := newSet([]float64{}, []float64{}, []float64{}, []float64{})

			result, err := New(box).Run(context.Background(), set, Config{Duration: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Reason).To(Equal(ReasonStationary))
		})
	})

	Describe("timestep", func() {
		It("moves the fastest particle a fifth of a radius per step", func() {
			set := newSet([]float64{50, 50}, []float64{20, 80}, []float64{3, 1}, []float64{4, 0})
			obs := &countingObserver{}
			sim := New(box)
			sim.AddObserver(obs)

			_, err := sim.Run(context.Background(), set, Config{Duration: 1, MaxSteps: 5})
			Expect(err).NotTo(HaveOccurred())

			for _, f := range obs.frames[1:] {
				Expect(f.Timestep).To(BeNumerically("~", 0.2*4/5, 1e-12))
			}
		})
	})

	Describe("termination", func() {
		It("honours the step cap", func() {
			set := newSet([]float64{50}, []float64{50}, []float64{0.001}, []float64{0})

			result, err := New(box).Run(context.Background(), set, Config{Duration: 1e9, MaxSteps: 25})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Reason).To(Equal(ReasonStepLimit))
			Expect(result.Steps).To(Equal(25))
		})

		It("stops when the context is canceled", func() {
			set := newSet([]float64{50}, []float64{50}, []float64{1}, []float64{0})
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := New(box).Run(ctx, set, Config{Duration: 10})
			Expect(err).To(MatchError(context.Canceled))
			Expect(result.Reason).To(Equal(ReasonCanceled))
			Expect(result.Steps).To(BeZero())
		})

		It("takes one step for a zero duration", func() {
			set := newSet([]float64{50}, []float64{50}, []float64{1}, []float64{0})

			result, err := New(box).Run(context.Background(), set, Config{Duration: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Steps).To(Equal(1))
			Expect(result.Reason).To(Equal(ReasonExpired))
		})
	})

	Describe("preconditions", func() {
		It("rejects a position-only set without mutating it", func() {
			set := &particles.Set{PosX: []float64{50}, PosY: []float64{50}}

			_, err := New(box).Run(context.Background(), set, Config{Duration: 1})
			Expect(errors.Is(err, particles.ErrPrecondition)).To(BeTrue())
			Expect(set.PosX).To(Equal([]float64{50}))
		})

		It("rejects an infinite velocity without mutating the set", func() {
			set := newSet([]float64{50}, []float64{50}, []float64{math.Inf(1)}, []float64{0})

			result, err := New(box).Run(context.Background(), set, Config{Duration: 1})
			Expect(errors.Is(err, particles.ErrPrecondition)).To(BeTrue())
			Expect(result).To(BeNil())
			Expect(set.PosX).To(Equal([]float64{50}))
			Expect(set.VelX[0]).To(Equal(math.Inf(1)))
		})

		It("rejects a NaN position", func() {
			set := newSet([]float64{math.NaN()}, []float64{50}, []float64{1}, []float64{1})

			_, err := New(box).Run(context.Background(), set, Config{Duration: 1})
			Expect(errors.Is(err, particles.ErrPrecondition)).To(BeTrue())
		})

		It("rejects mismatched sequence lengths", func() {
			set := newSet([]float64{50, 60}, []float64{50}, []float64{1, 1}, []float64{1, 1})

			_, err := New(box).Run(context.Background(), set, Config{Duration: 1})
			Expect(errors.Is(err, particles.ErrPrecondition)).To(BeTrue())
		})

		It("rejects a box too small for its particles", func() {
			set := newSet([]float64{1}, []float64{1}, []float64{1}, []float64{1})

			_, err := New(particles.Box{SideLength: 8, Radius: 4}).Run(context.Background(), set, Config{Duration: 1})
			Expect(errors.Is(err, particles.ErrPrecondition)).To(BeTrue())
		})

		It("rejects a negative duration", func() {
			set := newSet([]float64{50}, []float64{50}, []float64{1}, []float64{1})

			_, err := New(box).Run(context.Background(), set, Config{Duration: -1})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("observers and metrics", func() {
		It("sees the initial frame and every step", func() {
			set := newSet([]float64{50}, []float64{50}, []float64{1}, []float64{0})
			obs := &countingObserver{}
			metric := &maxXMetric{}
			sim := New(box)
			sim.AddObserver(obs)
			sim.AddMetric(metric)

			result, err := sim.Run(context.Background(), set, Config{Duration: 100, MaxSteps: 10})
			Expect(err).NotTo(HaveOccurred())

			Expect(obs.frames).To(HaveLen(11))
			Expect(obs.frames[0].Step).To(Equal(0))
			Expect(obs.frames[10].Step).To(Equal(10))
			Expect(result.Metrics).To(HaveKeyWithValue("max_x", set.PosX[0]))
		})

		It("records every n-th frame plus the last one", func() {
			set := newSet([]float64{50}, []float64{50}, []float64{1}, []float64{0})

			result, err := New(box).Run(context.Background(), set, Config{Duration: 100, MaxSteps: 7, RecordEvery: 3})
			Expect(err).NotTo(HaveOccurred())

			steps := make([]int, 0, len(result.Trajectory))
			for _, f := range result.Trajectory {
				steps = append(steps, f.Step)
			}
			Expect(steps).To(Equal([]int{0, 3, 6, 7}))
		})
	})

	Describe("pacing", func() {
		It("paces by the timestep only when animating", func() {
			pacer := &recordingPacer{}
			sim := New(box)
			sim.SetPacer(pacer)

			plain := newSet([]float64{50}, []float64{50}, []float64{5}, []float64{0})
			_, err := sim.Run(context.Background(), plain, Config{Duration: 100, MaxSteps: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(pacer.delays).To(BeEmpty())

			animated := newSet([]float64{50}, []float64{50}, []float64{5}, []float64{0})
			_, err = sim.Run(context.Background(), animated, Config{Duration: 100, MaxSteps: 3, Animate: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(pacer.delays).To(HaveLen(3))
			Expect(animated.PosX).To(Equal(plain.PosX))
		})

		It("stops when the pacer fails", func() {
			pacer := &recordingPacer{err: context.DeadlineExceeded}
			sim := New(box)
			sim.SetPacer(pacer)

			set := newSet([]float64{50}, []float64{50}, []float64{5}, []float64{0})
			result, err := sim.Run(context.Background(), set, Config{Duration: 100, Animate: true})
			Expect(err).To(MatchError(context.DeadlineExceeded))
			Expect(result.Reason).To(Equal(ReasonCanceled))
			Expect(set.PosX).To(Equal([]float64{50}))
		})
	})
})
