package physics_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/physics"
)

var _ = Describe("Derivative", func() {
	It("does not depend on time", func() {
		p := physics.Params{Alpha: 3, Beta: 2, Delta: 5, Gamma: 7}
		dx0, dy0 := physics.Derivative(42, 17, 0, p)
		dx50, dy50 := physics.Derivative(42, 17, 50, p)
		Expect(dx50).To(Equal(dx0))
		Expect(dy50).To(Equal(dy0))
	})

	It("keeps the origin fixed for any parameters", func() {
		for _, p := range []physics.Params{
			{Alpha: 1, Beta: 1, Delta: 1, Gamma: 1},
			{Alpha: 10, Beta: 3, Delta: 7, Gamma: 2},
		} {
			dx, dy := physics.Derivative(0, 0, 12.5, p)
			Expect(dx).To(BeZero())
			Expect(dy).To(BeZero())
		}
	})

	It("vanishes at the coexistence equilibrium", func() {
		for _, p := range []physics.Params{
			{Alpha: 1, Beta: 1, Delta: 1, Gamma: 1},
			{Alpha: 2, Beta: 3, Delta: 4, Gamma: 1},
			{Alpha: 7, Beta: 9, Delta: 3, Gamma: 10},
		} {
			dx, dy := physics.Derivative(p.Gamma/p.Delta, p.Alpha/p.Beta, 0, p)
			Expect(dx).To(BeNumerically("~", 0, 1e-12))
			Expect(dy).To(BeNumerically("~", 0, 1e-12))
		}
	})

	It("grows prey exponentially without predators", func() {
		p := physics.Params{Alpha: 4, Beta: 2, Delta: 3, Gamma: 5}
		dx, dy := physics.Derivative(30, 0, 0, p)
		Expect(dx).To(Equal(120.0))
		Expect(dy).To(BeZero())
	})

	It("matches the worked scenarios", func() {
		dx, dy := physics.Derivative(50, 10, 0, physics.Params{Alpha: 1, Beta: 1, Delta: 1, Gamma: 1})
		Expect(dx).To(Equal(-450.0))
		Expect(dy).To(Equal(490.0))

		dx, dy = physics.Derivative(0, 5, 0, physics.Params{Alpha: 2, Beta: 3, Delta: 4, Gamma: 1})
		Expect(dx).To(BeZero())
		Expect(dy).To(Equal(-5.0))
	})
})

var _ = Describe("LotkaVolterra", func() {
	var lv *physics.LotkaVolterra

	BeforeEach(func() {
		lv = physics.NewLotkaVolterra(physics.DefaultParams())
	})

	It("reports its dimensions", func() {
		Expect(lv.StateDim()).To(Equal(2))
		Expect(lv.ControlDim()).To(Equal(2))
	})

	It("agrees with Derivative when uncontrolled", func() {
		d := lv.Derive(dynamo.State{50, 10}, nil, 0)
		Expect(d).To(Equal(dynamo.State{-450, 490}))

		d = lv.Derive(dynamo.State{50, 10}, dynamo.Control{0, 0}, 0)
		Expect(d).To(Equal(dynamo.State{-450, 490}))
	})

	It("adds the control flux", func() {
		d := lv.Derive(dynamo.State{50, 10}, dynamo.Control{-5, -1}, 0)
		Expect(d).To(Equal(dynamo.State{-455, 489}))
	})

	It("places the equilibrium at (γ/δ, α/β)", func() {
		lv.Params = physics.Params{Alpha: 2, Beta: 4, Delta: 5, Gamma: 10}
		Expect(lv.Equilibrium()).To(Equal(dynamo.State{2, 0.5}))
	})

	It("has an undefined invariant outside the positive quadrant", func() {
		Expect(math.IsNaN(lv.Energy(dynamo.State{0, 10}))).To(BeTrue())
		Expect(math.IsNaN(lv.Energy(dynamo.State{5, -1}))).To(BeTrue())
		Expect(lv.Energy(dynamo.State{1, 1})).To(BeNumerically("~", 2, 1e-12))
	})

	It("exposes its rates as tunable parameters", func() {
		Expect(lv.SetParam("gamma", 3)).To(Succeed())
		Expect(lv.GetParams()).To(HaveKeyWithValue("gamma", 3.0))
		Expect(lv.Gamma).To(Equal(3.0))
		Expect(lv.SetParam("omega", 1)).To(MatchError(ContainSubstring("unknown param")))
	})

	It("computes the linearized period", func() {
		lv.Params = physics.Params{Alpha: 4, Beta: 1, Delta: 1, Gamma: 1}
		Expect(lv.Period()).To(BeNumerically("~", math.Pi, 1e-12))
	})

	Context("integrated over the default grid", func() {
		It("produces 1000 samples starting at the initial state", func() {
			x0 := dynamo.State{50, 10}
			sim := dynamo.New(lv, integrators.NewRK45(), nil)

			result, err := sim.Run(context.Background(), x0, dynamo.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.States).To(HaveLen(1000))
			Expect(result.Times).To(HaveLen(1000))
			Expect(result.States[0]).To(Equal(x0))
			Expect(result.Times[0]).To(BeZero())
			Expect(result.Times[999]).To(Equal(50.0))
			Expect(result.StepsTaken).To(BeNumerically(">=", 999))
		})

		It("conserves the invariant on a small orbit", func() {
			x0 := dynamo.State{1.2, 1.1}
			cfg := dynamo.DefaultConfig()
			cfg.Stop = 20
			cfg.Samples = 200

			result, err := dynamo.New(lv, integrators.NewRK45(), nil).Run(context.Background(), x0, cfg)
			Expect(err).NotTo(HaveOccurred())

			v0 := lv.Energy(x0)
			for _, s := range result.States {
				Expect(lv.Energy(s)).To(BeNumerically("~", v0, 1e-5))
			}
		})

		It("stays at rest when started at the equilibrium", func() {
			lv.Params = physics.Params{Alpha: 2, Beta: 1, Delta: 1, Gamma: 4}
			x0 := lv.Equilibrium()
			cfg := dynamo.DefaultConfig()
			cfg.Adaptive = false

			result, err := dynamo.New(lv, integrators.NewRK4(), nil).Run(context.Background(), x0, cfg)
			Expect(err).NotTo(HaveOccurred())
			final := result.Final()
			Expect(final[0]).To(BeNumerically("~", 4, 1e-9))
			Expect(final[1]).To(BeNumerically("~", 2, 1e-9))
		})
	})
})
