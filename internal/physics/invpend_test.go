package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/askalov/cartpend/internal/dynamo"
	"github.com/askalov/cartpend/internal/integrators"
	"github.com/askalov/cartpend/internal/physics"
)

var _ = Describe("InvertedPendulum", func() {
	var pend *physics.InvertedPendulum

	BeforeEach(func() {
		pend = physics.NewInvertedPendulum()
	})

	Describe("equilibrium", func() {
		It("keeps the zero state an exact fixed point under zero force", func() {
			pend.Viscosity = 0.3
			integ := integrators.NewSymplecticEuler()
			x := dynamo.State{0, 0, 0, 0}
			u := dynamo.Control{0}

			for _, dt := range []float64{0, 0.001, 0.01, 0.5} {
				next := integ.Step(pend, x, u, 0, dt)
				Expect(next).To(Equal(dynamo.State{0, 0, 0, 0}))
			}
		})
	})

	Describe("gravity", func() {
		It("accelerates a tilted pendulum away from the vertical", func() {
			pend.CartMass = 1.0
			pend.PendulumMass = 0.1
			pend.PendulumLength = 1.0
			pend.Viscosity = 0

			x := dynamo.State{0, 0.1, 0, 0}
			_, thetaacc := pend.Accel(x, dynamo.Control{0})
			Expect(thetaacc).To(BeNumerically(">", 0))

			integ := integrators.NewSymplecticEuler()
			next := integ.Step(pend, x, dynamo.Control{0}, 0, 0.01)
			Expect(next[1]).To(BeNumerically(">", 0.1))
		})

		It("mirrors the fall direction for a negative tilt", func() {
			pend.Viscosity = 0
			x := dynamo.State{0, -0.1, 0, 0}
			_, thetaacc := pend.Accel(x, dynamo.Control{0})
			Expect(thetaacc).To(BeNumerically("<", 0))
		})
	})

	Describe("viscosity", func() {
		It("strictly reduces angular rate growth over a fixed horizon", func() {
			run := func(lambda float64) float64 {
				p := physics.NewInvertedPendulum()
				p.CartMass = 1.0
				p.PendulumMass = 0.1
				p.PendulumLength = 1.0
				p.Viscosity = lambda

				integ := integrators.NewSymplecticEuler()
				x := dynamo.State{0, 0.1, 0, 0}
				u := dynamo.Control{0}
				for i := 0; i < 100; i++ {
					x = integ.Step(p, x, u, float64(i)*0.01, 0.01)
				}
				return math.Abs(x[3])
			}

			undamped := run(0)
			damped := run(0.5)
			moreDamped := run(2.0)

			Expect(damped).To(BeNumerically("<", undamped))
			Expect(moreDamped).To(BeNumerically("<", damped))
		})
	})

	Describe("degenerate parameters", func() {
		It("produces non-finite values for zero pendulum length", func() {
			pend.PendulumLength = 0

			x := dynamo.State{0, 0.1, 0, 0}
			_, thetaacc := pend.Accel(x, dynamo.Control{0})
			Expect(math.IsNaN(thetaacc) || math.IsInf(thetaacc, 0)).To(BeTrue())
		})

		It("propagates non-finite values through subsequent steps", func() {
			pend.PendulumLength = 0
			integ := integrators.NewSymplecticEuler()

			x := dynamo.State{0, 0.1, 0, 0}
			x = integ.Step(pend, x, dynamo.Control{0}, 0, 0.01)
			x = integ.Step(pend, x, dynamo.Control{0}, 0.01, 0.01)
			Expect(x.IsValid()).To(BeFalse())
		})
	})

	Describe("parameters", func() {
		It("round-trips named parameters", func() {
			Expect(pend.SetParam("cart_mass", 2.5)).To(Succeed())
			Expect(pend.SetParam("pendulum_mass", 0.2)).To(Succeed())
			Expect(pend.SetParam("pendulum_length", 0.8)).To(Succeed())

			params := pend.GetParams()
			Expect(params["cart_mass"]).To(Equal(2.5))
			Expect(params["pendulum_mass"]).To(Equal(0.2))
			Expect(params["pendulum_length"]).To(Equal(0.8))
		})

		It("rejects unknown parameter names", func() {
			err := pend.SetParam("spring_constant", 1.0)
			Expect(err).To(MatchError(dynamo.ErrUnknownParam))
		})

		It("accepts non-physical values without complaint", func() {
			Expect(pend.SetParam("pendulum_length", -1.0)).To(Succeed())
			Expect(pend.PendulumLength).To(Equal(-1.0))
		})
	})

	Describe("energy", func() {
		It("is maximal at the upright equilibrium", func() {
			upright := pend.Energy(dynamo.State{0, 0, 0, 0})
			tilted := pend.Energy(dynamo.State{0, 0.5, 0, 0})
			Expect(tilted).To(BeNumerically("<", upright))
		})
	})
})
