package circuits_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/circsim/internal/analysis"
	"github.com/san-kum/circsim/internal/circuits"
)

var _ = Describe("LCTank", func() {
	var c *circuits.LCTank

	BeforeEach(func() {
		c = circuits.NewLCTank(circuits.DefaultLC())
	})

	It("starts charged with no current", func() {
		x := c.Init()
		Expect(x[circuits.LCVoltage]).To(Equal(float32(5)))
		Expect(x[circuits.LCCurrent]).To(Equal(float32(0)))
	})

	It("oscillates with period 2π√(LC)", func() {
		expected := c.Period()
		Expect(expected).To(BeNumerically("~", 0.1, 1e-4))

		r := simulate(c, 1e-3, 1)
		Expect(r.Series.Len()).To(Equal(1001))

		period, ok := analysis.Period(r.Series.Times, r.Series.Values)
		Expect(ok).To(BeTrue())
		Expect(period).To(BeNumerically("~", expected, 0.02*expected))
	})

	It("stays bounded near the initial amplitude", func() {
		r := simulate(c, 1e-3, 1)
		Expect(analysis.MaxAbs(r.Series.Values)).To(BeNumerically("<", 5.01))
	})

	It("conserves stored energy to within a few percent", func() {
		r := simulate(c, 1e-3, 1)
		e0 := c.Energy(c.Init())
		e1 := c.Energy(r.Final)
		Expect(math.Abs(e1-e0) / e0).To(BeNumerically("<", 0.05))
	})
})
