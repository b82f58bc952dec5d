package circuits_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/circsim/internal/analysis"
	"github.com/san-kum/circsim/internal/circuits"
	"github.com/san-kum/circsim/internal/dynamo"
)

var _ = Describe("RCCharge", func() {
	var c *circuits.RCCharge

	BeforeEach(func() {
		c = circuits.NewRCCharge(circuits.DefaultRC())
	})

	It("starts from rest", func() {
		x := c.Init()
		Expect(x).To(Equal(dynamo.State{0, 0}))
	})

	It("leaves Vc at zero on the first step and sets the slope to Vs/RC", func() {
		x := c.Init()
		c.Step(x, 1e-2)
		Expect(x[circuits.RCVoltage]).To(Equal(float32(0)))
		Expect(x[circuits.RCSlope]).To(Equal(float32(31.25)))
	})

	It("emits one record per step from t=0", func() {
		res := simulate(c, 1e-2, 1)
		Expect(res.Series.Len()).To(Equal(101))
		Expect(res.Series.Times[0]).To(Equal(float32(0)))
		Expect(analysis.IsMonotonic(res.Series.Times, analysis.Rising)).To(BeTrue())
		Expect(res.Series.Values[:3]).To(Equal([]float32{0, 0.3125, 0.60546875}))
	})

	It("rises monotonically without overshooting Vs", func() {
		res := simulate(c, 1e-2, 10)
		Expect(analysis.IsMonotonic(res.Series.Values, analysis.Rising)).To(BeTrue())
		_, hi := analysis.Bounds(res.Series.Values)
		Expect(hi).To(BeNumerically("<=", 5))
		Expect(hi).To(BeNumerically(">", 4.999))
	})

	It("reports its time constant", func() {
		Expect(c.TimeConstant()).To(BeNumerically("~", 0.16, 1e-6))
		Expect(c.Name()).To(Equal("rc_charge"))
		Expect(c.GetParams()).To(HaveKeyWithValue("r", 1600.0))
	})
})

var _ = Describe("RCDischarge", func() {
	var c *circuits.RCDischarge

	BeforeEach(func() {
		c = circuits.NewRCDischarge(circuits.DefaultRC())
	})

	It("starts at Vs with a positive slope", func() {
		x := c.Init()
		Expect(x[circuits.RCVoltage]).To(Equal(float32(5)))
		Expect(x[circuits.RCSlope]).To(Equal(float32(31.25)))
	})

	It("overshoots once, then decays monotonically towards zero", func() {
		res := simulate(c, 1e-2, 1)
		v := res.Series.Values
		Expect(res.Series.Len()).To(Equal(101))
		Expect(v[:3]).To(Equal([]float32{5.3125, 4.98046875, 4.669189453125}))
		Expect(analysis.IsMonotonic(v[1:], analysis.Falling)).To(BeTrue())

		lo, _ := analysis.Bounds(v)
		Expect(lo).To(BeNumerically(">=", 0))
		Expect(v[len(v)-1]).To(BeNumerically("~", 0.00836, 1e-4))
	})
})
