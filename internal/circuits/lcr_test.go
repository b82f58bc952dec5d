package circuits_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/circsim/internal/analysis"
	"github.com/san-kum/circsim/internal/circuits"
	"github.com/san-kum/circsim/internal/dynamo"
)

var _ = Describe("LCROscillator", func() {
	It("starts with a consistent loop", func() {
		c := circuits.NewLCROscillator(circuits.DefaultLCR())
		x := c.Init()
		Expect(x[circuits.LCRCurrent]).To(Equal(float32(0)))
		Expect(x[circuits.LCRVoltage]).To(Equal(float32(5)))
		Expect(x[circuits.LCRInductorVoltage]).To(Equal(float32(-5)))
		Expect(x[circuits.LCRCurrentSlope]).To(Equal(float32(-50)))
		Expect(x[circuits.LCRInductorSlope]).To(Equal(float32(0)))
	})

	It("defaults to the explicit scheme", func() {
		c := circuits.NewLCROscillator(circuits.LCRParams{Vs: 5, R: 1, L: 1, C: 1})
		Expect(c.Scheme).To(Equal(circuits.SchemeExplicit))
	})

	Context("with the default damping", func() {
		var res *dynamo.Result

		BeforeEach(func() {
			res = simulate(circuits.NewLCROscillator(circuits.DefaultLCR()), 1e-3, 1)
		})

		It("emits the first sample after one advance", func() {
			Expect(res.Series.Len()).To(Equal(1001))
			Expect(res.Series.Values[0]).To(BeNumerically("~", 5.075, 1e-5))
		})

		It("rings down with strictly decreasing peaks", func() {
			peaks := analysis.Peaks(res.Series.Values)
			Expect(len(peaks)).To(BeNumerically(">=", 15))
			Expect(analysis.StrictlyDecreasing(peaks)).To(BeTrue())
			Expect(peaks[0].Value).To(BeNumerically("~", 3.843, 1e-3))
			Expect(analysis.MeanDecayRatio(peaks)).To(BeNumerically("<", 1))
		})

		It("keeps Vc = -Vr - Vl", func() {
			x := res.Final
			Expect(x[circuits.LCRVoltage]).To(BeNumerically("~", -x[circuits.LCRResistorVoltage]-x[circuits.LCRInductorVoltage], 1e-6))
		})
	})

	Context("undamped", func() {
		var params circuits.LCRParams

		BeforeEach(func() {
			params = circuits.DefaultLCR()
			params.R = 0
		})

		It("grows at the explicit Euler rate (1+(hω)²)^(n/2)", func() {
			res := simulate(circuits.NewLCROscillator(params), 1e-3, 1)
			omega := 1 / math.Sqrt(float64(params.L)*float64(params.C))
			n := float64(res.Series.Len())
			growth := math.Pow(1+math.Pow(1e-3*omega, 2), n/2)

			Expect(analysis.MaxAbs(res.Series.Values) / 5).To(BeNumerically("~", growth, 0.05*growth))
			Expect(analysis.StrictlyDecreasing(analysis.Peaks(res.Series.Values))).To(BeFalse())
		})

		It("stays bounded with the symplectic scheme", func() {
			p := params
			p.Scheme = circuits.SchemeSymplectic
			res := simulate(circuits.NewLCROscillator(p), 1e-3, 1)
			Expect(analysis.MaxAbs(res.Series.Values)).To(BeNumerically("~", 5, 0.05))
		})
	})

	DescribeTable("ParseScheme",
		func(in string, want circuits.Scheme, ok bool) {
			got, err := circuits.ParseScheme(in)
			if !ok {
				Expect(err).To(MatchError(dynamo.ErrConfig))
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("empty", "", circuits.SchemeExplicit, true),
		Entry("explicit", "explicit", circuits.SchemeExplicit, true),
		Entry("symplectic", "symplectic", circuits.SchemeSymplectic, true),
		Entry("unknown", "rk4", circuits.Scheme(""), false),
	)

	It("reports a damping ratio below one for the default loop", func() {
		Expect(circuits.DefaultLCR().DampingRatio()).To(BeNumerically("~", 0.1194, 1e-3))
	})
})

var _ = Describe("determinism", func() {
	It("produces identical series on repeated runs", func() {
		for _, build := range []func() dynamo.Circuit{
			func() dynamo.Circuit { return circuits.NewRCCharge(circuits.DefaultRC()) },
			func() dynamo.Circuit { return circuits.NewLCTank(circuits.DefaultLC()) },
			func() dynamo.Circuit { return circuits.NewLCROscillator(circuits.DefaultLCR()) },
		} {
			a := simulate(build(), 1e-3, 0.5)
			b := simulate(build(), 1e-3, 0.5)
			Expect(a.Series.Values).To(Equal(b.Series.Values))
			Expect(a.Series.Times).To(Equal(b.Series.Times))
		}
	})
})
